package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/tally/internal/command"
)

// CommandLine is the ":" prompt with suggestions for command words and, after
// commands that take one, habit names.
type CommandLine struct {
	input          textinput.Model
	suggestions    []string
	showing        bool
	selected       int
	habits         func() []string
	style          lipgloss.Style
	maxSuggestions int
}

// SuggestionsMsg carries the suggestions for the current input.
type SuggestionsMsg struct {
	Suggestions []string
}

func NewCommandLine(habits func() []string, maxSuggestions int) CommandLine {
	input := textinput.New()
	input.Prompt = ":"
	input.Placeholder = "add <habit-name> <goal>"
	input.CharLimit = 256

	return CommandLine{
		input:          input,
		habits:         habits,
		maxSuggestions: maxSuggestions,
		style:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (m CommandLine) Update(msg tea.Msg) (CommandLine, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyTab:
			if m.showing && len(m.suggestions) > 0 {
				m.input.SetValue(complete(m.input.Value(), m.suggestions[m.selected]))
				m.input.CursorEnd()
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyShiftTab:
			if m.showing && len(m.suggestions) > 0 {
				m.selected = (m.selected - 1 + len(m.suggestions)) % len(m.suggestions)
				return m, nil
			}
		case tea.KeyEscape:
			if m.showing {
				m.showing = false
				m.selected = 0
				return m, nil
			}
		default:
			old := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			if m.input.Value() != old {
				return m, tea.Batch(cmd, m.fetchSuggestions())
			}
			return m, cmd
		}

	case SuggestionsMsg:
		m.suggestions = msg.Suggestions
		m.showing = len(m.suggestions) > 0 && m.input.Value() != ""
		m.selected = 0
		return m, nil

	default:
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, cmd
}

func (m CommandLine) fetchSuggestions() tea.Cmd {
	value := m.input.Value()
	var names []string
	if m.habits != nil {
		names = m.habits()
	}
	limit := m.maxSuggestions
	return func() tea.Msg {
		s := Suggest(value, names)
		if len(s) > limit {
			s = s[:limit]
		}
		return SuggestionsMsg{Suggestions: s}
	}
}

// Suggest completes the word being typed: a command word first, then a habit
// name for commands that take one.
func Suggest(input string, habits []string) []string {
	fields := strings.Fields(input)
	trailing := strings.HasSuffix(input, " ")

	var (
		candidates []string
		prefix     string
	)
	switch {
	case len(fields) == 0:
		return nil
	case len(fields) == 1 && !trailing:
		candidates, prefix = command.Names, fields[0]
	case command.TakesHabit(fields[0]) && (len(fields) == 1 || len(fields) == 2 && !trailing):
		candidates = habits
		if len(fields) == 2 {
			prefix = fields[1]
		}
	default:
		return nil
	}

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) && c != prefix {
			out = append(out, c)
		}
	}
	return out
}

// complete replaces the word being typed with s.
func complete(input, s string) string {
	if i := strings.LastIndexByte(input, ' '); i >= 0 {
		return input[:i+1] + s
	}
	return s
}

func (m CommandLine) View() string {
	var content strings.Builder
	content.WriteString(m.input.View())

	if m.showing && len(m.suggestions) > 0 {
		content.WriteString("  ")
		for i, s := range m.suggestions {
			if i >= m.maxSuggestions {
				break
			}
			if i == m.selected {
				content.WriteString(m.style.Copy().Foreground(lipgloss.Color("12")).Render("▶" + s))
			} else {
				content.WriteString(m.style.Render(" " + s))
			}
			content.WriteString(" ")
		}
	}
	return content.String()
}

func (m CommandLine) Value() string { return m.input.Value() }

func (m *CommandLine) Focus() tea.Cmd {
	m.showing = false
	m.selected = 0
	return m.input.Focus()
}

// Reset blurs and empties the prompt.
func (m *CommandLine) Reset() {
	m.input.Blur()
	m.input.Reset()
	m.suggestions = nil
	m.showing = false
	m.selected = 0
}

func (m CommandLine) Focused() bool         { return m.input.Focused() }
func (m CommandLine) Showing() bool         { return m.showing }
func (m CommandLine) Suggestions() []string { return m.suggestions }
