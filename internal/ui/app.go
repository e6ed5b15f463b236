package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/tally/internal/app"
	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/command"
	"github.com/ramanasai/tally/internal/config"
	"github.com/ramanasai/tally/internal/habit"
)

type mode int

const (
	modeNormal mode = iota
	modeCommand
)

// Model is the Bubble Tea model around an app.App. All state that outlives a
// frame lives in the App; the model only adds layout and input modes.
type Model struct {
	app   *app.App
	look  config.Look
	theme Theme
	keys  keyMap
	help  help.Model

	cmdline CommandLine
	mode    mode

	width, height int
}

func New(a *app.App, cfg config.Config) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		app:     a,
		look:    cfg.Look,
		theme:   NewTheme(cfg.Colors),
		keys:    defaultKeys(),
		help:    h,
		cmdline: NewCommandLine(a.Names, 5),
	}
}

// Run starts the interactive session on the alternate screen.
func Run(a *app.App, cfg config.Config) error {
	p := tea.NewProgram(New(a, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tickMinute()
}

// ---------- messages & commands ----------

// tickMsg redraws the grid so the day rolls over while the program is open.
type tickMsg struct{ now time.Time }

func tickMinute() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickMinute()

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case SuggestionsMsg:
		var cmd tea.Cmd
		m.cmdline, cmd = m.cmdline.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.mode == modeCommand {
			return m.updateCommand(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m Model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		line := m.cmdline.Value()
		m.cmdline.Reset()
		m.mode = modeNormal
		c, err := command.Parse(line)
		if m.app.ProcessCommand(c, err) {
			return m, tea.Quit
		}
		return m, nil
	case tea.KeyEscape:
		if !m.cmdline.Showing() {
			m.cmdline.Reset()
			m.mode = modeNormal
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.cmdline, cmd = m.cmdline.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := m.app
	switch {
	case key.Matches(msg, m.keys.Command):
		m.mode = modeCommand
		return m, m.cmdline.Focus()
	case key.Matches(msg, m.keys.Clear):
		a.ClearMessage()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.FocusLeft):
		a.SetFocus(calendar.Left)
	case key.Matches(msg, m.keys.FocusRight):
		a.SetFocus(calendar.Right)
	case key.Matches(msg, m.keys.FocusUp):
		a.SetFocus(calendar.Up)
	case key.Matches(msg, m.keys.FocusDown):
		a.SetFocus(calendar.Down)

	case key.Matches(msg, m.keys.CursorLeft):
		a.MoveCursor(calendar.Left)
	case key.Matches(msg, m.keys.CursorRight):
		a.MoveCursor(calendar.Right)
	case key.Matches(msg, m.keys.CursorUp):
		a.MoveCursor(calendar.Up)
	case key.Matches(msg, m.keys.CursorDown):
		a.MoveCursor(calendar.Down)

	case key.Matches(msg, m.keys.MonthNext):
		a.SiftForward()
	case key.Matches(msg, m.keys.MonthPrev):
		a.SiftBackward()
	case key.Matches(msg, m.keys.ResetCursor):
		a.ResetCursor()
	case key.Matches(msg, m.keys.PageNext):
		a.PageFocused(true)
	case key.Matches(msg, m.keys.PagePrev):
		a.PageFocused(false)

	case key.Matches(msg, m.keys.CycleMode):
		a.CycleMode()
	case key.Matches(msg, m.keys.WeekAll):
		a.SetAllModes(habit.Week)
	case key.Matches(msg, m.keys.ResetAll):
		a.ResetViews()

	case key.Matches(msg, m.keys.Increment):
		a.ModifyFocused(habit.Increment)
	case key.Matches(msg, m.keys.Decrement):
		a.ModifyFocused(habit.Decrement)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.statusBar())
	b.WriteString("\n")
	b.WriteString(m.bottomLine())
	return b.String()
}

// renderGrid lays the habits out app.GridWidth to a row.
func (m Model) renderGrid() string {
	hs := m.app.Habits()
	if len(hs) == 0 {
		return ""
	}
	v := habitView{look: m.look, theme: m.theme, today: m.app.Today()}
	var rows []string
	for start := 0; start < len(hs); start += app.GridWidth {
		end := min(start+app.GridWidth, len(hs))
		cells := make([]string, 0, app.GridWidth)
		for i := start; i < end; i++ {
			cells = append(cells, v.render(hs[i], i == m.app.Focus()))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) statusBar() string {
	st := m.app.Status()
	width := max(m.width, app.GridWidth*(app.ViewWidth+2))
	gap := width - lipgloss.Width(st.Left) - lipgloss.Width(st.Right)
	if gap < 1 {
		gap = 1
	}
	return m.theme.Status.Render(st.Left + strings.Repeat(" ", gap) + st.Right)
}

// bottomLine is the command prompt while typing, else the message, else the
// key help.
func (m Model) bottomLine() string {
	if m.mode == modeCommand {
		return m.cmdline.View()
	}
	msg := m.app.Message()
	switch {
	case msg.Empty():
		return m.help.View(m.keys)
	case msg.Kind == app.Error:
		return m.theme.Error.Render(msg.Contents)
	default:
		return m.theme.Info.Render(msg.Contents)
	}
}
