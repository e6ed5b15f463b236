package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/tally/internal/config"
)

type Theme struct {
	Reached  lipgloss.Style
	Todo     lipgloss.Style
	Inactive lipgloss.Style
	Cursor   lipgloss.Style

	Title       lipgloss.Style
	BorderFocus lipgloss.Style
	BorderDim   lipgloss.Style

	Status lipgloss.Style
	Info   lipgloss.Style
	Error  lipgloss.Style
	Hint   lipgloss.Style
}

// NewTheme builds the styles from the configured colour names.
func NewTheme(c config.Colors) Theme {
	reached := parseColor(c.Reached)
	todo := parseColor(c.Todo)
	inactive := parseColor(c.Inactive)
	return Theme{
		Reached:  lipgloss.NewStyle().Foreground(reached),
		Todo:     lipgloss.NewStyle().Foreground(todo),
		Inactive: lipgloss.NewStyle().Foreground(inactive),
		Cursor:   lipgloss.NewStyle().Background(parseColor("light black")),

		Title:       lipgloss.NewStyle().Bold(true),
		BorderFocus: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(reached),
		BorderDim:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(inactive),

		Status: lipgloss.NewStyle().Faint(true),
		Info:   lipgloss.NewStyle(),
		Error:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Hint:   lipgloss.NewStyle().Faint(true).Foreground(inactive),
	}
}

func (t Theme) border(focused bool) lipgloss.Style {
	if focused {
		return t.BorderFocus
	}
	return t.BorderDim
}

var ansiNames = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// parseColor accepts an ANSI colour name, "light <name>" for the bright
// variant, an ANSI number or a #rrggbb value. Anything else is the terminal
// default.
func parseColor(name string) lipgloss.TerminalColor {
	name = strings.ToLower(strings.TrimSpace(name))
	switch {
	case name == "" || name == "default":
		return lipgloss.NoColor{}
	case strings.HasPrefix(name, "#"):
		return lipgloss.Color(name)
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(name)
	}
	bright := false
	if rest, ok := strings.CutPrefix(name, "light "); ok {
		name, bright = strings.TrimSpace(rest), true
	}
	n, ok := ansiNames[name]
	if !ok {
		return lipgloss.NoColor{}
	}
	if bright {
		n += 8
	}
	return lipgloss.Color(strconv.Itoa(n))
}
