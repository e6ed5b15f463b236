package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ramanasai/tally/internal/app"
	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/config"
	"github.com/ramanasai/tally/internal/habit"
)

const cellWidth = 3

// habitView draws one habit in a box of app.ViewWidth by app.ViewHeight
// according to the habit's own view mode and cursor.
type habitView struct {
	look  config.Look
	theme Theme
	today calendar.Date
}

func (v habitView) render(h habit.Habit, focused bool) string {
	var lines []string
	switch h.View().Mode {
	case habit.Week:
		lines = v.week(h)
	case habit.Month:
		lines = v.month(h)
	case habit.Year:
		lines = v.year(h)
	default:
		lines = v.day(h)
	}
	body := lipgloss.NewStyle().
		Width(app.ViewWidth).
		Height(app.ViewHeight).
		MaxHeight(app.ViewHeight).
		Render(strings.Join(lines, "\n"))
	return v.theme.border(focused).Render(body)
}

func (v habitView) title(h habit.Habit, label string) string {
	name := truncate(h.Name(), app.ViewWidth-len(label)-1)
	gap := app.ViewWidth - lipgloss.Width(name) - len(label)
	if gap < 1 {
		gap = 1
	}
	return v.theme.Title.Render(name) + strings.Repeat(" ", gap) + v.theme.Hint.Render(label)
}

// day is a month grid starting on Monday with one cell per day.
func (v habitView) day(h habit.Habit) []string {
	cursor := h.View().Cursor.Date
	first := cursor.FirstOfMonth()
	lines := []string{
		v.title(h, first.Format("Jan 2006")),
		v.theme.Hint.Render(" Mo Tu We Th Fr Sa Su"),
	}

	offset := (int(first.Weekday()) + 6) % 7
	var row strings.Builder
	row.WriteString(strings.Repeat(" ", offset*cellWidth))
	col := offset
	for d := first; d.SameMonth(first); d = d.AddDays(1) {
		cell := v.dayCell(h, d)
		if d == cursor {
			cell = v.theme.Cursor.Render(cell)
		}
		row.WriteString(cell)
		col++
		if col == 7 {
			lines = append(lines, row.String())
			row.Reset()
			col = 0
		}
	}
	if col > 0 {
		lines = append(lines, row.String())
	}
	return lines
}

func (v habitView) dayCell(h habit.Habit, d calendar.Date) string {
	if d.After(v.today) {
		return v.theme.Inactive.Render(pad(v.look.FutureChr))
	}
	val, ok := h.Query(d)
	if !ok {
		if d == v.today {
			return v.theme.Todo.Render(pad(strconv.Itoa(d.Day)))
		}
		return v.theme.Inactive.Render(pad(v.look.MissingChr))
	}

	style := v.theme.Todo
	if h.ReachedGoal(d) {
		style = v.theme.Reached
	}
	text := v.look.FalseChr
	switch {
	case h.Kind() == habit.KindBit:
		if val == 1 {
			text = v.look.TrueChr
		}
	default:
		text = formatValue(val)
		if len(text) > cellWidth-1 {
			text = v.look.FalseChr
			if h.ReachedGoal(d) {
				text = v.look.TrueChr
			}
		}
	}
	return style.Render(pad(text))
}

// week shows one bar per week of the cursor's month. A filled block is a day
// that reached the goal.
func (v habitView) week(h habit.Habit) []string {
	cursor := h.View().Cursor.Date
	first := cursor.FirstOfMonth()
	lines := []string{v.title(h, first.Format("Jan 2006"))}

	start := first.AddDays(-((int(first.Weekday()) + 6) % 7))
	for n := 1; start.Before(first) || start.SameMonth(first); n++ {
		var bar strings.Builder
		done := 0
		for i := 0; i < 7; i++ {
			d := start.AddDays(i)
			switch {
			case !d.SameMonth(first):
				bar.WriteString(" ")
			case d.After(v.today):
				bar.WriteString(v.theme.Inactive.Render("·"))
			case reached(h, d):
				done++
				bar.WriteString(v.theme.Reached.Render("█"))
			default:
				bar.WriteString(v.theme.Todo.Render("░"))
			}
		}
		label := fmt.Sprintf("W%d ", n)
		if off := cursor.DaysSince(start); off >= 0 && off < 7 {
			label = v.theme.Cursor.Render(label)
		}
		lines = append(lines, fmt.Sprintf("%s%s %d/7", label, bar.String(), done))
		start = start.AddDays(7)
	}
	return lines
}

// month lists the days reached in each month of the cursor's year.
func (v habitView) month(h habit.Habit) []string {
	cursor := h.View().Cursor.Date
	lines := []string{v.title(h, strconv.Itoa(cursor.Year))}

	cell := func(m time.Month) string {
		text := fmt.Sprintf("%s %3d", m.String()[:3], reachedInMonth(h, cursor.Year, m))
		first := calendar.NewDate(cursor.Year, m, 1)
		switch {
		case first.After(v.today):
			return v.theme.Inactive.Render(text)
		case m == cursor.Month:
			return v.theme.Cursor.Render(text)
		}
		return text
	}
	for m := time.January; m <= time.June; m++ {
		lines = append(lines, cell(m)+"     "+cell(m+6))
	}
	return lines
}

// year lists the cursor's year and every earlier year with entries.
func (v habitView) year(h habit.Habit) []string {
	cursor := h.View().Cursor.Date
	lines := []string{v.title(h, "years")}

	seen := map[int]bool{cursor.Year: true}
	for _, d := range h.Dates() {
		if d.Year <= cursor.Year {
			seen[d.Year] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	for _, y := range years {
		if len(lines) == app.ViewHeight {
			break
		}
		n := 0
		for m := time.January; m <= time.December; m++ {
			n += reachedInMonth(h, y, m)
		}
		text := fmt.Sprintf("%d %4d days", y, n)
		if y == cursor.Year {
			text = v.theme.Cursor.Render(text)
		}
		lines = append(lines, text)
	}
	return lines
}

// reached counts only days that carry an entry, so goal-less habits are not
// credited for untouched days.
func reached(h habit.Habit, d calendar.Date) bool {
	if _, ok := h.Query(d); !ok {
		return false
	}
	return h.ReachedGoal(d)
}

func reachedInMonth(h habit.Habit, year int, m time.Month) int {
	n := 0
	for _, d := range h.Dates() {
		if d.Year == year && d.Month == m && h.ReachedGoal(d) {
			n++
		}
	}
	return n
}

// pad right-aligns s in a day cell.
func pad(s string) string {
	if w := lipgloss.Width(s); w < cellWidth {
		return strings.Repeat(" ", cellWidth-w) + s
	}
	return s
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
