package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/habit"
)

// OutputFormat represents different output formats
type OutputFormat string

const (
	FormatPlain OutputFormat = "plain"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatCSV   OutputFormat = "csv"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPlain, FormatTable, FormatJSON, FormatCSV:
		return f, nil
	case "":
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown format %q (plain, table, json, csv)", s)
	}
}

// RenderConfig contains configuration for output rendering
type RenderConfig struct {
	Format OutputFormat
	Color  bool
}

// HabitRow is one habit as reported on the command line for a given day.
type HabitRow struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Goal      string  `json:"goal"`
	Auto      bool    `json:"auto,omitempty"`
	Value     float64 `json:"value"`
	Tracked   bool    `json:"tracked"`
	Remaining float64 `json:"remaining"`
	Reached   bool    `json:"reached"`
	Missed    int     `json:"missed"`
}

// Rows reports every habit for day. Missed counts the untouched days of the
// month before today.
func Rows(hs []habit.Habit, day, today calendar.Date) []HabitRow {
	rows := make([]HabitRow, 0, len(hs))
	for _, h := range hs {
		v, ok := h.Query(day)
		rows = append(rows, HabitRow{
			Name:      h.Name(),
			Kind:      string(h.Kind()),
			Goal:      h.GoalLabel(),
			Auto:      h.IsAuto(),
			Value:     v,
			Tracked:   ok,
			Remaining: h.Remaining(day),
			Reached:   h.ReachedGoal(day),
			Missed:    len(h.MissedDates(today)),
		})
	}
	return rows
}

// BucketRow describes one archived month.
type BucketRow struct {
	Name    string `json:"name"`
	File    string `json:"file"`
	Habits  int    `json:"habits"`
	Entries int    `json:"entries"`
}

// Renderer handles output formatting
type Renderer struct {
	config  *RenderConfig
	reached func(a ...interface{}) string
	todo    func(a ...interface{}) string
	header  func(a ...interface{}) string
}

func NewRenderer(config *RenderConfig) *Renderer {
	if config == nil {
		config = &RenderConfig{Format: FormatPlain, Color: true}
	}
	return &Renderer{
		config:  config,
		reached: colorFunc(config.Color, color.FgCyan),
		todo:    colorFunc(config.Color, color.FgMagenta),
		header:  colorFunc(config.Color, color.Bold),
	}
}

func colorFunc(enabled bool, attrs ...color.Attribute) func(a ...interface{}) string {
	c := color.New(attrs...)
	if !enabled {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.SprintFunc()
}

// RenderHabits formats habit rows. Plain output is one name per line.
func (r *Renderer) RenderHabits(rows []HabitRow) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(rows)
	case FormatCSV:
		return r.habitsCSV(rows)
	case FormatTable:
		return r.habitsTable(rows), nil
	default:
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(row.Name)
			b.WriteString("\n")
		}
		return b.String(), nil
	}
}

func (r *Renderer) habitsTable(rows []HabitRow) string {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(r.header("NAME"), r.header("KIND"), r.header("GOAL"), r.header("TODAY"), r.header("REMAINING"), r.header("MISSED"))
	for _, row := range rows {
		paint := r.todo
		if row.Reached {
			paint = r.reached
		}
		today := "-"
		if row.Tracked {
			today = FormatAmount(row.Value)
		}
		name := row.Name
		if row.Auto {
			name += " (auto)"
		}
		tbl.AddRow(name, row.Kind, row.Goal, paint(today), FormatAmount(row.Remaining), row.Missed)
	}
	return tbl.String() + "\n"
}

func (r *Renderer) habitsCSV(rows []HabitRow) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"name", "kind", "goal", "auto", "value", "tracked", "remaining", "reached", "missed"})
	for _, row := range rows {
		_ = w.Write([]string{
			row.Name,
			row.Kind,
			row.Goal,
			strconv.FormatBool(row.Auto),
			FormatAmount(row.Value),
			strconv.FormatBool(row.Tracked),
			FormatAmount(row.Remaining),
			strconv.FormatBool(row.Reached),
			strconv.Itoa(row.Missed),
		})
	}
	w.Flush()
	return buf.String(), w.Error()
}

// RenderDates prints one ISO date per line.
func (r *Renderer) RenderDates(ds []calendar.Date) (string, error) {
	if r.config.Format == FormatJSON {
		out := make([]string, len(ds))
		for i, d := range ds {
			out[i] = d.String()
		}
		return renderJSON(out)
	}
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(d.String())
		b.WriteString("\n")
	}
	return b.String(), nil
}

// RenderBuckets lists archived months, oldest first.
func (r *Renderer) RenderBuckets(rows []BucketRow) (string, error) {
	switch r.config.Format {
	case FormatJSON:
		return renderJSON(rows)
	case FormatPlain:
		var b strings.Builder
		for _, row := range rows {
			b.WriteString(row.Name)
			b.WriteString("\n")
		}
		return b.String(), nil
	default:
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(r.header("MONTH"), r.header("HABITS"), r.header("ENTRIES"), r.header("FILE"))
		for _, row := range rows {
			tbl.AddRow(row.Name, row.Habits, row.Entries, row.File)
		}
		return tbl.String() + "\n", nil
	}
}

// RenderSummary is the one-line progress report for a day.
func (r *Renderer) RenderSummary(day calendar.Date, completed, remaining float64) string {
	paint := r.todo
	if remaining == 0 {
		paint = r.reached
	}
	return fmt.Sprintf("%s: %s completed, %s remaining\n",
		day, r.reached(FormatAmount(completed)), paint(FormatAmount(remaining)))
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// FormatAmount prints a habit amount without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
