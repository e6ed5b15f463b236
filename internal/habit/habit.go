// Package habit implements the tracked habit kinds. Every kind satisfies the
// Habit interface so the collection, the views and the archiver can treat them
// uniformly while each kind keeps its own goal arithmetic.
package habit

import (
	"errors"
	"sort"

	"github.com/ramanasai/tally/internal/calendar"
)

// ErrInvalidValue is returned by Insert when a value fails the kind's validity
// predicate.
var ErrInvalidValue = errors.New("habit: invalid value")

// Kind is the on-disk discriminator of a habit.
type Kind string

const (
	KindBit   Kind = "Bit"
	KindCount Kind = "Count"
	KindFloat Kind = "Float"
)

type TrackEvent int

const (
	Increment TrackEvent = iota
	Decrement
)

func (e TrackEvent) String() string {
	if e == Decrement {
		return "decrement"
	}
	return "increment"
}

// Habit is the behaviour shared by all kinds. Values cross this interface as
// float64: Bit uses 0/1, Count whole numbers, Float multiples of its step.
type Habit interface {
	Name() string
	Kind() Kind
	// Goal is the daily target amount (1 for Bit).
	Goal() float64
	// GoalLabel is the goal as the user typed it.
	GoalLabel() string
	IsAuto() bool

	Query(d calendar.Date) (float64, bool)
	Insert(d calendar.Date, v float64) error
	Modify(d calendar.Date, ev TrackEvent)
	ReachedGoal(d calendar.Date) bool
	Remaining(d calendar.Date) float64

	// MissedDates lists the days from the 1st of today's month up to, but not
	// including, today that have no entry.
	MissedDates(today calendar.Date) []calendar.Date
	// Dates lists every day with an entry, ascending.
	Dates() []calendar.Date
	// Partial copies the habit keeping only the entries for which keep is true.
	Partial(keep func(calendar.Date) bool) Habit

	View() *ViewState
}

func missedDates(h Habit, today calendar.Date) []calendar.Date {
	var days []calendar.Date
	for d := today.FirstOfMonth(); d.Before(today); d = d.AddDays(1) {
		if _, ok := h.Query(d); !ok {
			days = append(days, d)
		}
	}
	return days
}

func sortedDates[V any](stats map[calendar.Date]V) []calendar.Date {
	dates := make([]calendar.Date, 0, len(stats))
	for d := range stats {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func filterStats[V any](stats map[calendar.Date]V, keep func(calendar.Date) bool) map[calendar.Date]V {
	out := make(map[calendar.Date]V)
	for d, v := range stats {
		if keep(d) {
			out[d] = v
		}
	}
	return out
}

// Find returns the habit with the given name.
func Find(hs []Habit, name string) (Habit, bool) {
	for _, h := range hs {
		if h.Name() == name {
			return h, true
		}
	}
	return nil, false
}

// Names returns the habit names in order.
func Names(hs []Habit) []string {
	names := make([]string, len(hs))
	for i, h := range hs {
		names[i] = h.Name()
	}
	return names
}
