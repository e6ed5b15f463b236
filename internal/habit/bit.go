package habit

import (
	"fmt"

	"github.com/ramanasai/tally/internal/calendar"
)

// Bit is a yes/no habit. A stored false is kept as an explicit entry.
type Bit struct {
	name  string
	stats map[calendar.Date]bool
	view  ViewState
}

func NewBit(name string) *Bit {
	return &Bit{name: name, stats: make(map[calendar.Date]bool)}
}

func (b *Bit) Name() string      { return b.name }
func (b *Bit) Kind() Kind        { return KindBit }
func (b *Bit) Goal() float64     { return 1 }
func (b *Bit) GoalLabel() string { return "1" }
func (b *Bit) IsAuto() bool      { return false }
func (b *Bit) View() *ViewState  { return &b.view }

func (b *Bit) Set(d calendar.Date, v bool) {
	b.stats[d] = v
}

func (b *Bit) Query(d calendar.Date) (float64, bool) {
	v, ok := b.stats[d]
	if !ok {
		return 0, false
	}
	if v {
		return 1, true
	}
	return 0, true
}

func (b *Bit) Insert(d calendar.Date, v float64) error {
	switch v {
	case 0:
		b.Set(d, false)
	case 1:
		b.Set(d, true)
	default:
		return fmt.Errorf("%w: %q expects 0 or 1, got %v", ErrInvalidValue, b.name, v)
	}
	return nil
}

// Modify toggles on Increment (absent counts as false). Decrement walks
// true -> false -> absent.
func (b *Bit) Modify(d calendar.Date, ev TrackEvent) {
	v, ok := b.stats[d]
	switch ev {
	case Increment:
		b.stats[d] = !v
	case Decrement:
		if !ok {
			return
		}
		if v {
			b.stats[d] = false
		} else {
			delete(b.stats, d)
		}
	}
}

func (b *Bit) ReachedGoal(d calendar.Date) bool {
	return b.stats[d]
}

func (b *Bit) Remaining(d calendar.Date) float64 {
	if b.stats[d] {
		return 0
	}
	return 1
}

func (b *Bit) MissedDates(today calendar.Date) []calendar.Date {
	return missedDates(b, today)
}

func (b *Bit) Dates() []calendar.Date { return sortedDates(b.stats) }

func (b *Bit) Partial(keep func(calendar.Date) bool) Habit {
	return &Bit{name: b.name, stats: filterStats(b.stats, keep)}
}
