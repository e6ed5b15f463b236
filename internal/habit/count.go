package habit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ramanasai/tally/internal/calendar"
)

// Count is a habit with a whole-number daily goal. Auto habits are only
// changed by explicit track commands, never by the per-view keys.
type Count struct {
	name  string
	stats map[calendar.Date]uint32
	goal  uint32
	auto  bool
	view  ViewState
}

func NewCount(name string, goal uint32, auto bool) *Count {
	return &Count{name: name, stats: make(map[calendar.Date]uint32), goal: goal, auto: auto}
}

func (c *Count) Name() string      { return c.name }
func (c *Count) Kind() Kind        { return KindCount }
func (c *Count) Goal() float64     { return float64(c.goal) }
func (c *Count) GoalLabel() string { return strconv.FormatUint(uint64(c.goal), 10) }
func (c *Count) IsAuto() bool      { return c.auto }
func (c *Count) View() *ViewState  { return &c.view }

// Set stores n for d; zero removes the entry.
func (c *Count) Set(d calendar.Date, n uint32) {
	if n == 0 {
		delete(c.stats, d)
		return
	}
	c.stats[d] = n
}

func (c *Count) Query(d calendar.Date) (float64, bool) {
	v, ok := c.stats[d]
	return float64(v), ok
}

func (c *Count) Insert(d calendar.Date, v float64) error {
	if v < 0 || v != math.Trunc(v) || v > math.MaxUint32 {
		return fmt.Errorf("%w: %q expects a whole number >= 0, got %v", ErrInvalidValue, c.name, v)
	}
	c.Set(d, uint32(v))
	return nil
}

func (c *Count) Modify(d calendar.Date, ev TrackEvent) {
	v, ok := c.stats[d]
	switch ev {
	case Increment:
		if v < math.MaxUint32 {
			c.stats[d] = v + 1
		}
	case Decrement:
		if ok {
			c.Set(d, v-1)
		}
	}
}

func (c *Count) ReachedGoal(d calendar.Date) bool {
	return c.stats[d] >= c.goal
}

func (c *Count) Remaining(d calendar.Date) float64 {
	v := c.stats[d]
	if v >= c.goal {
		return 0
	}
	return float64(c.goal - v)
}

func (c *Count) MissedDates(today calendar.Date) []calendar.Date {
	return missedDates(c, today)
}

func (c *Count) Dates() []calendar.Date { return sortedDates(c.stats) }

func (c *Count) Partial(keep func(calendar.Date) bool) Habit {
	return &Count{name: c.name, stats: filterStats(c.stats, keep), goal: c.goal, auto: c.auto}
}
