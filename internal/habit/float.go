package habit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ramanasai/tally/internal/calendar"
)

// MaxPrecision is the largest number of decimal digits a Float habit tracks.
const MaxPrecision = 3

// maxUnits keeps every unit count exactly representable as a float64.
const maxUnits = 1 << 53

// FloatUnits converts v to whole units of 10^-precision. v must be finite,
// non-negative, no finer than precision and below 2^53 units.
func FloatUnits(v float64, precision uint8) (int64, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: expected a value >= 0, got %v", ErrInvalidValue, v)
	}
	scaled := v * math.Pow10(int(precision))
	if scaled >= maxUnits {
		return 0, fmt.Errorf("%w: %v is too large", ErrInvalidValue, v)
	}
	if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
		return 0, fmt.Errorf("%w: %v has more than %d decimal digit(s)", ErrInvalidValue, v, precision)
	}
	return int64(math.Round(scaled)), nil
}

// Float is a habit with a fractional goal. Values are held as whole units of
// 10^-precision so increments never accumulate rounding error.
type Float struct {
	name      string
	stats     map[calendar.Date]int64
	goal      int64
	precision uint8
	view      ViewState
}

// NewFloat creates a fractional habit. goal is rounded to precision digits and
// must already be in range; see FloatUnits.
func NewFloat(name string, goal float64, precision uint8) *Float {
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	f := &Float{name: name, stats: make(map[calendar.Date]int64), precision: precision}
	f.goal = f.toUnits(goal)
	return f
}

func (f *Float) Name() string     { return f.name }
func (f *Float) Kind() Kind       { return KindFloat }
func (f *Float) Goal() float64    { return f.fromUnits(f.goal) }
func (f *Float) IsAuto() bool     { return false }
func (f *Float) View() *ViewState { return &f.view }
func (f *Float) Precision() uint8 { return f.precision }

func (f *Float) GoalLabel() string { return f.FormatValue(f.Goal()) }

// FormatValue renders v with the habit's precision.
func (f *Float) FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', int(f.precision), 64)
}

func (f *Float) scale() float64 {
	return math.Pow10(int(f.precision))
}

func (f *Float) toUnits(v float64) int64 {
	return int64(math.Round(v * f.scale()))
}

func (f *Float) fromUnits(u int64) float64 {
	return float64(u) / f.scale()
}

func (f *Float) Query(d calendar.Date) (float64, bool) {
	u, ok := f.stats[d]
	return f.fromUnits(u), ok
}

// Insert stores v for d; v must be >= 0 and representable at the habit's
// precision. Zero removes the entry.
func (f *Float) Insert(d calendar.Date, v float64) error {
	u, err := FloatUnits(v, f.precision)
	if err != nil {
		return fmt.Errorf("%q: %w", f.name, err)
	}
	f.setUnits(d, u)
	return nil
}

func (f *Float) setUnits(d calendar.Date, u int64) {
	if u <= 0 {
		delete(f.stats, d)
		return
	}
	f.stats[d] = u
}

func (f *Float) Modify(d calendar.Date, ev TrackEvent) {
	u, ok := f.stats[d]
	switch ev {
	case Increment:
		if u+1 < maxUnits {
			f.stats[d] = u + 1
		}
	case Decrement:
		if ok {
			f.setUnits(d, u-1)
		}
	}
}

func (f *Float) ReachedGoal(d calendar.Date) bool {
	return f.stats[d] >= f.goal
}

func (f *Float) Remaining(d calendar.Date) float64 {
	u := f.stats[d]
	if u >= f.goal {
		return 0
	}
	return f.fromUnits(f.goal - u)
}

func (f *Float) MissedDates(today calendar.Date) []calendar.Date {
	return missedDates(f, today)
}

func (f *Float) Dates() []calendar.Date { return sortedDates(f.stats) }

func (f *Float) Partial(keep func(calendar.Date) bool) Habit {
	return &Float{name: f.name, stats: filterStats(f.stats, keep), goal: f.goal, precision: f.precision}
}
