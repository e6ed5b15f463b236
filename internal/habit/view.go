package habit

import "github.com/ramanasai/tally/internal/calendar"

// ViewMode selects how a habit's history is laid out.
type ViewMode int

const (
	Day ViewMode = iota
	Week
	Month
	Year
)

func (m ViewMode) String() string {
	switch m {
	case Week:
		return "WEEK"
	case Month:
		return "MONTH"
	case Year:
		return "YEAR"
	default:
		return "DAY"
	}
}

// Next cycles Day -> Week -> Month -> Year -> Day.
func (m ViewMode) Next() ViewMode {
	return (m + 1) % 4
}

// ViewState is the per-habit cursor and view mode. It is never persisted.
type ViewState struct {
	Cursor calendar.Cursor
	Mode   ViewMode
}

func (v *ViewState) MoveCursor(d calendar.Direction, today calendar.Date) {
	v.Cursor.SmallSeek(d, today)
}

// Reset returns the view to today in Day mode.
func (v *ViewState) Reset(today calendar.Date) {
	v.Cursor.Reset(today)
	v.Mode = Day
}
