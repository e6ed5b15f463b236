// Package calendar holds the day-granular date type and the navigable cursor
// shared by the application and every habit view.
package calendar

// Direction is a grid direction used for focus and cursor moves.
type Direction int

const (
	None Direction = iota
	Left
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Cursor is the day under inspection. Forward moves never pass today.
type Cursor struct {
	Date Date
}

func NewCursor(today Date) Cursor {
	return Cursor{Date: today}
}

// MonthForward advances one month, clamping the day of month and never
// passing today.
func (c *Cursor) MonthForward(today Date) {
	c.Date = c.Date.AddMonths(1)
	if c.Date.After(today) {
		c.Date = today
	}
}

// MonthBackward retreats one month, clamping the day of month.
func (c *Cursor) MonthBackward() {
	c.Date = c.Date.AddMonths(-1)
}

func (c *Cursor) Reset(today Date) {
	c.Date = today
}

// SmallSeek moves one cell in the month grid: a day left/right, a week up/down.
func (c *Cursor) SmallSeek(d Direction, today Date) {
	switch d {
	case Left:
		c.Date = c.Date.AddDays(-1)
	case Right:
		c.Date = c.Date.AddDays(1)
	case Up:
		c.Date = c.Date.AddDays(-7)
	case Down:
		c.Date = c.Date.AddDays(7)
	default:
		return
	}
	if c.Date.After(today) {
		c.Date = today
	}
}
