// Package app holds the live habit collection together with the focus, the
// global cursor and the status message, and applies parsed commands to it.
package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ramanasai/tally/internal/archive"
	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/habit"
)

// Grid geometry of the habit views.
const (
	GridWidth  = 3
	ViewWidth  = 25
	ViewHeight = 8
)

var (
	ErrDuplicateHabit = errors.New("habit already exists")
	ErrNoSuchHabit    = errors.New("no such habit")
)

// Store persists the collection and the archive buckets.
type Store interface {
	Load() ([]habit.Habit, error)
	Save(hs []habit.Habit) error
	archive.Writer
}

// App is the collection owned by the interactive session. It is not safe for
// concurrent use.
type App struct {
	habits  []habit.Habit
	focus   int
	cursor  calendar.Cursor
	message Message
	store   Store
	now     func() time.Time
}

type Option func(*App)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// New builds an App over hs. Every habit's view starts on today.
func New(hs []habit.Habit, s Store, opts ...Option) *App {
	a := &App{
		habits:  hs,
		store:   s,
		now:     time.Now,
		message: StartupMessage(),
	}
	for _, o := range opts {
		o(a)
	}
	a.cursor = calendar.NewCursor(a.Today())
	a.resetViews()
	return a
}

// Load reads the snapshot from s. A corrupt snapshot is returned as an error
// and nothing is built.
func Load(s Store, opts ...Option) (*App, error) {
	hs, err := s.Load()
	if err != nil {
		return nil, err
	}
	return New(hs, s, opts...), nil
}

func (a *App) Today() calendar.Date { return calendar.DateOf(a.now()) }

func (a *App) Habits() []habit.Habit { return a.habits }
func (a *App) Len() int              { return len(a.habits) }
func (a *App) Focus() int            { return a.focus }
func (a *App) Cursor() calendar.Date { return a.cursor.Date }
func (a *App) Message() Message      { return a.message }
func (a *App) ClearMessage()         { a.message.Clear() }
func (a *App) Names() []string       { return habit.Names(a.habits) }

// Focused returns the habit receiving input.
func (a *App) Focused() (habit.Habit, bool) {
	if len(a.habits) == 0 {
		return nil, false
	}
	return a.habits[a.focus], true
}

// AddHabit appends h unless a habit of the same name exists.
func (a *App) AddHabit(h habit.Habit) error {
	if _, ok := habit.Find(a.habits, h.Name()); ok {
		return fmt.Errorf("%w: %s", ErrDuplicateHabit, h.Name())
	}
	h.View().Reset(a.Today())
	h.View().Cursor = a.cursor
	a.habits = append(a.habits, h)
	return nil
}

// DeleteByName removes the habit called name and moves focus to the first
// habit. On a miss nothing changes.
func (a *App) DeleteByName(name string) error {
	for i, h := range a.habits {
		if h.Name() == name {
			a.habits = append(a.habits[:i], a.habits[i+1:]...)
			a.focus = 0
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNoSuchHabit, name)
}

// MissedByName lists the days of this month before today with no entry.
func (a *App) MissedByName(name string) ([]calendar.Date, error) {
	h, ok := habit.Find(a.habits, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchHabit, name)
	}
	return h.MissedDates(a.Today()), nil
}

// Mode is the view mode of the focused habit.
func (a *App) Mode() habit.ViewMode {
	h, ok := a.Focused()
	if !ok {
		return habit.Day
	}
	return h.View().Mode
}

func (a *App) SetMode(m habit.ViewMode) {
	if h, ok := a.Focused(); ok {
		h.View().Mode = m
	}
}

// CycleMode advances the focused habit to its next view mode.
func (a *App) CycleMode() { a.SetMode(a.Mode().Next()) }

func (a *App) SetAllModes(m habit.ViewMode) {
	for _, h := range a.habits {
		h.View().Mode = m
	}
}

// ResetViews puts every habit back in Day mode on today.
func (a *App) ResetViews() {
	a.cursor.Reset(a.Today())
	a.resetViews()
}

func (a *App) resetViews() {
	today := a.Today()
	for _, h := range a.habits {
		h.View().Reset(today)
	}
}

// The navigation below is broadcast: the app cursor and every habit cursor
// receive the same move.

func (a *App) SiftForward() {
	today := a.Today()
	a.cursor.MonthForward(today)
	for _, h := range a.habits {
		h.View().Cursor.MonthForward(today)
	}
}

func (a *App) SiftBackward() {
	a.cursor.MonthBackward()
	for _, h := range a.habits {
		h.View().Cursor.MonthBackward()
	}
}

func (a *App) ResetCursor() {
	today := a.Today()
	a.cursor.Reset(today)
	for _, h := range a.habits {
		h.View().Cursor.Reset(today)
	}
}

func (a *App) MoveCursor(d calendar.Direction) {
	today := a.Today()
	a.cursor.SmallSeek(d, today)
	for _, h := range a.habits {
		h.View().MoveCursor(d, today)
	}
}

// PageFocused moves only the focused habit's cursor by a month.
func (a *App) PageFocused(forward bool) {
	h, ok := a.Focused()
	if !ok {
		return
	}
	if forward {
		h.View().Cursor.MonthForward(a.Today())
	} else {
		h.View().Cursor.MonthBackward()
	}
}

// SetFocus moves focus around a grid GridWidth habits wide. There is no
// wraparound.
func (a *App) SetFocus(d calendar.Direction) {
	n := len(a.habits)
	if n == 0 {
		return
	}
	switch d {
	case calendar.Right:
		if a.focus != n-1 {
			a.focus++
		}
	case calendar.Left:
		if a.focus != 0 {
			a.focus--
		}
	case calendar.Down:
		if a.focus+GridWidth < n-1 {
			a.focus += GridWidth
		} else {
			a.focus = n - 1
		}
	case calendar.Up:
		if a.focus-GridWidth >= 0 {
			a.focus -= GridWidth
		} else {
			a.focus = 0
		}
	}
}

// SetFocusIndex focuses habit i when it exists.
func (a *App) SetFocusIndex(i int) {
	if i >= 0 && i < len(a.habits) {
		a.focus = i
	}
}

// ModifyFocused applies ev to the focused habit on its own cursor date. Auto
// habits only change through Track.
func (a *App) ModifyFocused(ev habit.TrackEvent) {
	h, ok := a.Focused()
	if !ok || h.IsAuto() {
		return
	}
	h.Modify(h.View().Cursor.Date, ev)
}

// Track applies ev to today's entry of the named habit.
func (a *App) Track(name string, ev habit.TrackEvent) error {
	h, ok := habit.Find(a.habits, name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchHabit, name)
	}
	h.Modify(a.Today(), ev)
	return nil
}

// Progress sums goals and remaining amounts over the collection for d.
func (a *App) Progress(d calendar.Date) (completed, remaining float64) {
	var total float64
	for _, h := range a.habits {
		total += h.Goal()
		remaining += h.Remaining(d)
	}
	return total - remaining, remaining
}

// StatusLine is the text under the grid: a summary on the left and the cursor
// date on the right.
type StatusLine struct {
	Left  string
	Right string
}

func (a *App) Status() StatusLine {
	today := a.Today()
	completed, remaining := a.Progress(today)
	left := fmt.Sprintf("Today: %s completed, %s remaining --%s--",
		formatAmount(completed), formatAmount(remaining), a.Mode())

	var right string
	if a.cursor.Date == today {
		right = today.Format("02/Jan/06")
	} else {
		since := today.DaysSince(a.cursor.Date)
		plural := "s"
		if since == 1 {
			plural = ""
		}
		right = fmt.Sprintf("%s (%d day%s ago)", a.cursor.Date, since, plural)
	}
	return StatusLine{Left: left, Right: right}
}

func formatAmount(v float64) string {
	v = math.Round(v*1000) / 1000
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Save writes the snapshot.
func (a *App) Save() error {
	if a.store == nil {
		return errors.New("app: no store")
	}
	return a.store.Save(a.habits)
}

// ArchiveHabits moves past months into their buckets. The live collection is
// replaced only when every bucket was written.
func (a *App) ArchiveHabits() (archive.Result, error) {
	if a.store == nil {
		return archive.Result{}, errors.New("app: no store")
	}
	res, err := archive.Run(a.habits, a.Today(), a.store)
	if err != nil {
		return res, err
	}
	a.habits = res.Current
	a.focus = 0
	a.resetViews()
	a.cursor.Reset(a.Today())
	return res, nil
}
