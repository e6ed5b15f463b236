package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ramanasai/tally/internal/archive"
	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/command"
	"github.com/ramanasai/tally/internal/habit"
	"github.com/ramanasai/tally/internal/store"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)

func clock() time.Time { return now }

type memStore struct {
	saved   [][]habit.Habit
	buckets map[string][]byte
	failOn  string
	saveErr error
}

func (m *memStore) Load() ([]habit.Habit, error) { return nil, nil }

func (m *memStore) Save(hs []habit.Habit) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, hs)
	return nil
}

func (m *memStore) WriteBucket(b archive.Bucket, data []byte) error {
	if b.Name() == m.failOn {
		return errors.New("permission denied")
	}
	if m.buckets == nil {
		m.buckets = make(map[string][]byte)
	}
	m.buckets[b.Name()] = data
	return nil
}

func newTestApp(t *testing.T, names ...string) (*App, *memStore) {
	t.Helper()
	s := &memStore{}
	a := New(nil, s, WithClock(clock))
	for _, n := range names {
		if err := a.AddHabit(habit.NewCount(n, 1, false)); err != nil {
			t.Fatalf("add %s: %v", n, err)
		}
	}
	return a, s
}

func run(t *testing.T, a *App, line string) bool {
	t.Helper()
	c, err := command.Parse(line)
	return a.ProcessCommand(c, err)
}

func TestStartupMessage(t *testing.T) {
	a, _ := newTestApp(t)
	if a.Message().Contents != "Type :add <habit-name> <goal> to get started, Ctrl-L to dismiss" {
		t.Fatalf("unexpected startup message %q", a.Message().Contents)
	}
	a.ClearMessage()
	if !a.Message().Empty() || a.Message().Kind != Info {
		t.Fatalf("expected a cleared info message, got %+v", a.Message())
	}
}

func TestSetFocusStaysInRange(t *testing.T) {
	a, _ := newTestApp(t, "a", "b", "c", "d", "e", "f", "g")

	tests := []struct {
		start int
		dir   calendar.Direction
		want  int
	}{
		{0, calendar.Left, 0},
		{0, calendar.Right, 1},
		{6, calendar.Right, 6},
		{0, calendar.Down, 3},
		{3, calendar.Down, 6},
		{4, calendar.Down, 6},
		{5, calendar.Down, 6},
		{1, calendar.Up, 0},
		{5, calendar.Up, 2},
		{3, calendar.Up, 0},
		{2, calendar.None, 2},
	}
	for _, tt := range tests {
		a.SetFocusIndex(tt.start)
		a.SetFocus(tt.dir)
		if a.Focus() != tt.want {
			t.Errorf("focus %d moved %s: got %d, want %d", tt.start, tt.dir, a.Focus(), tt.want)
		}
	}
}

func TestSetFocusEmptyCollection(t *testing.T) {
	a, _ := newTestApp(t)
	for _, d := range []calendar.Direction{calendar.Left, calendar.Right, calendar.Up, calendar.Down} {
		a.SetFocus(d)
	}
	if a.Focus() != 0 {
		t.Fatalf("expected focus 0, got %d", a.Focus())
	}
	if _, ok := a.Focused(); ok {
		t.Fatalf("empty collection has no focused habit")
	}
}

func TestAddDuplicateLeavesCollection(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, "add read 3")
	run(t, a, "add read 5")
	if a.Len() != 1 {
		t.Fatalf("expected 1 habit, got %d", a.Len())
	}
	if a.Message().Kind != Error {
		t.Fatalf("expected an error message, got %+v", a.Message())
	}
	if a.Habits()[0].GoalLabel() != "3" {
		t.Fatalf("original habit must be kept, got goal %s", a.Habits()[0].GoalLabel())
	}
}

func TestAddGoalKinds(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, "add walk")
	run(t, a, "add meditate 1")
	run(t, a, "add read 3")
	run(t, a, "add water 2.5")
	run(t, a, "aa commits 4")

	want := []habit.Kind{habit.KindCount, habit.KindBit, habit.KindCount, habit.KindFloat, habit.KindCount}
	for i, h := range a.Habits() {
		if h.Kind() != want[i] {
			t.Errorf("%s: kind %s, want %s", h.Name(), h.Kind(), want[i])
		}
	}
	if walk := a.Habits()[0]; !walk.ReachedGoal(a.Today()) {
		t.Errorf("a habit without a goal is always reached")
	}
	if !a.Habits()[4].IsAuto() {
		t.Errorf("add-auto must create an auto habit")
	}
}

func TestDeleteResetsFocus(t *testing.T) {
	a, _ := newTestApp(t, "a", "b", "c")
	a.SetFocusIndex(2)

	run(t, a, "delete nope")
	if a.Len() != 3 || a.Focus() != 2 || a.Message().Kind != Error {
		t.Fatalf("failed delete must change nothing but the message: len %d focus %d msg %+v", a.Len(), a.Focus(), a.Message())
	}

	run(t, a, "d b")
	if a.Len() != 2 || a.Focus() != 0 {
		t.Fatalf("expected 2 habits focused at 0, got len %d focus %d", a.Len(), a.Focus())
	}
	if got := a.Names(); got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected names %v", got)
	}

	run(t, a, "d a")
	run(t, a, "d c")
	if a.Len() != 0 || a.Focus() != 0 {
		t.Fatalf("expected empty collection, got %d", a.Len())
	}
}

func TestParseErrorBecomesMessage(t *testing.T) {
	a, _ := newTestApp(t, "read")
	if quit := run(t, a, "frobnicate"); quit {
		t.Fatalf("parse errors never quit")
	}
	if a.Message().Kind != Error || a.Message().Contents != "Unknown command `frobnicate`" {
		t.Fatalf("unexpected message %+v", a.Message())
	}
	if a.Len() != 1 {
		t.Fatalf("parse errors must not mutate the collection")
	}
}

func TestReadCountScenario(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, "add read 3")
	today := a.Today()

	a.ModifyFocused(habit.Increment)
	a.ModifyFocused(habit.Increment)
	h, _ := a.Focused()
	if h.Remaining(today) != 1 || h.ReachedGoal(today) {
		t.Fatalf("after 2 increments: remaining %v reached %v", h.Remaining(today), h.ReachedGoal(today))
	}
	a.ModifyFocused(habit.Increment)
	if h.Remaining(today) != 0 || !h.ReachedGoal(today) {
		t.Fatalf("after 3 increments: remaining %v reached %v", h.Remaining(today), h.ReachedGoal(today))
	}
	if got := a.Status().Left; got != "Today: 3 completed, 0 remaining --DAY--" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestMeditateDecrementIsNoop(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, "add meditate 1")
	a.ModifyFocused(habit.Decrement)
	h, _ := a.Focused()
	if _, ok := h.Query(a.Today()); ok {
		t.Fatalf("decrement on an absent date must stay absent")
	}
}

func TestAutoHabitOnlyTracks(t *testing.T) {
	a, _ := newTestApp(t)
	run(t, a, "add-auto commits 2")
	a.ModifyFocused(habit.Increment)
	h, _ := a.Focused()
	if _, ok := h.Query(a.Today()); ok {
		t.Fatalf("auto habits ignore direct modification")
	}

	run(t, a, "tup commits")
	run(t, a, "track-up commits")
	if v, _ := h.Query(a.Today()); v != 2 {
		t.Fatalf("expected 2 after two track-ups, got %v", v)
	}
	run(t, a, "tdown commits")
	if v, _ := h.Query(a.Today()); v != 1 {
		t.Fatalf("expected 1 after track-down, got %v", v)
	}
	run(t, a, "tup nope")
	if a.Message().Kind != Error {
		t.Fatalf("tracking an unknown habit is an error")
	}
}

func TestBroadcastNavigation(t *testing.T) {
	a, _ := newTestApp(t, "a", "b")
	today := a.Today()

	run(t, a, "mprev")
	want := calendar.NewDate(2024, time.February, 15)
	if a.Cursor() != want {
		t.Fatalf("app cursor %s, want %s", a.Cursor(), want)
	}
	for _, h := range a.Habits() {
		if h.View().Cursor.Date != want {
			t.Fatalf("%s cursor %s, want %s", h.Name(), h.View().Cursor.Date, want)
		}
	}

	a.MoveCursor(calendar.Up)
	if a.Cursor() != want.AddDays(-7) || a.Habits()[1].View().Cursor.Date != want.AddDays(-7) {
		t.Fatalf("small seek must reach every cursor")
	}

	run(t, a, "month-next")
	run(t, a, "mnext")
	if a.Cursor() != today {
		t.Fatalf("forward paging stops at today, got %s", a.Cursor())
	}

	a.SiftBackward()
	a.ResetCursor()
	for _, h := range a.Habits() {
		if h.View().Cursor.Date != today {
			t.Fatalf("reset must reach %s", h.Name())
		}
	}
}

func TestViewModesAreLocal(t *testing.T) {
	a, _ := newTestApp(t, "a", "b")
	a.CycleMode()
	if a.Habits()[0].View().Mode != habit.Week || a.Habits()[1].View().Mode != habit.Day {
		t.Fatalf("cycling must only touch the focused habit")
	}
	a.PageFocused(false)
	if a.Habits()[1].View().Cursor.Date != a.Today() || a.Cursor() != a.Today() {
		t.Fatalf("paging must only touch the focused habit")
	}

	a.SetAllModes(habit.Week)
	a.SetFocus(calendar.Right)
	if a.Mode() != habit.Week {
		t.Fatalf("expected WEEK, got %s", a.Mode())
	}

	a.ResetViews()
	for _, h := range a.Habits() {
		if h.View().Mode != habit.Day || h.View().Cursor.Date != a.Today() {
			t.Fatalf("%s not reset", h.Name())
		}
	}
}

func TestStatusRight(t *testing.T) {
	a, _ := newTestApp(t)
	if got := a.Status().Right; got != "15/Mar/24" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	a.MoveCursor(calendar.Left)
	if got := a.Status().Right; got != "2024-03-14 (1 day ago)" {
		t.Fatalf("unexpected timestamp %q", got)
	}
	a.MoveCursor(calendar.Left)
	if got := a.Status().Right; got != "2024-03-13 (2 days ago)" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}

func TestMissedByName(t *testing.T) {
	a, _ := newTestApp(t, "read")
	h, _ := a.Focused()
	h.Modify(calendar.NewDate(2024, time.March, 2), habit.Increment)

	days, err := a.MissedByName("read")
	if err != nil {
		t.Fatalf("missed: %v", err)
	}
	if len(days) != 13 || days[0] != calendar.NewDate(2024, time.March, 1) || days[1] != calendar.NewDate(2024, time.March, 3) {
		t.Fatalf("unexpected missed days %v", days)
	}
	if _, err := a.MissedByName("nope"); !errors.Is(err, ErrNoSuchHabit) {
		t.Fatalf("expected ErrNoSuchHabit, got %v", err)
	}
}

func TestWriteAndQuit(t *testing.T) {
	a, s := newTestApp(t, "read")
	if run(t, a, "w") {
		t.Fatalf("write must not quit")
	}
	if !run(t, a, "wq") || !run(t, a, "q") {
		t.Fatalf("wq and q must quit")
	}
	if len(s.saved) != 3 {
		t.Fatalf("expected 3 saves, got %d", len(s.saved))
	}

	s.saveErr = errors.New("read-only file system")
	if run(t, a, "q") {
		t.Fatalf("a failed save must keep the session open")
	}
	if a.Message().Kind != Error {
		t.Fatalf("expected an error message")
	}
}

func TestArchiveFailureKeepsCollection(t *testing.T) {
	a, s := newTestApp(t)
	run(t, a, "add read 2")
	h, _ := a.Focused()
	h.Insert(calendar.NewDate(2024, time.January, 5), 1)
	h.Insert(calendar.NewDate(2024, time.February, 5), 1)
	h.Insert(a.Today(), 2)

	s.failOn = "feb_2024"
	run(t, a, "archive")
	if a.Message().Kind != Error {
		t.Fatalf("expected an error message, got %+v", a.Message())
	}
	if len(a.Habits()[0].Dates()) != 3 {
		t.Fatalf("a failed archive must leave the collection alone")
	}
	if _, ok := s.buckets["jan_2024"]; !ok {
		t.Fatalf("buckets before the failure stay written")
	}
	if len(s.saved) != 0 {
		t.Fatalf("a failed archive must not save")
	}
}

func TestArchiveAcrossMonths(t *testing.T) {
	dir := t.TempDir()
	s, err := store.Open(dir, filepath.Join(dir, "archive"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	a, err := Load(s, WithClock(clock))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	run(t, a, "add read 3")
	run(t, a, "add old 1")
	read, _ := habit.Find(a.Habits(), "read")
	read.Insert(calendar.NewDate(2024, time.February, 10), 2)
	read.Insert(calendar.NewDate(2024, time.February, 11), 3)
	read.Insert(a.Today(), 1)
	old, _ := habit.Find(a.Habits(), "old")
	old.Insert(calendar.NewDate(2024, time.February, 10), 1)

	run(t, a, "archive")
	if a.Message().Contents != "Archived 1 month(s) of habits" {
		t.Fatalf("unexpected message %+v", a.Message())
	}
	if got := a.Names(); len(got) != 1 || got[0] != "read" {
		t.Fatalf("expected only read live, got %v", got)
	}
	if dates := a.Habits()[0].Dates(); len(dates) != 1 || dates[0] != a.Today() {
		t.Fatalf("live collection keeps only this month, got %v", dates)
	}

	if _, err := os.Stat(filepath.Join(dir, "archive", "feb_2024.json")); err != nil {
		t.Fatalf("expected feb_2024.json: %v", err)
	}
	feb, err := s.ReadBucket(archive.Bucket{Year: 2024, Month: time.February})
	if err != nil {
		t.Fatalf("read bucket: %v", err)
	}
	if got := habit.Names(feb); len(got) != 2 || got[0] != "read" || got[1] != "old" {
		t.Fatalf("unexpected bucket habits %v", got)
	}
	if v, _ := feb[0].Query(calendar.NewDate(2024, time.February, 11)); v != 3 || len(feb[0].Dates()) != 2 {
		t.Fatalf("bucket must hold exactly the february entries, got %v", feb[0].Dates())
	}

	reloaded, err := Load(s, WithClock(clock))
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.Names(); len(got) != 1 || got[0] != "read" {
		t.Fatalf("archive must persist the live collection, got %v", got)
	}

	run(t, reloaded, "archive")
	if reloaded.Message().Contents != "No old months to archive" {
		t.Fatalf("unexpected message %+v", reloaded.Message())
	}
}
