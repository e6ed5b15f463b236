package archive

import (
	"errors"
	"testing"
	"time"

	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/habit"
)

var today = calendar.NewDate(2024, time.March, 15)

type memWriter struct {
	files  map[string][]byte
	failOn string
}

func (m *memWriter) WriteBucket(b Bucket, data []byte) error {
	if b.Name() == m.failOn {
		return errors.New("disk full")
	}
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[b.FileName()] = data
	return nil
}

func fixture(t *testing.T) []habit.Habit {
	t.Helper()
	read := habit.NewCount("read", 2, false)
	read.Set(calendar.NewDate(2024, time.January, 3), 1)
	read.Set(calendar.NewDate(2024, time.February, 1), 2)
	read.Set(calendar.NewDate(2024, time.February, 29), 3)
	read.Set(calendar.NewDate(2024, time.March, 2), 1)

	meditate := habit.NewBit("meditate")
	meditate.Set(calendar.NewDate(2023, time.December, 31), true)

	water := habit.NewFloat("water", 2.5, 1)
	if err := water.Insert(calendar.NewDate(2024, time.March, 14), 1.5); err != nil {
		t.Fatalf("insert: %v", err)
	}

	empty := habit.NewCount("idle", 1, false)
	return []habit.Habit{read, meditate, water, empty}
}

func TestBucketName(t *testing.T) {
	b := BucketOf(calendar.NewDate(2024, time.March, 9))
	if b.Name() != "mar_2024" || b.FileName() != "mar_2024.json" {
		t.Fatalf("unexpected bucket name %q / %q", b.Name(), b.FileName())
	}
	back, err := ParseBucket("mar_2024.json")
	if err != nil || back != b {
		t.Fatalf("ParseBucket: got %+v, %v", back, err)
	}
	if _, err := ParseBucket("habit_record.json"); err == nil {
		t.Fatalf("expected error for a non-bucket file")
	}
}

func TestPartitionConservesEntries(t *testing.T) {
	hs := fixture(t)
	plan := Partition(hs, today)

	for _, h := range hs {
		seen := make(map[calendar.Date]int)
		collect := func(list []habit.Habit) {
			if p, ok := habit.Find(list, h.Name()); ok {
				for _, d := range p.Dates() {
					seen[d]++
					want, _ := h.Query(d)
					if got, _ := p.Query(d); got != want {
						t.Errorf("%s on %s: value %v, want %v", h.Name(), d, got, want)
					}
				}
			}
		}
		collect(plan.Current)
		for _, list := range plan.Buckets {
			collect(list)
		}
		dates := h.Dates()
		if len(seen) != len(dates) {
			t.Errorf("%s: saw %d dates, want %d", h.Name(), len(seen), len(dates))
		}
		for _, d := range dates {
			if seen[d] != 1 {
				t.Errorf("%s: date %s seen %d times", h.Name(), d, seen[d])
			}
		}
	}
}

func TestPartitionKeepsOnlyCurrentMonth(t *testing.T) {
	plan := Partition(fixture(t), today)

	if got := habit.Names(plan.Current); len(got) != 2 || got[0] != "read" || got[1] != "water" {
		t.Fatalf("expected [read water] live, got %v", got)
	}
	for _, h := range plan.Current {
		for _, d := range h.Dates() {
			if !d.SameMonth(today) {
				t.Fatalf("%s kept %s in the live collection", h.Name(), d)
			}
		}
	}

	order := plan.Order()
	want := []string{"dec_2023", "jan_2024", "feb_2024"}
	if len(order) != len(want) {
		t.Fatalf("expected buckets %v, got %v", want, order)
	}
	for i, b := range order {
		if b.Name() != want[i] {
			t.Fatalf("expected buckets %v, got %v", want, order)
		}
	}
	feb := plan.Buckets[Bucket{Year: 2024, Month: time.February}]
	if len(feb) != 1 || len(feb[0].Dates()) != 2 || feb[0].GoalLabel() != "2" {
		t.Fatalf("unexpected february bucket %v", feb)
	}
}

func TestRunWritesEveryPastMonth(t *testing.T) {
	w := &memWriter{}
	res, err := Run(fixture(t), today, w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Written) != 3 || len(w.files) != 3 {
		t.Fatalf("expected 3 buckets written, got %v", res.Written)
	}
	hs, err := habit.DecodeList(w.files["feb_2024.json"])
	if err != nil {
		t.Fatalf("decode bucket: %v", err)
	}
	if len(hs) != 1 || hs[0].Name() != "read" {
		t.Fatalf("unexpected feb bucket contents %v", habit.Names(hs))
	}
	if v, _ := hs[0].Query(calendar.NewDate(2024, time.February, 29)); v != 3 {
		t.Fatalf("expected 3 on feb 29, got %v", v)
	}
	if len(res.Current) != 2 {
		t.Fatalf("expected 2 live habits, got %d", len(res.Current))
	}
}

func TestRunStopsAtFirstFailure(t *testing.T) {
	w := &memWriter{failOn: "jan_2024"}
	res, err := Run(fixture(t), today, w)

	var werr *WriteError
	if !errors.As(err, &werr) || werr.Bucket.Name() != "jan_2024" {
		t.Fatalf("expected WriteError for jan_2024, got %v", err)
	}
	if len(res.Written) != 1 || res.Written[0].Name() != "dec_2023" {
		t.Fatalf("expected only dec_2023 written, got %v", res.Written)
	}
	if _, ok := w.files["feb_2024.json"]; ok {
		t.Fatalf("writes after the failure must not happen")
	}
	if res.Current != nil {
		t.Fatalf("failed run must not offer a live collection")
	}
}

func TestRunNothingToArchive(t *testing.T) {
	c := habit.NewCount("read", 1, false)
	c.Set(today, 1)
	w := &memWriter{}
	res, err := Run([]habit.Habit{c}, today, w)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Written) != 0 || len(res.Current) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}
