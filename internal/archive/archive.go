// Package archive moves habit entries of past months out of the live
// collection into one bucket per calendar month.
package archive

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/habit"
)

// Bucket is one calendar month.
type Bucket struct {
	Year  int
	Month time.Month
}

func BucketOf(d calendar.Date) Bucket {
	return Bucket{Year: d.Year, Month: d.Month}
}

// Name is the lower-cased month abbreviation and the year, e.g. "mar_2024".
func (b Bucket) Name() string {
	return fmt.Sprintf("%s_%04d", strings.ToLower(b.Month.String()[:3]), b.Year)
}

// FileName is the bucket's file name inside the archive directory.
func (b Bucket) FileName() string {
	return b.Name() + ".json"
}

func (b Bucket) Contains(d calendar.Date) bool {
	return d.Year == b.Year && d.Month == b.Month
}

func (b Bucket) Before(o Bucket) bool {
	if b.Year != o.Year {
		return b.Year < o.Year
	}
	return b.Month < o.Month
}

// ParseBucket is the inverse of FileName; the ".json" suffix is optional.
func ParseBucket(name string) (Bucket, error) {
	name = strings.TrimSuffix(name, ".json")
	t, err := time.Parse("Jan_2006", name)
	if err != nil || len(name) != 8 {
		return Bucket{}, fmt.Errorf("archive: not a bucket name: %q", name)
	}
	return Bucket{Year: t.Year(), Month: t.Month()}, nil
}

// Plan is a partition of a collection by month.
type Plan struct {
	// Current holds, in collection order, a partial copy of every habit that
	// has entries in the current month.
	Current []habit.Habit
	// Buckets holds the partial copies for every other month.
	Buckets map[Bucket][]habit.Habit
}

// Order returns the archived buckets oldest first.
func (p Plan) Order() []Bucket {
	out := make([]Bucket, 0, len(p.Buckets))
	for b := range p.Buckets {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Partition splits every habit's entries by month. Name, goal and kind are
// copied into each partial habit. A habit without entries this month does not
// appear in Current.
func Partition(hs []habit.Habit, today calendar.Date) Plan {
	current := BucketOf(today)
	plan := Plan{Buckets: make(map[Bucket][]habit.Habit)}
	for _, h := range hs {
		months := make(map[Bucket]bool)
		for _, d := range h.Dates() {
			months[BucketOf(d)] = true
		}
		if months[current] {
			plan.Current = append(plan.Current, h.Partial(current.Contains))
			delete(months, current)
		}
		for b := range months {
			plan.Buckets[b] = append(plan.Buckets[b], h.Partial(b.Contains))
		}
	}
	return plan
}

// Writer persists the encoded contents of one bucket, replacing any previous
// contents.
type Writer interface {
	WriteBucket(b Bucket, data []byte) error
}

// WriteError names the bucket whose write failed.
type WriteError struct {
	Bucket Bucket
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("archive: write %s: %v", e.Bucket.FileName(), e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Result reports what an archive run produced.
type Result struct {
	// Written lists the buckets that reached the Writer, oldest first.
	Written []Bucket
	// Current is the collection to keep live. It is only meaningful when Run
	// returned a nil error.
	Current []habit.Habit
}

// Run partitions hs and writes every past month through w. All buckets are
// encoded before the first write, and writes stop at the first failure; the
// caller should adopt Result.Current only when the error is nil.
func Run(hs []habit.Habit, today calendar.Date, w Writer) (Result, error) {
	plan := Partition(hs, today)
	order := plan.Order()

	staged := make([][]byte, len(order))
	for i, b := range order {
		data, err := habit.EncodeList(plan.Buckets[b])
		if err != nil {
			return Result{}, fmt.Errorf("archive: encode %s: %w", b.Name(), err)
		}
		staged[i] = data
	}

	var res Result
	for i, b := range order {
		if err := w.WriteBucket(b, staged[i]); err != nil {
			return res, &WriteError{Bucket: b, Err: err}
		}
		res.Written = append(res.Written, b)
	}
	res.Current = plan.Current
	return res, nil
}
