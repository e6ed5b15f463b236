package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/ramanasai/tally/internal/config"
)

// NextAt computes the next occurrence of the reminder time on one of the
// configured days. No days configured means every day.
func NextAt(now time.Time, cfg config.Config) time.Time {
	loc := cfg.Location()
	now = now.In(loc)

	// parse "HH:MM"
	hour, min := 21, 0
	if t, err := time.ParseInLocation("15:04", strings.TrimSpace(cfg.Reminder.Time), loc); err == nil {
		hour = t.Hour()
		min = t.Minute()
	}
	days := map[time.Weekday]bool{}
	for _, d := range cfg.Reminder.Days {
		if wd, ok := parseWeekday(d); ok {
			days[wd] = true
		}
	}
	isReminderDay := func(t time.Time) bool {
		return len(days) == 0 || days[t.Weekday()]
	}

	// candidate today at hh:mm
	cand := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, loc)
	if !now.Before(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	for !isReminderDay(cand) {
		cand = cand.AddDate(0, 0, 1)
	}
	return cand
}

func parseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.HasPrefix(strings.ToLower(wd.String()), s[:3]) {
			return wd, true
		}
	}
	return 0, false
}

// RunConfigured runs the reminder callback at the configured schedule until ctx is canceled.
func RunConfigured(ctx context.Context, cfg config.Config, f func()) {
	next := NextAt(time.Now(), cfg)
	t := time.NewTimer(time.Until(next))
	for {
		select {
		case <-ctx.Done():
			if !t.Stop() {
				select {
				case <-t.C:
				default:
				}
			}
			return
		case <-t.C:
			f()
			next = NextAt(time.Now(), cfg)
			t.Reset(time.Until(next))
		}
	}
}
