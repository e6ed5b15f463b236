package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/ramanasai/tally/internal/config"
)

func reminderConfig(at string, days ...string) config.Config {
	cfg := config.Default()
	cfg.Reminder.Time = at
	cfg.Reminder.Days = days
	cfg.Reminder.Timezone = "UTC"
	return cfg
}

func TestNextAt(t *testing.T) {
	// 2024-03-15 is a Friday.
	fri := func(h, m int) time.Time { return time.Date(2024, time.March, 15, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name string
		now  time.Time
		cfg  config.Config
		want time.Time
	}{
		{"later today", fri(9, 0), reminderConfig("21:00"), fri(21, 0)},
		{"exactly now rolls over", fri(21, 0), reminderConfig("21:00"), fri(21, 0).AddDate(0, 0, 1)},
		{"past today", fri(22, 0), reminderConfig("21:30"), time.Date(2024, time.March, 16, 21, 30, 0, 0, time.UTC)},
		{"next configured day", fri(9, 0), reminderConfig("08:00", "Mon", "wednesday"), time.Date(2024, time.March, 18, 8, 0, 0, 0, time.UTC)},
		{"bad time falls back", fri(9, 0), reminderConfig("late"), fri(21, 0)},
		{"unknown days ignored", fri(9, 0), reminderConfig("10:00", "xx"), fri(10, 0)},
	}
	for _, tt := range tests {
		if got := NextAt(tt.now, tt.cfg); !got.Equal(tt.want) {
			t.Errorf("%s: got %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestRunConfiguredStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunConfigured(ctx, reminderConfig("21:00"), func() {})
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("RunConfigured did not return after cancel")
	}
}
