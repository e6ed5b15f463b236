package notify

import (
	"fmt"
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/ramanasai/tally/internal/calendar"
	"github.com/ramanasai/tally/internal/habit"
)

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

func Alert(message string) error {
	return beeep.Alert("tally", message, "")
}

// Pending lists the habits that have not reached their goal on day, with the
// amount left for the ones that count.
func Pending(hs []habit.Habit, day calendar.Date) []string {
	var out []string
	for _, h := range hs {
		if h.ReachedGoal(day) {
			continue
		}
		if h.Kind() == habit.KindBit {
			out = append(out, h.Name())
			continue
		}
		left := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", h.Remaining(day)), "0"), ".")
		out = append(out, fmt.Sprintf("%s (%s left)", h.Name(), left))
	}
	return out
}

func FormatReminder(pending []string) (string, string) {
	title := "Habit reminder"
	if len(pending) == 0 {
		return title, "Every habit is done for today."
	}
	msg := fmt.Sprintf("%d habit(s) still open today: %s", len(pending), strings.Join(pending, ", "))
	return title, msg
}
