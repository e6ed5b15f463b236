package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ramanasai/tally/internal/calendar"
)

var relativeDays = regexp.MustCompile(`^(\d+)\s*(d|day|days|w|week|weeks)(\s+ago)?$`)

var (
	dayFormats = []string{
		"2006-01-02",
		"2006/01/02",
		"Jan 2, 2006",
		"2 Jan 2006",
		"January 2, 2006",
		"2 January 2006",
	}
	monthDayFormats = []string{
		"Jan 2",
		"2 Jan",
		"01-02",
	}
)

// ParseDay reads a day relative to today: "today", "yesterday", "3 days ago",
// "2w", "last week", a weekday name for the most recent such day, or an
// explicit date. Month-day forms without a year take today's year.
func ParseDay(input string, today calendar.Date) (calendar.Date, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return calendar.Date{}, fmt.Errorf("empty date input")
	}

	switch input {
	case "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	case "last week":
		return today.AddDays(-7), nil
	case "last month":
		return today.AddMonths(-1), nil
	}

	if m := relativeDays.FindStringSubmatch(input); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return calendar.Date{}, fmt.Errorf("unable to parse date: %s", input)
		}
		if strings.HasPrefix(m[2], "w") {
			n *= 7
		}
		return today.AddDays(-n), nil
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if input == name || input == name[:3] || input == "last "+name {
			back := (int(today.Weekday()) - int(wd) + 7) % 7
			if back == 0 && strings.HasPrefix(input, "last ") {
				back = 7
			}
			return today.AddDays(-back), nil
		}
	}

	for _, format := range dayFormats {
		if t, err := time.Parse(format, input); err == nil {
			return calendar.DateOf(t), nil
		}
	}
	for _, format := range monthDayFormats {
		if t, err := time.Parse(format, input); err == nil {
			return calendar.NewDate(today.Year, t.Month(), t.Day()), nil
		}
	}

	return calendar.Date{}, fmt.Errorf("unable to parse date: %s", input)
}
