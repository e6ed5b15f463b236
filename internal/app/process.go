package app

import (
	"errors"
	"strings"

	"github.com/ramanasai/tally/internal/archive"
	"github.com/ramanasai/tally/internal/command"
	"github.com/ramanasai/tally/internal/habit"
)

// ProcessCommand applies one parsed command line, or reports the parse error.
// Every outcome is left in the status message. It reports whether the
// session should end.
func (a *App) ProcessCommand(c command.Command, perr error) (quit bool) {
	if perr != nil {
		a.message = ErrorMessage("%s", perr.Error())
		return false
	}

	switch c.Op {
	case command.Add, command.AddAuto:
		a.add(c)
	case command.Delete:
		if err := a.DeleteByName(c.Name); err != nil {
			a.message = ErrorMessage("Could not delete habit `%s`", c.Name)
		}
	case command.TrackUp, command.TrackDown:
		ev := habit.Increment
		if c.Op == command.TrackDown {
			ev = habit.Decrement
		}
		if err := a.Track(c.Name, ev); err != nil {
			a.message = ErrorMessage("No habit named `%s`", c.Name)
		}
	case command.Help:
		a.message = InfoMessage("%s", command.HelpText(c.Topic))
	case command.Write:
		a.save()
	case command.Quit, command.WriteAndQuit:
		return a.save()
	case command.MonthNext:
		a.SiftForward()
	case command.MonthPrev:
		a.SiftBackward()
	case command.Archive:
		a.archive()
	case command.Blank:
	}
	return false
}

func (a *App) add(c command.Command) {
	auto := c.Op == command.AddAuto
	goal := command.GoalKind{Kind: habit.KindCount}
	if c.Goal != nil {
		goal = *c.Goal
	}
	if err := a.AddHabit(goal.New(c.Name, auto)); err != nil {
		a.message = ErrorMessage("Habit `%s` already exist", c.Name)
	}
}

// save writes the snapshot and reports whether it succeeded.
func (a *App) save() bool {
	if err := a.Save(); err != nil {
		a.message = ErrorMessage("Failed to save habits: %v", err)
		return false
	}
	return true
}

func (a *App) archive() {
	res, err := a.ArchiveHabits()
	if err != nil {
		var werr *archive.WriteError
		if errors.As(err, &werr) {
			a.message = ErrorMessage("Failed to write archive file %s%s", werr.Bucket.FileName(), written(res.Written))
		} else {
			a.message = ErrorMessage("Archive failed: %v", err)
		}
		return
	}
	if !a.save() {
		return
	}
	if n := len(res.Written); n > 0 {
		a.message = InfoMessage("Archived %d month(s) of habits", n)
	} else {
		a.message = InfoMessage("No old months to archive")
	}
}

func written(bs []archive.Bucket) string {
	if len(bs) == 0 {
		return ""
	}
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name()
	}
	return " (already written: " + strings.Join(names, ", ") + ")"
}
