package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ramanasai/tally/internal/habit"
)

// GoalKind is the habit kind and target requested by add.
type GoalKind struct {
	Kind      habit.Kind
	Count     uint32
	Float     float64
	Precision uint8
}

// GoalError reports a goal argument that is not a number.
type GoalError struct {
	Input string
}

func (e *GoalError) Error() string {
	return fmt.Sprintf("Invalid goal `%s`, expected a number like 1, 5 or 2.5", e.Input)
}

// ParseGoal maps "1" to a Bit habit, other whole numbers to Count and
// decimals to Float, with precision taken from the digits after the point.
func ParseGoal(s string) (GoalKind, error) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		precision := len(s) - i - 1
		if precision == 0 || precision > habit.MaxPrecision {
			return GoalKind{}, &GoalError{Input: s}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return GoalKind{}, &GoalError{Input: s}
		}
		if _, err := habit.FloatUnits(v, uint8(precision)); err != nil {
			return GoalKind{}, &GoalError{Input: s}
		}
		return GoalKind{Kind: habit.KindFloat, Float: v, Precision: uint8(precision)}, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return GoalKind{}, &GoalError{Input: s}
	}
	if n == 1 {
		return GoalKind{Kind: habit.KindBit}, nil
	}
	return GoalKind{Kind: habit.KindCount, Count: uint32(n)}, nil
}

// New builds an empty habit of this kind.
func (g GoalKind) New(name string, auto bool) habit.Habit {
	switch g.Kind {
	case habit.KindBit:
		if auto {
			return habit.NewCount(name, 1, true)
		}
		return habit.NewBit(name)
	case habit.KindFloat:
		return habit.NewFloat(name, g.Float, g.Precision)
	default:
		return habit.NewCount(name, g.Count, auto)
	}
}
