// Package command parses the ":" command line into Command values.
package command

import (
	"fmt"
	"strings"
)

// Op identifies a command.
type Op int

const (
	Blank Op = iota
	Add
	AddAuto
	Delete
	TrackUp
	TrackDown
	Help
	Quit
	Write
	WriteAndQuit
	MonthNext
	MonthPrev
	Archive
)

// Command is one parsed command line.
type Command struct {
	Op    Op
	Name  string    // habit name for add/delete/track
	Goal  *GoalKind // nil when add was given no goal
	Topic string    // help topic
}

// UnknownCommandError reports a command word that is not in the vocabulary.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Unknown command `%s`", e.Name)
}

// ArgError reports a command given too few arguments.
type ArgError struct {
	Command string
	Want    int
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("Command `%s` expects %d argument(s)", e.Command, e.Want)
}

// words maps every accepted spelling to its Op.
var words = map[string]Op{
	"add":        Add,
	"a":          Add,
	"add-auto":   AddAuto,
	"aa":         AddAuto,
	"delete":     Delete,
	"d":          Delete,
	"track-up":   TrackUp,
	"tup":        TrackUp,
	"track-down": TrackDown,
	"tdown":      TrackDown,
	"help":       Help,
	"h":          Help,
	"?":          Help,
	"quit":       Quit,
	"q":          Quit,
	"write":      Write,
	"w":          Write,
	"wq":         WriteAndQuit,
	"month-next": MonthNext,
	"mnext":      MonthNext,
	"month-prev": MonthPrev,
	"mprev":      MonthPrev,
	"archive":    Archive,
}

// Names lists the long command names, used for suggestions.
var Names = []string{
	"add", "add-auto", "delete", "track-up", "track-down", "month-prev",
	"month-next", "archive", "help", "write", "quit", "wq",
}

// TakesHabit reports whether the command's first argument is an existing habit.
func TakesHabit(word string) bool {
	switch words[word] {
	case Delete, TrackUp, TrackDown:
		return true
	}
	return false
}

// Parse turns a command line (without the leading ':') into a Command.
func Parse(input string) (Command, error) {
	args := split(input)
	if len(args) == 0 {
		return Command{Op: Blank}, nil
	}
	word, args := args[0], args[1:]
	op, ok := words[word]
	if !ok {
		return Command{}, &UnknownCommandError{Name: word}
	}

	switch op {
	case Add, AddAuto:
		if len(args) < 1 {
			return Command{}, &ArgError{Command: word, Want: 1}
		}
		c := Command{Op: op, Name: args[0]}
		if len(args) > 1 {
			g, err := ParseGoal(args[1])
			if err != nil {
				return Command{}, err
			}
			c.Goal = &g
		}
		return c, nil
	case Delete, TrackUp, TrackDown:
		if len(args) < 1 {
			return Command{}, &ArgError{Command: word, Want: 1}
		}
		return Command{Op: op, Name: args[0]}, nil
	case Help:
		c := Command{Op: Help}
		if len(args) > 0 {
			c.Topic = args[0]
		}
		return c, nil
	default:
		return Command{Op: op}, nil
	}
}

// split breaks a line on whitespace, keeping double-quoted runs together.
func split(input string) []string {
	var (
		args    []string
		cur     strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range input {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case !quoted && (r == ' ' || r == '\t'):
			if pending {
				args = append(args, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, cur.String())
	}
	return args
}
