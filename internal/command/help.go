package command

// HelpText returns the usage line for a help topic; an empty topic gives the
// top-level hint.
func HelpText(topic string) string {
	switch topic {
	case "":
		return "help <command>|commands|keys"
	case "a", "add":
		return "add <habit-name> [goal]     (alias: a)"
	case "aa", "add-auto":
		return "add-auto <habit-name> [goal]     (alias: aa)"
	case "d", "delete":
		return "delete <habit-name>     (alias: d)"
	case "mprev", "month-prev":
		return "month-prev     (alias: mprev)"
	case "mnext", "month-next":
		return "month-next     (alias: mnext)"
	case "tup", "track-up":
		return "track-up <auto-habit-name>     (alias: tup)"
	case "tdown", "track-down":
		return "track-down <auto-habit-name>     (alias: tdown)"
	case "archive":
		return "archive old months to separate files"
	case "q", "quit":
		return "save and quit tally     (alias: q)"
	case "w", "write":
		return "write current state to disk     (alias: w)"
	case "wq":
		return "write current state to disk and quit tally"
	case "h", "?", "help":
		return "help [<command>|commands|keys]     (aliases: h, ?)"
	case "cmds", "commands":
		return "add, add-auto, delete, month-{prev,next}, track-{up,down}, archive, help, write, quit, wq"
	case "keys":
		return "hjkl focus, HJKL cursor, n/p track, v view, [ ] month, < > habit month, } today, : command"
	default:
		return "unknown command or help topic."
	}
}
