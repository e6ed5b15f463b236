package app

import "fmt"

type MessageKind int

const (
	Info MessageKind = iota
	Error
)

func (k MessageKind) String() string {
	if k == Error {
		return "error"
	}
	return "info"
}

// Message is the transient status text shown under the grid.
type Message struct {
	Kind     MessageKind
	Contents string
}

func StartupMessage() Message {
	return InfoMessage("Type :add <habit-name> <goal> to get started, Ctrl-L to dismiss")
}

func InfoMessage(format string, args ...any) Message {
	return Message{Kind: Info, Contents: fmt.Sprintf(format, args...)}
}

func ErrorMessage(format string, args ...any) Message {
	return Message{Kind: Error, Contents: fmt.Sprintf(format, args...)}
}

func (m *Message) Clear() {
	m.Kind = Info
	m.Contents = ""
}

func (m Message) Empty() bool { return m.Contents == "" }
