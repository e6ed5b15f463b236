package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	FocusLeft  key.Binding
	FocusRight key.Binding
	FocusUp    key.Binding
	FocusDown  key.Binding

	CursorLeft  key.Binding
	CursorRight key.Binding
	CursorUp    key.Binding
	CursorDown  key.Binding

	MonthNext   key.Binding
	MonthPrev   key.Binding
	ResetCursor key.Binding
	PageNext    key.Binding
	PagePrev    key.Binding

	CycleMode key.Binding
	WeekAll   key.Binding
	ResetAll  key.Binding

	Increment key.Binding
	Decrement key.Binding

	Command   key.Binding
	Clear     key.Binding
	Help      key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		FocusLeft:  key.NewBinding(key.WithKeys("h", "left", "shift+tab"), key.WithHelp("h/←", "focus left")),
		FocusRight: key.NewBinding(key.WithKeys("l", "right", "tab"), key.WithHelp("l/→", "focus right")),
		FocusUp:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "focus up")),
		FocusDown:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "focus down")),

		CursorLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "day back")),
		CursorRight: key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "day forward")),
		CursorUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "week back")),
		CursorDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "week forward")),

		MonthNext:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		MonthPrev:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		ResetCursor: key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "today")),
		PageNext:    key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "page habit forward")),
		PagePrev:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "page habit back")),

		CycleMode: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle view")),
		WeekAll:   key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "all weekly")),
		ResetAll:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "reset views")),

		Increment: key.NewBinding(key.WithKeys("enter", "n"), key.WithHelp("n/enter", "increment")),
		Decrement: key.NewBinding(key.WithKeys("backspace", "p"), key.WithHelp("p/bksp", "decrement")),

		Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear message")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit without saving")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Command, k.Increment, k.Decrement, k.CycleMode, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusLeft, k.FocusRight, k.FocusUp, k.FocusDown},
		{k.CursorLeft, k.CursorRight, k.CursorUp, k.CursorDown},
		{k.MonthPrev, k.MonthNext, k.ResetCursor, k.PagePrev, k.PageNext},
		{k.Increment, k.Decrement, k.CycleMode, k.WeekAll, k.ResetAll},
		{k.Command, k.Clear, k.Help, k.ForceQuit},
	}
}
