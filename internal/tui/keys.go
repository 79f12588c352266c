package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/lox/timestables/internal/quiz"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Tier    key.Binding
	Start   key.Binding
	Guess   key.Binding
	Pick    key.Binding
	Advance key.Binding
	Abandon key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle table")),
		Tier:    key.NewBinding(key.WithKeys("tab", "t"), key.WithHelp("tab", "questions")),
		Start:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Guess:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "answer")),
		Pick:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "answer")),
		Advance: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "next")),
		Abandon: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to setup")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "play again")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

// phaseHelp shows only the bindings that do something in the current phase.
type phaseHelp struct {
	keys     keyMap
	phase    quiz.Phase
	answered bool
}

func (h phaseHelp) ShortHelp() []key.Binding {
	switch h.phase {
	case quiz.PhaseRunning:
		if h.answered {
			return []key.Binding{h.keys.Advance, h.keys.Restart, h.keys.Abandon, h.keys.Help}
		}
		return []key.Binding{h.keys.Pick, h.keys.Guess, h.keys.Abandon, h.keys.Help}
	case quiz.PhaseFinished:
		return []key.Binding{h.keys.Restart, h.keys.Quit}
	default:
		return []key.Binding{h.keys.Toggle, h.keys.Tier, h.keys.Start, h.keys.Quit, h.keys.Help}
	}
}

func (h phaseHelp) FullHelp() [][]key.Binding {
	nav := []key.Binding{h.keys.Up, h.keys.Down, h.keys.Left, h.keys.Right}
	return [][]key.Binding{nav, h.ShortHelp()}
}
