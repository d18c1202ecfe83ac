package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type command int

const (
	cmdNone command = iota
	cmdNext
	cmdPrevious
	cmdConfirm
	cmdCancel
	cmdSubmit
	cmdFocusInput
)

func (c command) String() string {
	switch c {
	case cmdNext:
		return "next"
	case cmdPrevious:
		return "previous"
	case cmdConfirm:
		return "confirm"
	case cmdCancel:
		return "cancel"
	case cmdSubmit:
		return "submit"
	case cmdFocusInput:
		return "focus_input"
	default:
		return "none"
	}
}

// Action names used in the keys section of the config file.
const (
	actionUp         = "up"
	actionDown       = "down"
	actionLeft       = "left"
	actionRight      = "right"
	actionEnter      = "enter"
	actionFocusInput = "focus_input"
)

func defaultKeyConfig() map[string][]string {
	return map[string][]string{
		actionUp:         {"up", "w"},
		actionDown:       {"down", "s"},
		actionLeft:       {"left", "a", "backspace"},
		actionRight:      {"right", "d", " "},
		actionEnter:      {"enter"},
		actionFocusInput: {"esc", "tab"},
	}
}

type keyMap struct {
	previous   key.Binding
	next       key.Binding
	cancel     key.Binding
	confirm    key.Binding
	submit     key.Binding
	focusInput key.Binding
	copy       key.Binding
	yes        key.Binding
	no         key.Binding
	quit       key.Binding
}

func newKeyMap(cfg map[string][]string) keyMap {
	defaults := defaultKeyConfig()
	keysFor := func(action string) []string {
		if keys := cfg[action]; len(keys) > 0 {
			return keys
		}
		return defaults[action]
	}
	return keyMap{
		previous: key.NewBinding(
			key.WithKeys(keysFor(actionUp)...),
			key.WithHelp("↑", "anterior"),
		),
		next: key.NewBinding(
			key.WithKeys(keysFor(actionDown)...),
			key.WithHelp("↓", "próxima"),
		),
		cancel: key.NewBinding(
			key.WithKeys(keysFor(actionLeft)...),
			key.WithHelp("←", "desmarcar"),
		),
		confirm: key.NewBinding(
			key.WithKeys(keysFor(actionRight)...),
			key.WithHelp("→", "marcar completo"),
		),
		submit: key.NewBinding(
			key.WithKeys(keysFor(actionEnter)...),
			key.WithHelp("enter", "ler QR"),
		),
		focusInput: key.NewBinding(
			key.WithKeys(keysFor(actionFocusInput)...),
			key.WithHelp("esc", "voltar ao ID"),
		),
		copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copiar resumo"),
		),
		yes: key.NewBinding(
			key.WithKeys("y", "s", "enter"),
			key.WithHelp("s", "sim"),
		),
		no: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "não"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "sair"),
		),
	}
}

// classify maps a key press to a checklist command.
func (k keyMap) classify(msg tea.KeyMsg) command {
	switch {
	case key.Matches(msg, k.next):
		return cmdNext
	case key.Matches(msg, k.previous):
		return cmdPrevious
	case key.Matches(msg, k.confirm):
		return cmdConfirm
	case key.Matches(msg, k.cancel):
		return cmdCancel
	case key.Matches(msg, k.submit):
		return cmdSubmit
	case key.Matches(msg, k.focusInput):
		return cmdFocusInput
	default:
		return cmdNone
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.previous,
		k.next,
		k.confirm,
		k.cancel,
		k.focusInput,
		k.copy,
		k.quit,
	}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.previous, k.next},
		{k.confirm, k.cancel},
		{k.submit, k.focusInput, k.copy},
		{k.quit},
	}
}
