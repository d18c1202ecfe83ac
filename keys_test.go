package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapClassifyDefaults(t *testing.T) {
	keys := newKeyMap(nil)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want command
	}{
		{name: "arrow down", msg: tea.KeyMsg{Type: tea.KeyDown}, want: cmdNext},
		{name: "s", msg: runeKey("s"), want: cmdNext},
		{name: "arrow up", msg: tea.KeyMsg{Type: tea.KeyUp}, want: cmdPrevious},
		{name: "w", msg: runeKey("w"), want: cmdPrevious},
		{name: "arrow right", msg: tea.KeyMsg{Type: tea.KeyRight}, want: cmdConfirm},
		{name: "space", msg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, want: cmdConfirm},
		{name: "arrow left", msg: tea.KeyMsg{Type: tea.KeyLeft}, want: cmdCancel},
		{name: "backspace", msg: tea.KeyMsg{Type: tea.KeyBackspace}, want: cmdCancel},
		{name: "enter", msg: tea.KeyMsg{Type: tea.KeyEnter}, want: cmdSubmit},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}, want: cmdFocusInput},
		{name: "unbound", msg: runeKey("x"), want: cmdNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys.classify(tt.msg))
		})
	}
}

func TestKeyMapClassifyCustom(t *testing.T) {
	keys := newKeyMap(map[string][]string{
		actionDown:  {"j"},
		actionUp:    {"k"},
		actionRight: nil,
	})

	assert.Equal(t, cmdNext, keys.classify(runeKey("j")))
	assert.Equal(t, cmdPrevious, keys.classify(runeKey("k")))
	assert.Equal(t, cmdNone, keys.classify(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, cmdConfirm, keys.classify(tea.KeyMsg{Type: tea.KeyRight}))
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "confirm", cmdConfirm.String())
	assert.Equal(t, "none", command(99).String())
}
