package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup map[string]qrRecord

func (f fakeLookup) Lookup(id string) (qrRecord, error) {
	if record, ok := f[strings.TrimSpace(id)]; ok {
		return record, nil
	}
	return qrRecord{}, fmt.Errorf("ID %s %w", id, errQRCodeNotFound)
}

type testHarness struct {
	m         *model
	clock     time.Time
	telemetry string
	copied    []string
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	setMarkdownTheme(markdownThemeDark)
	t.Cleanup(func() { setMarkdownTheme(markdownThemeAuto) })

	h := &testHarness{
		clock:     time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC),
		telemetry: filepath.Join(t.TempDir(), "telemetry.jsonl"),
	}
	h.m = newModel(modelDeps{
		lookup: fakeLookup{
			"42": {ID: 42, JobKey: "JK-1", Carro: "CARRO-7", Maco: "M-3", Text: "C1:RED-T1:A1#C1:RED-T1:A1#C2:BLUE-S1:A2"},
			"43": {ID: 43, JobKey: "JK-2", Carro: "CARRO-8", Maco: "M-4", Text: "T1:ZZ"},
		},
		catalog:   stationCatalog{Stations: scenarioStations, Cables: scenarioCables},
		telemetry: newTelemetryLogger(h.telemetry, "op"),
	})
	h.m.now = func() time.Time { return h.clock }
	h.m.copyText = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}
	h.send(tea.WindowSizeMsg{Width: 80, Height: 30})
	return h
}

func (h *testHarness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *testHarness) key(t tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: t})
}

func (h *testHarness) scan(t *testing.T, id string) {
	t.Helper()
	h.send(runeKey(id))
	cmd := h.key(tea.KeyEnter)
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, qrLoadedMsg{}, msg)
	h.send(msg)
}

func (h *testHarness) events(t *testing.T) []string {
	t.Helper()
	var names []string
	for _, ev := range readTelemetry(t, h.telemetry) {
		names = append(names, ev.Event)
	}
	return names
}

func TestModelScanCompleteAndFinalize(t *testing.T) {
	h := newTestHarness(t)

	h.scan(t, "42")
	require.NotNil(t, h.m.session)
	list := h.m.session.Checklist
	assert.Equal(t, focusChecklist, h.m.focus)
	assert.Equal(t, 2, list.Len())

	view := h.m.View()
	assert.Contains(t, view, "P1 - Press1")
	assert.Contains(t, view, "2x A1")
	assert.Contains(t, view, "2x Vermelho")
	assert.Contains(t, view, "Carro: CARRO-7 | Job Key: JK-1 | Maço: M-3")

	h.key(tea.KeyRight)
	assert.True(t, list.IsCompleted(0))
	assert.Equal(t, 1, list.Current())
	assert.False(t, h.m.confirming)

	h.key(tea.KeyRight)
	assert.True(t, list.AllCompleted())
	assert.True(t, h.m.confirming)
	assert.NotEmpty(t, h.m.summary)
	assert.Contains(t, h.m.View(), "Finalizar Maço")

	h.send(runeKey("n"))
	assert.False(t, h.m.confirming)
	assert.True(t, list.AllCompleted())

	h.key(tea.KeyLeft)
	assert.False(t, list.IsCompleted(1))
	assert.Equal(t, 1, list.Current())

	h.key(tea.KeyRight)
	require.True(t, h.m.confirming)

	h.send(runeKey("s"))
	assert.Nil(t, h.m.session)
	assert.True(t, list.Empty())
	assert.False(t, h.m.confirming)
	assert.Equal(t, focusInput, h.m.focus)
	assert.Empty(t, h.m.input.Value())
	status, isErr := h.m.currentStatus()
	assert.Equal(t, "Maço M-3 finalizado", status)
	assert.False(t, isErr)

	assert.Equal(t, []string{
		eventScanLoaded,
		eventStationCompleted,
		eventStationCompleted,
		eventBundleKeptOpen,
		eventStationReopened,
		eventStationCompleted,
		eventBundleFinalized,
	}, h.events(t))
}

func TestModelNavigationDoesNotSkipCompleted(t *testing.T) {
	h := newTestHarness(t)
	h.scan(t, "42")
	list := h.m.session.Checklist

	h.key(tea.KeyDown)
	assert.Equal(t, 1, list.Current())
	h.key(tea.KeyDown)
	assert.Equal(t, 1, list.Current())
	h.send(runeKey("w"))
	assert.Equal(t, 0, list.Current())
	h.key(tea.KeyUp)
	assert.Equal(t, 0, list.Current())
}

func TestModelLookupFailure(t *testing.T) {
	h := newTestHarness(t)

	h.scan(t, "7")

	assert.Nil(t, h.m.session)
	assert.Equal(t, focusInput, h.m.focus)
	status, isErr := h.m.currentStatus()
	assert.Equal(t, "ID 7 não encontrado", status)
	assert.True(t, isErr)
	assert.Equal(t, []string{eventScanFailed}, h.events(t))

	h.clock = h.clock.Add(statusDuration + time.Second)
	status, _ = h.m.currentStatus()
	assert.Empty(t, status)
}

func TestModelNothingToDo(t *testing.T) {
	h := newTestHarness(t)

	h.scan(t, "43")

	require.NotNil(t, h.m.session)
	assert.True(t, h.m.session.Checklist.Empty())
	assert.Equal(t, focusInput, h.m.focus)
	status, _ := h.m.currentStatus()
	assert.Equal(t, "Nenhuma aplicação encontrada", status)

	h.key(tea.KeyTab)
	assert.Equal(t, focusInput, h.m.focus)
}

func TestModelFocusSwitching(t *testing.T) {
	h := newTestHarness(t)
	h.scan(t, "42")

	h.key(tea.KeyEsc)
	assert.Equal(t, focusInput, h.m.focus)

	h.send(runeKey("s"))
	assert.Equal(t, "42s", h.m.input.Value())
	assert.Equal(t, 0, h.m.session.Checklist.Current())

	h.key(tea.KeyTab)
	assert.Equal(t, focusChecklist, h.m.focus)

	h.key(tea.KeyEnter)
	assert.Equal(t, focusInput, h.m.focus)
}

func TestModelSubmitIgnoresEmptyInput(t *testing.T) {
	h := newTestHarness(t)

	assert.Nil(t, h.key(tea.KeyEnter))
}

func TestModelStepsIDWhileHeld(t *testing.T) {
	h := newTestHarness(t)
	start := h.clock

	for i := 0; i <= 6; i++ {
		h.clock = start.Add(time.Duration(i) * 500 * time.Millisecond)
		h.key(tea.KeyUp)
	}
	assert.Equal(t, "16", h.m.input.Value())

	h.clock = start.Add(3100 * time.Millisecond)
	h.key(tea.KeyDown)
	assert.Equal(t, "15", h.m.input.Value())
}

func TestModelCopySummary(t *testing.T) {
	h := newTestHarness(t)
	h.scan(t, "42")

	h.send(runeKey("c"))

	require.Len(t, h.copied, 1)
	assert.Contains(t, h.copied[0], "## Maço M-3")
	status, _ := h.m.currentStatus()
	assert.Equal(t, "Resumo copiado", status)

	h.m.copyText = func(string) error { return errors.New("no clipboard") }
	h.send(runeKey("c"))
	status, isErr := h.m.currentStatus()
	assert.Equal(t, "Não foi possível copiar o resumo", status)
	assert.True(t, isErr)
}

func TestModelQuit(t *testing.T) {
	h := newTestHarness(t)

	cmd := h.key(tea.KeyCtrlC)

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
