package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusChecklist
)

const (
	chromeHeight   = 4
	minFrameWidth  = 24
	statusDuration = 4 * time.Second
)

type qrLoadedMsg struct {
	ID     string
	Record qrRecord
	Err    error
}

type modelDeps struct {
	lookup    qrLookup
	catalog   stationCatalog
	telemetry *telemetryLogger
	logger    *slog.Logger
	keys      map[string][]string
}

type model struct {
	width  int
	height int

	styles styles
	keys   keyMap
	help   help.Model

	input    textinput.Model
	viewport viewport.Model
	focus    focusArea

	lookup    qrLookup
	catalog   stationCatalog
	session   *scanSession
	telemetry *telemetryLogger
	logger    *slog.Logger

	confirming bool
	summary    string

	statusMessage string
	statusError   bool
	statusExpires time.Time

	hold holdTracker

	now      func() time.Time
	copyText func(string) error
}

func newModel(deps modelDeps) *model {
	input := textinput.New()
	input.Placeholder = "ID..."
	input.Prompt = "› "
	input.CharLimit = 18
	input.Focus()

	logger := deps.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &model{
		styles:    newStyles(),
		keys:      newKeyMap(deps.keys),
		help:      help.New(),
		input:     input,
		viewport:  viewport.New(80, 20),
		focus:     focusInput,
		lookup:    deps.lookup,
		catalog:   deps.catalog,
		telemetry: deps.telemetry,
		logger:    logger,
		now:       time.Now,
		copyText:  clipboard.WriteAll,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case qrLoadedMsg:
		return m, m.handleLoaded(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		if m.confirming {
			return m, m.handleConfirmKey(msg)
		}
		if m.focus == focusInput {
			return m, m.handleInputKey(msg)
		}
		return m, m.handleChecklistKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.input.Width = max(10, width-16)
	m.viewport.Width = width
	m.viewport.Height = max(3, height-chromeHeight)
	setMarkdownWordWrap(max(20, width-12))
	m.refreshChecklist()
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp:
		m.stepInput(stepUp)
		return nil
	case tea.KeyDown:
		m.stepInput(stepDown)
		return nil
	case tea.KeyTab:
		m.hold.Release()
		if m.session != nil && !m.session.Checklist.Empty() {
			m.focusChecklist()
		}
		return nil
	}
	m.hold.Release()

	if key.Matches(msg, m.keys.submit) {
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *model) stepInput(dir stepDirection) {
	current, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
	if err != nil {
		current = 0
	}
	elapsed := m.hold.Press(dir, m.now())
	m.input.SetValue(strconv.Itoa(nextStepValue(current, dir, elapsed)))
	m.input.CursorEnd()
}

func (m *model) submit() tea.Cmd {
	id := strings.TrimSpace(m.input.Value())
	if id == "" {
		return nil
	}
	lookup := m.lookup
	return func() tea.Msg {
		if lookup == nil {
			return qrLoadedMsg{ID: id, Err: errDatabaseNotFound}
		}
		record, err := lookup.Lookup(id)
		return qrLoadedMsg{ID: id, Record: record, Err: err}
	}
}

func (m *model) handleLoaded(msg qrLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("qrcode lookup failed", "id", msg.ID, "err", msg.Err)
		m.telemetry.Emit(telemetryEvent{
			Event: eventScanFailed,
			Extra: map[string]string{"id": msg.ID, "error": msg.Err.Error()},
		})
		m.setStatus(msg.Err.Error(), true)
		return nil
	}

	m.session = newScanSession(msg.Record, m.catalog, m.now())
	m.confirming = false
	list := m.session.Checklist
	m.logger.Info("bundle loaded",
		"id", msg.Record.ID,
		"scan", m.session.ID,
		"applications", len(m.session.Apps),
		"stations", list.Len(),
	)
	m.telemetry.Emit(telemetryEvent{
		Event:    eventScanLoaded,
		ScanID:   m.session.ID,
		QRCodeID: msg.Record.ID,
		Extra: map[string]string{
			"applications": strconv.Itoa(len(m.session.Apps)),
			"stations":     strconv.Itoa(list.Len()),
		},
	})

	if list.Empty() {
		m.setStatus("Nenhuma aplicação encontrada", false)
		m.refreshChecklist()
		return nil
	}
	m.setStatus("", false)
	m.focusChecklist()
	return nil
}

func (m *model) focusChecklist() {
	m.focus = focusChecklist
	m.input.Blur()
	m.refreshChecklist()
}

func (m *model) focusInputField() tea.Cmd {
	m.focus = focusInput
	m.refreshChecklist()
	return m.input.Focus()
}

func (m *model) handleChecklistKey(msg tea.KeyMsg) tea.Cmd {
	if m.session == nil {
		return m.focusInputField()
	}
	list := m.session.Checklist

	switch m.keys.classify(msg) {
	case cmdNext:
		list.MoveNext()
	case cmdPrevious:
		list.MovePrevious()
	case cmdConfirm:
		m.markComplete()
	case cmdCancel:
		m.markIncomplete()
	case cmdSubmit, cmdFocusInput:
		return m.focusInputField()
	default:
		if key.Matches(msg, m.keys.copy) {
			m.copySummary()
		}
	}
	m.refreshChecklist()
	return nil
}

func (m *model) markComplete() {
	list := m.session.Checklist
	group, ok := list.CurrentGroup()
	if !ok {
		return
	}
	done := list.MarkComplete()
	m.telemetry.Emit(telemetryEvent{
		Event:    eventStationCompleted,
		ScanID:   m.session.ID,
		QRCodeID: m.session.Record.ID,
		Station:  group.StationID,
	})
	if done {
		m.openFinalize()
	}
}

func (m *model) markIncomplete() {
	list := m.session.Checklist
	group, ok := list.CurrentGroup()
	if !ok || !list.MarkIncomplete() {
		return
	}
	m.telemetry.Emit(telemetryEvent{
		Event:    eventStationReopened,
		ScanID:   m.session.ID,
		QRCodeID: m.session.Record.ID,
		Station:  group.StationID,
	})
}

func (m *model) openFinalize() {
	m.confirming = true
	m.summary = renderMarkdown(bundleSummaryMarkdown(m.session, m.now()))
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.yes):
		return m.finalize()
	case key.Matches(msg, m.keys.no):
		m.confirming = false
		m.telemetry.Emit(telemetryEvent{
			Event:    eventBundleKeptOpen,
			ScanID:   m.session.ID,
			QRCodeID: m.session.Record.ID,
		})
		m.refreshChecklist()
	case key.Matches(msg, m.keys.copy):
		m.copySummary()
	}
	return nil
}

func (m *model) finalize() tea.Cmd {
	session := m.session
	m.telemetry.Emit(telemetryEvent{
		Event:    eventBundleFinalized,
		ScanID:   session.ID,
		QRCodeID: session.Record.ID,
		Extra: map[string]string{
			"stations": strconv.Itoa(session.Checklist.Len()),
			"elapsed":  session.Elapsed(m.now()).Round(time.Second).String(),
		},
	})
	m.logger.Info("bundle finalized", "id", session.Record.ID, "scan", session.ID)

	session.Checklist.Reset()
	m.session = nil
	m.confirming = false
	m.summary = ""
	m.input.Reset()
	m.setStatus(fmt.Sprintf("Maço %s finalizado", session.Record.Maco), false)
	return m.focusInputField()
}

func (m *model) copySummary() {
	if m.session == nil {
		return
	}
	if err := m.copyText(bundleSummaryMarkdown(m.session, m.now())); err != nil {
		m.logger.Warn("clipboard copy failed", "err", err)
		m.setStatus("Não foi possível copiar o resumo", true)
		return
	}
	m.setStatus("Resumo copiado", false)
}

func (m *model) setStatus(msg string, isError bool) {
	trimmed := strings.TrimSpace(msg)
	if trimmed == "" {
		m.statusMessage = ""
		m.statusExpires = time.Time{}
		return
	}
	m.statusMessage = trimmed
	m.statusError = isError
	m.statusExpires = m.now().Add(statusDuration)
}

func (m *model) currentStatus() (string, bool) {
	if m.statusMessage == "" || m.now().After(m.statusExpires) {
		return "", false
	}
	return m.statusMessage, m.statusError
}

// refreshChecklist re-renders the station list into the viewport and scrolls
// so the selected station is visible.
func (m *model) refreshChecklist() {
	content, start, end := m.renderChecklist()
	m.viewport.SetContent(content)
	if start < 0 {
		m.viewport.GotoTop()
		return
	}
	switch {
	case start < m.viewport.YOffset:
		m.viewport.SetYOffset(start)
	case end > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(end - m.viewport.Height)
	}
}

// renderChecklist returns the rendered station list and the line range of the
// selected station, or -1 when nothing is selected.
func (m *model) renderChecklist() (string, int, int) {
	if m.session == nil {
		return "", -1, -1
	}
	list := m.session.Checklist
	if list.Empty() {
		return m.styles.empty.Render("Nenhuma aplicação encontrada"), -1, -1
	}

	width := max(minFrameWidth, m.width-2)
	var (
		blocks     []string
		line       int
		start, end = -1, -1
	)
	for i, group := range list.Groups() {
		current := list.IsCurrent(i) && m.focus == focusChecklist
		done := list.IsCompleted(i)
		block := m.styles.stationFrame(current, done).Width(width).Render(m.renderStation(group, done))
		height := lipgloss.Height(block)
		if list.IsCurrent(i) {
			start, end = line, line+height
		}
		line += height
		blocks = append(blocks, block)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...), start, end
}

func (m *model) renderStation(group stationGroup, done bool) string {
	marker := "▶"
	if done {
		marker = "✔"
	}
	lines := []string{m.styles.stationTitle.Render(marker + " " + group.Title())}
	if done {
		return strings.Join(lines, "\n")
	}
	for _, term := range group.Terminals {
		lines = append(lines, m.styles.terminal.Render(fmt.Sprintf("  %dx %s", term.Total, term.Terminal)))
		for _, cable := range term.Cables {
			dot := lipgloss.NewStyle().Bold(true).Foreground(cableColor(cable.Description)).Render("●")
			lines = append(lines, "    "+dot+" "+m.styles.cable.Render(fmt.Sprintf("%dx %s", cable.Count, cable.Description)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *model) View() string {
	top := m.styles.topBar.Render(lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.header.Render("QR Code"),
		m.input.View(),
	))

	info := ""
	if m.session != nil {
		list := m.session.Checklist
		info = m.styles.info.Render(fmt.Sprintf("%s | %d/%d prensas", m.session.InfoLine(), list.CompletedCount(), list.Len()))
	}

	body := m.viewport.View()
	if m.confirming {
		dialog := m.styles.dialog.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.dialogTitle.Render("Finalizar Maço"),
			m.summary,
			"Deseja finalizar o maço?",
			m.styles.dialogHint.Render("s/enter: sim • n/esc: não • c: copiar resumo"),
		))
		body = lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, dialog)
	}

	status := ""
	if msg, isErr := m.currentStatus(); msg != "" {
		if isErr {
			status = m.styles.statusError.Render(msg)
		} else {
			status = m.styles.statusBar.Render(msg)
		}
	}

	return m.styles.app.Render(lipgloss.JoinVertical(lipgloss.Left,
		top,
		info,
		body,
		status,
		m.help.View(m.keys),
	))
}
