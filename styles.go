package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var palette = struct {
	accent, selected, text, textMuted lipgloss.Color
	panel, done, danger               lipgloss.Color
}{
	accent:    lipgloss.Color("#45CF51"),
	selected:  lipgloss.Color("#FFC800"),
	text:      lipgloss.Color("#FFFFFF"),
	textMuted: lipgloss.Color("#C8C8C8"),
	panel:     lipgloss.Color("#32323C"),
	done:      lipgloss.Color("#286428"),
	danger:    lipgloss.Color("#FF5555"),
}

type styles struct {
	app, topBar, header, info       lipgloss.Style
	station, stationCurrent         lipgloss.Style
	stationDone, stationDoneCurrent lipgloss.Style
	stationTitle, terminal, cable   lipgloss.Style
	empty, statusBar, statusError   lipgloss.Style
	dialog, dialogTitle, dialogHint lipgloss.Style
}

func newStyles() styles {
	base := lipgloss.NewStyle()
	frame := base.Copy().
		Border(lipgloss.NormalBorder()).
		BorderForeground(palette.panel).
		Background(palette.panel).
		Padding(0, 1)

	return styles{
		app:                base,
		topBar:             base.Copy().Background(palette.panel).Padding(0, 1),
		header:             base.Copy().Bold(true).Padding(0, 1),
		info:               base.Copy().Background(palette.panel).Padding(0, 1),
		station:            frame,
		stationCurrent:     frame.Copy().Border(lipgloss.ThickBorder()).BorderForeground(palette.selected),
		stationDone:        frame.Copy().Background(palette.done).BorderForeground(palette.done),
		stationDoneCurrent: frame.Copy().Background(palette.done).Border(lipgloss.ThickBorder()).BorderForeground(palette.accent),
		stationTitle:       base.Copy().Bold(true).Foreground(palette.accent),
		terminal:           base.Copy().Bold(true).Foreground(palette.text),
		cable:              base.Copy().Foreground(palette.textMuted),
		empty:              base.Copy().Padding(1, 2),
		statusBar:          base.Copy().Padding(0, 1),
		statusError:        base.Copy().Padding(0, 1).Bold(true).Foreground(palette.danger),
		dialog:             base.Copy().Border(lipgloss.RoundedBorder()).BorderForeground(palette.accent).Padding(1, 2),
		dialogTitle:        base.Copy().Bold(true).Foreground(palette.accent),
		dialogHint:         base.Copy().Faint(true),
	}
}

func (s styles) stationFrame(current, done bool) lipgloss.Style {
	switch {
	case current && done:
		return s.stationDoneCurrent
	case current:
		return s.stationCurrent
	case done:
		return s.stationDone
	default:
		return s.station
	}
}

const defaultCableColor = lipgloss.Color("#5599FF")

// Checked in order; the first word found in the description wins.
var cableColorWords = []struct {
	words []string
	color lipgloss.Color
}{
	{[]string{"vermelho"}, "#FF3333"},
	{[]string{"amarelo"}, "#FFDD33"},
	{[]string{"verde"}, "#33FF66"},
	{[]string{"azul"}, "#3399FF"},
	{[]string{"laranja"}, "#FF9933"},
	{[]string{"roxo", "lilas", "violeta"}, "#CC66FF"},
	{[]string{"marrom"}, "#996633"},
	{[]string{"preto"}, "#333333"},
	{[]string{"branco"}, "#EEEEEE"},
	{[]string{"cinza"}, "#999999"},
	{[]string{"rosa"}, "#FF99CC"},
}

// cableColor picks the swatch color for a cable description.
func cableColor(description string) lipgloss.Color {
	lower := strings.ToLower(description)
	for _, entry := range cableColorWords {
		for _, word := range entry.words {
			if strings.Contains(lower, word) {
				return entry.color
			}
		}
	}
	return defaultCableColor
}
