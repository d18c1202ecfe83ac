package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBundleSummaryMarkdown(t *testing.T) {
	start := time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)
	record := qrRecord{ID: 42, JobKey: "JK-1", Carro: "CARRO-7", Maco: "M-3", Text: "C1:RED-T1:A1#C1:RED-T1:A1#C2:BLUE-S1:A2"}
	session := newScanSession(record, stationCatalog{Stations: scenarioStations, Cables: scenarioCables}, start)
	session.Checklist.MarkComplete()

	md := bundleSummaryMarkdown(session, start.Add(90*time.Second))

	assert.Contains(t, md, "## Maço M-3")
	assert.Contains(t, md, "- **Carro:** CARRO-7")
	assert.Contains(t, md, "- **Prensas:** 1/2 concluídas")
	assert.Contains(t, md, "- **Tempo:** 1m30s")
	assert.Contains(t, md, "| P1 - Press1 | A1 | 2 | ok |")
	assert.Contains(t, md, "| P2 - Press2 | A2 | 1 | pendente |")
}

func TestBundleSummaryMarkdownEscapesPipes(t *testing.T) {
	start := time.Date(2026, 10, 18, 7, 0, 0, 0, time.UTC)
	catalog := stationCatalog{
		Stations: []stationConfig{{ID: "P1", Name: "Prensa | Norte", Terminals: []string{"A|1"}}},
		Cables:   map[string]string{},
	}
	session := newScanSession(qrRecord{ID: 7, Maco: "M-1", Text: "C1:RED-T1:A|1"}, catalog, start)

	md := bundleSummaryMarkdown(session, start)

	assert.Contains(t, md, `| P1 - Prensa \| Norte | A\|1 | 1 | pendente |`)
}

func TestBundleSummaryMarkdownEmpty(t *testing.T) {
	session := newScanSession(qrRecord{ID: 7, Maco: "M-9", Text: "T1:ZZ"}, stationCatalog{Stations: scenarioStations}, time.Now())

	md := bundleSummaryMarkdown(session, time.Now())

	assert.Contains(t, md, "Nenhuma aplicação encontrada")
	assert.NotContains(t, md, "| Prensa |")
	assert.Empty(t, bundleSummaryMarkdown(nil, time.Now()))
}

func TestRenderMarkdownKeepsContent(t *testing.T) {
	setMarkdownTheme(markdownThemeDark)
	t.Cleanup(func() { setMarkdownTheme(markdownThemeAuto) })

	out := renderMarkdown("## Maço M-3\n\n- **Carro:** CARRO-7\n")

	assert.Contains(t, out, "CARRO")
}

func TestMarkdownThemeFromString(t *testing.T) {
	assert.Equal(t, markdownThemeDark, markdownThemeFromString(" Dark "))
	assert.Equal(t, markdownThemeLight, markdownThemeFromString("light"))
	assert.Equal(t, markdownThemeAuto, markdownThemeFromString("neon"))
}
