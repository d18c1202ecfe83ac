package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
)

type markdownTheme string

const (
	markdownThemeAuto  markdownTheme = "auto"
	markdownThemeDark  markdownTheme = "dark"
	markdownThemeLight markdownTheme = "light"
)

var (
	markdownMu       sync.Mutex
	markdownRenderer *glamour.TermRenderer
	markdownErr      error
	markdownStyle    = markdownThemeAuto
	markdownWordWrap = 60
)

// renderMarkdown returns Glamour-rendered terminal output, or the input
// unchanged when no renderer is available.
func renderMarkdown(content string) string {
	renderer := ensureMarkdownRenderer()
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func ensureMarkdownRenderer() *glamour.TermRenderer {
	markdownMu.Lock()
	defer markdownMu.Unlock()
	if markdownRenderer != nil && markdownErr == nil {
		return markdownRenderer
	}
	options := []glamour.TermRendererOption{
		glamour.WithWordWrap(markdownWordWrap),
	}
	switch markdownStyle {
	case markdownThemeLight:
		options = append(options, glamour.WithStandardStyle("light"))
	case markdownThemeDark:
		options = append(options, glamour.WithStandardStyle("dark"))
	default:
		options = append(options, glamour.WithAutoStyle())
	}
	markdownRenderer, markdownErr = glamour.NewTermRenderer(options...)
	if markdownErr != nil {
		return nil
	}
	return markdownRenderer
}

func setMarkdownWordWrap(width int) {
	markdownMu.Lock()
	if width < 0 {
		width = 0
	}
	if markdownWordWrap != width {
		markdownWordWrap = width
		markdownRenderer = nil
		markdownErr = nil
	}
	markdownMu.Unlock()
}

func setMarkdownTheme(theme markdownTheme) {
	markdownMu.Lock()
	if theme == "" {
		theme = markdownThemeAuto
	}
	if markdownStyle != theme {
		markdownStyle = theme
		markdownRenderer = nil
		markdownErr = nil
	}
	markdownMu.Unlock()
}

func markdownThemeFromString(value string) markdownTheme {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dark":
		return markdownThemeDark
	case "light":
		return markdownThemeLight
	default:
		return markdownThemeAuto
	}
}

// bundleSummaryMarkdown describes a scanned bundle and how far its checklist
// got. It is shown when finalizing and is what gets copied to the clipboard.
func bundleSummaryMarkdown(session *scanSession, now time.Time) string {
	if session == nil {
		return ""
	}
	list := session.Checklist
	var b strings.Builder
	fmt.Fprintf(&b, "## Maço %s\n\n", session.Record.Maco)
	fmt.Fprintf(&b, "- **ID:** %d\n", session.Record.ID)
	fmt.Fprintf(&b, "- **Carro:** %s\n", session.Record.Carro)
	fmt.Fprintf(&b, "- **Job Key:** %s\n", session.Record.JobKey)
	fmt.Fprintf(&b, "- **Prensas:** %d/%d concluídas\n", list.CompletedCount(), list.Len())
	fmt.Fprintf(&b, "- **Tempo:** %s\n\n", session.Elapsed(now).Round(time.Second))

	if list.Empty() {
		b.WriteString("Nenhuma aplicação encontrada.\n")
		return b.String()
	}

	b.WriteString("| Prensa | Terminal | Qtd | Status |\n")
	b.WriteString("|---|---|---|---|\n")
	for i, group := range list.Groups() {
		status := "pendente"
		if list.IsCompleted(i) {
			status = "ok"
		}
		for _, term := range group.Terminals {
			fmt.Fprintf(&b, "| %s | %s | %d | %s |\n", escapeTableCell(group.Title()), escapeTableCell(term.Terminal), term.Total, status)
		}
	}
	return b.String()
}

var tableCellEscaper = strings.NewReplacer(`|`, `\|`, "\n", " ", "\r", " ")

func escapeTableCell(value string) string {
	return tableCellEscaper.Replace(value)
}
