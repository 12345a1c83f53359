package main

import (
	"fmt"
	"strings"

	"blocksearch/internal/searcher"
	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for section and result headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for completion messages
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for error messages
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// statusStyle for per-section progress lines
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// renderRecord formats one search result line: name, then folder and size
// dimmed.
func renderRecord(rec *searcher.DocumentRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(rec.Name))
	meta := fmt.Sprintf("  %s  %s  %s",
		folderLabel(rec.RelativeFolder),
		humanSize(rec.SizeBytes),
		rec.ModifiedAt.Format("2006-01-02 15:04"),
	)
	b.WriteString(dimStyle.Render(meta))
	return b.String()
}

func folderLabel(folder string) string {
	if folder == "" {
		return "(root)"
	}
	return folder
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
