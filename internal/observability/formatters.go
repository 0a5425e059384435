// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/essay-assistant/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs a human-readable summary of an analysis response.
func (p *Printer) PrintAnalysis(resp *types.AnalysisResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder

	if len(resp.ContentSuggestions) > 0 {
		sb.WriteString("Content Suggestions:\n")
		count := min(len(resp.ContentSuggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", resp.ContentSuggestions[i].Suggestion))
		}
		if len(resp.ContentSuggestions) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resp.ContentSuggestions)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resp.LanguageEdits) > 0 {
		sb.WriteString("Language Edits:\n")
		count := min(len(resp.LanguageEdits), maxItemsToShow)
		for i := 0; i < count; i++ {
			edit := resp.LanguageEdits[i]
			sb.WriteString(fmt.Sprintf("  • %q → %q\n", edit.Before, edit.After))
		}
		if len(resp.LanguageEdits) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resp.LanguageEdits)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(resp.GeneralFeedback) > 0 {
		sb.WriteString("General Feedback:\n")
		count := min(len(resp.GeneralFeedback), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := resp.GeneralFeedback[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", item.Section, item.Feedback))
		}
	}

	p.printBox("Essay Analysis", strings.TrimRight(sb.String(), "\n"))
}

// PrintWordCut outputs a human-readable summary of word cut edits.
func (p *Printer) PrintWordCut(resp *types.WordCutResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Words:    %d → %d (cut %d)\n\n",
		resp.TotalBeforeWordCount, resp.TotalAfterWordCount, resp.TotalWordCountDiff))

	count := min(len(resp.Edits), maxItemsToShow)
	for i := 0; i < count; i++ {
		edit := resp.Edits[i]
		sb.WriteString(fmt.Sprintf("  • %q → %q (-%d)\n", edit.Before, edit.After, edit.WordCountDiff))
	}
	if len(resp.Edits) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more edits\n", len(resp.Edits)-maxItemsToShow))
	}

	p.printBox("Word Cut", strings.TrimRight(sb.String(), "\n"))
}
