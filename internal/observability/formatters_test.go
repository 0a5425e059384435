package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/essay-assistant/internal/types"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAnalysis(&types.AnalysisResponse{
		ContentSuggestions: []types.ContentSuggestion{{Suggestion: "add stakes"}},
		LanguageEdits:      []types.LanguageEdit{{Before: "utilize", After: "use"}},
		GeneralFeedback:    []types.GeneralFeedbackItem{{Section: "opening", Feedback: "strong hook"}},
	})

	out := buf.String()
	assert.Contains(t, out, "Essay Analysis")
	assert.Contains(t, out, "add stakes")
	assert.Contains(t, out, "opening")
}

func TestPrintAnalysisTruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	resp := &types.AnalysisResponse{}
	for i := 0; i < maxItemsToShow+3; i++ {
		resp.ContentSuggestions = append(resp.ContentSuggestions, types.ContentSuggestion{Suggestion: "s"})
	}
	p.PrintAnalysis(resp)

	assert.Contains(t, buf.String(), "... and 3 more")
}

func TestPrintAnalysisNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintAnalysis(nil)
	assert.Empty(t, buf.String())
}

func TestPrintWordCut(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintWordCut(&types.WordCutResponse{
		TotalBeforeWordCount: 500,
		TotalAfterWordCount:  450,
		TotalWordCountDiff:   50,
		Edits: []types.WordCutEdit{
			{Before: "in order to", After: "to", WordCountDiff: 2},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Word Cut")
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "-2")
}
