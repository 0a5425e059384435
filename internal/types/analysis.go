// Package types defines the shared data structures exchanged between the
// retrieval, workflow, and analyzer layers. Field names are kept in sync with
// the browser extension's client models.
package types

// AnalysisRequest is the inbound payload for a full essay analysis.
type AnalysisRequest struct {
	EssayText        string `json:"essay_text" validate:"required"`
	EssayPrompt      string `json:"essay_prompt"`
	UserInstructions string `json:"user_instructions"`
	School           string `json:"school" validate:"required"`
}

// AnalysisResponse merges the three independently generated feedback types.
type AnalysisResponse struct {
	ContentSuggestions []ContentSuggestion   `json:"content_suggestions"`
	LanguageEdits      []LanguageEdit        `json:"language_edits"`
	GeneralFeedback    []GeneralFeedbackItem `json:"general_feedback"`
}

// ContentSuggestion is one concrete improvement anchored to a section of the
// essay. Suggestions are immutable once scored; a refinement pass replaces the
// whole batch rather than editing items in place.
type ContentSuggestion struct {
	Suggestion      string `json:"suggestion"`
	HowToApply      string `json:"how_to_apply"`
	OriginalText    string `json:"original_text"`
	ImprovedVersion string `json:"improved_version"`
}

// LanguageEdit is a sentence-level before/after rewrite.
type LanguageEdit struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// GeneralFeedbackItem is section-level coaching feedback.
type GeneralFeedbackItem struct {
	Section            string `json:"section"`
	Feedback           string `json:"feedback"`
	Suggestion         string `json:"suggestion"`
	ExampleApplication string `json:"example_application"`
}
