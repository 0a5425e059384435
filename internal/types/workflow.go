package types

// WritingStyleAttribute is one entry in the generated taxonomy of writing
// qualities (tone, structure, technique, word choice, and so on).
type WritingStyleAttribute struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// WritingStyleApplication explains how a style attribute is applied in the
// retrieved exemplars, generalized so a writer can apply it to their own
// essay. Exemplar content itself is never echoed into these.
type WritingStyleApplication struct {
	Attribute  string `json:"attribute"`
	HowToApply string `json:"how_to_apply"`
}

// FeedbackCriterion is one named evaluation criterion derived from expert
// feedback on past essays.
type FeedbackCriterion struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ExampleFeedback string `json:"example_feedback"`
}

// FeedbackFramework is the ordered criteria set used to score suggestions.
// Derived once per request, immutable thereafter.
type FeedbackFramework struct {
	Criteria []FeedbackCriterion `json:"criteria"`
}

// SuggestionFeedback scores a single content suggestion. Feedback items
// correspond to suggestions positionally, by index.
type SuggestionFeedback struct {
	Feedback         string   `json:"feedback"`
	Score            float64  `json:"score"`
	ImprovementAreas []string `json:"improvement_areas"`
}

// EvaluationResult aggregates one evaluation pass over the current batch.
type EvaluationResult struct {
	SuggestionFeedback []SuggestionFeedback `json:"suggestion_feedback"`
	OverallScore       float64              `json:"overall_score"`
}
