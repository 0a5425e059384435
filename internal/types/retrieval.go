package types

// ExemplarPair is a previously reviewed essay and the expert feedback it
// received, as surfaced to the prompt-building layers. Score, school, and
// prompt metadata are stripped before the pair leaves retrieval.
type ExemplarPair struct {
	Essay    string `json:"essay"`
	Feedback string `json:"feedback"`
}

// RetrievalContext is the assembled context for one analysis request:
// reranked exemplars (most relevant first) plus the school's guideline list.
// Built once per (school, essay text) and cached end-to-end.
type RetrievalContext struct {
	RelevantExamples []ExemplarPair `json:"relevant_examples"`
	Guidelines       []string       `json:"guidelines"`
}
