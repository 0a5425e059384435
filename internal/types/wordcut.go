package types

// WordCutRequest asks for edits that bring an essay under a word limit.
type WordCutRequest struct {
	EssayText        string `json:"essay_text" validate:"required"`
	EssayPrompt      string `json:"essay_prompt"`
	UserInstructions string `json:"user_instructions"`
	School           string `json:"school"`
	WordLimit        int    `json:"word_limit" validate:"required,gt=0"`
}

// WordCutEdit is a single word-reduction edit with its accounting.
type WordCutEdit struct {
	Before          string `json:"before"`
	After           string `json:"after"`
	BeforeWordCount int    `json:"before_word_count"`
	AfterWordCount  int    `json:"after_word_count"`
	WordCountDiff   int    `json:"word_count_diff"`
	Explanation     string `json:"explanation"`
}

// WordCutResponse totals the proposed edits against the original count.
type WordCutResponse struct {
	TotalBeforeWordCount int           `json:"total_before_word_count"`
	TotalAfterWordCount  int           `json:"total_after_word_count"`
	TotalWordCountDiff   int           `json:"total_word_count_diff"`
	Edits                []WordCutEdit `json:"edits"`
}
