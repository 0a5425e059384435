// Package textclean normalizes pasted essay text before analysis.
package textclean

import "strings"

// StripPromptPrefix removes the essay prompt from the start of the essay
// text. Users pasting from a shared doc often copy the prompt along with
// their essay. Matching is whitespace- and case-insensitive; the cut is made
// at the prompt's raw length.
func StripPromptPrefix(essayText, essayPrompt string) string {
	if essayText == "" || essayPrompt == "" {
		return essayText
	}

	normalizedText := normalize(essayText)
	normalizedPrompt := normalize(essayPrompt)

	if strings.HasPrefix(normalizedText, normalizedPrompt) {
		if len(essayPrompt) >= len(essayText) {
			return ""
		}
		return strings.TrimSpace(essayText[len(essayPrompt):])
	}
	return essayText
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
