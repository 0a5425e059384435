package textclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPromptPrefix(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		prompt string
		want   string
	}{
		{
			name:   "prompt copied with essay",
			text:   "What matters most to you? My father taught me carpentry.",
			prompt: "What matters most to you?",
			want:   "My father taught me carpentry.",
		},
		{
			name:   "case insensitive match",
			text:   "WHAT MATTERS MOST TO YOU?  My essay begins here.",
			prompt: "What matters most to you?",
			want:   "My essay begins here.",
		},
		{
			name:   "no prompt prefix",
			text:   "My essay begins immediately.",
			prompt: "What matters most to you?",
			want:   "My essay begins immediately.",
		},
		{
			name:   "empty prompt",
			text:   "My essay.",
			prompt: "",
			want:   "My essay.",
		},
		{
			name:   "empty text",
			text:   "",
			prompt: "A prompt",
			want:   "",
		},
		{
			name:   "text is only the prompt",
			text:   "What matters most to you?",
			prompt: "What matters most to you?",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPromptPrefix(tt.text, tt.prompt))
		})
	}
}
