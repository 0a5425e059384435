// Package schemas enforces the parse-or-fail boundary for structured LLM
// output. Every structured completion is validated against an embedded JSON
// Schema before it is unmarshalled into a typed value; a payload that fails
// validation never produces a partially-populated object.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema names map to the embedded schema documents.
const (
	WritingStyleAttributes   = "writing_style_attributes.json"
	WritingStyleApplications = "writing_style_applications.json"
	FeedbackFramework        = "feedback_framework.json"
	ContentSuggestions       = "content_suggestions.json"
	SuggestionFeedback       = "suggestion_feedback.json"
	LanguageEdits            = "language_edits.json"
	GeneralFeedback          = "general_feedback.json"
	WordCutEdits             = "word_cut_edits.json"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// DecodeError reports why a structured completion was rejected. The raw
// payload is retained so callers can log what the model actually produced.
type DecodeError struct {
	Schema string
	Raw    string
	Errors []FieldError
	Cause  error
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "structured output rejected by %s", e.Schema)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// Decode validates raw against the named embedded schema and unmarshals it
// into v. It returns a *DecodeError if the payload is empty, is not valid
// JSON, or fails schema validation.
func Decode(raw string, schemaName string, v any) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return &DecodeError{Schema: schemaName, Raw: raw, Cause: fmt.Errorf("empty payload")}
	}

	schema, err := load(schemaName)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(trimmed))
	if err != nil {
		return &DecodeError{Schema: schemaName, Raw: raw, Cause: err}
	}

	if !result.Valid() {
		decodeErr := &DecodeError{Schema: schemaName, Raw: raw}
		for _, desc := range result.Errors() {
			decodeErr.Errors = append(decodeErr.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return decodeErr
	}

	if err := json.Unmarshal([]byte(trimmed), v); err != nil {
		return &DecodeError{Schema: schemaName, Raw: raw, Cause: err}
	}
	return nil
}

// load compiles and caches an embedded schema.
func load(schemaName string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[schemaName]; ok {
		return schema, nil
	}

	data, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %s: %w", schemaName, err)
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	compiled[schemaName] = schema
	return schema, nil
}
