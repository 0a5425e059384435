package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/essay-assistant/internal/db"
	"github.com/jonathan/essay-assistant/internal/schemas"
	"github.com/jonathan/essay-assistant/internal/textclean"
	"github.com/jonathan/essay-assistant/internal/types"
	"github.com/jonathan/essay-assistant/internal/wordcut"
)

// handleAnalyze runs a full essay analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req types.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	req.EssayText = textclean.StripPromptPrefix(req.EssayText, req.EssayPrompt)
	if req.EssayText == "" {
		s.errorResponse(w, http.StatusUnprocessableEntity, "essay_text is empty after removing the prompt")
		return
	}

	runID := s.recordStart(r.Context(), req.School, req.EssayText)

	resp, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.recordFinish(runID, db.StatusFailed, "", nil)
		log.Printf("analysis failed: %v", err)
		s.errorResponse(w, analysisStatus(err), "essay analysis failed")
		return
	}

	s.recordFinish(runID, db.StatusCompleted, db.ArtifactAnalysis, resp)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleCutWords proposes word-reduction edits.
func (s *Server) handleCutWords(w http.ResponseWriter, r *http.Request) {
	var req types.WordCutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	req.EssayText = textclean.StripPromptPrefix(req.EssayText, req.EssayPrompt)

	resp, err := s.cutter.Cut(r.Context(), req)
	if err != nil {
		log.Printf("word cut failed: %v", err)
		s.errorResponse(w, analysisStatus(err), "word cut failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListRuns returns recent analysis runs from history.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "run history is not enabled")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		log.Printf("listing runs failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	out := make([]map[string]any, 0, len(runs))
	for _, run := range runs {
		out = append(out, map[string]any{
			"id":           run.ID,
			"school":       run.School,
			"essay_words":  run.EssayWords,
			"status":       run.Status,
			"created_at":   run.CreatedAt,
			"completed_at": run.CompletedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": out})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordStart creates a run history row. History failures never block the
// analysis itself.
func (s *Server) recordStart(ctx context.Context, school, essayText string) uuid.UUID {
	if s.db == nil {
		return uuid.Nil
	}
	id, err := s.db.CreateRun(ctx, school, wordcut.CountWords(essayText))
	if err != nil {
		log.Printf("recording run failed: %v", err)
		return uuid.Nil
	}
	return id
}

// recordFinish closes out a run history row, saving the artifact when the
// run produced one. Uses a background context so a canceled request still
// gets its history written.
func (s *Server) recordFinish(runID uuid.UUID, status, artifactKind string, artifact any) {
	if s.db == nil || runID == uuid.Nil {
		return
	}
	ctx := context.Background()
	if artifact != nil {
		if err := s.db.SaveArtifact(ctx, runID, artifactKind, artifact); err != nil {
			log.Printf("saving artifact failed: %v", err)
		}
	}
	if err := s.db.CompleteRun(ctx, runID, status); err != nil {
		log.Printf("completing run failed: %v", err)
	}
}

// analysisStatus maps an analysis error to an HTTP status. A structured
// output the model could not produce correctly is a bad gateway, not a
// client error.
func analysisStatus(err error) int {
	var decodeErr *schemas.DecodeError
	if errors.As(err, &decodeErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// validationMessage renders the first validation failure in a readable form.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "required" {
			return "field " + fe.Field() + " is required"
		}
		return "field " + fe.Field() + " failed validation: " + fe.Tag()
	}
	return "invalid request"
}
