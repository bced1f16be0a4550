package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/loonix/cadence/annotate"
	"github.com/loonix/cadence/asr"
	"github.com/loonix/cadence/lexicon"
	"github.com/loonix/cadence/utils"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.With(zap.Error(err)).Error("writing response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// handleAnnotate accepts a raw recognition-engine document and returns
// the annotated transcript. Query parameters: language (required),
// duration (seconds, for text-only engine output), persist.
func (s *Server) handleAnnotate(w http.ResponseWriter, r *http.Request) {
	defer utils.PanicRecovery(s.log)

	ctx, log := utils.LogContextWith(r.Context(), s.log, zap.String("remote", r.RemoteAddr))

	language := lexicon.Language(r.URL.Query().Get("language"))
	if language == "" {
		s.writeError(w, http.StatusBadRequest, "missing language parameter")
		return
	}

	duration := 0.0
	if raw := r.URL.Query().Get("duration"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid duration parameter")
			return
		}
		duration = parsed
	}

	body, err := utils.ReadAllLimit(r.Body, s.maxBodyBytes)
	if errors.Is(err, utils.ErrIOLimitReached) {
		s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	} else if err != nil {
		s.writeError(w, http.StatusBadRequest, "reading request body")
		return
	}

	transcript, err := s.pipeline.Annotate(ctx, annotate.Request{
		Engine:               asr.ParseEngineDocument(body),
		Language:             language,
		TotalDurationSeconds: duration,
	})
	var notLoaded lexicon.NotLoadedError
	if errors.As(err, &notLoaded) {
		s.writeError(w, http.StatusBadRequest, notLoaded.Error())
		return
	} else if err != nil {
		log.With(zap.Error(err)).Error("annotation failed")
		s.writeError(w, http.StatusInternalServerError, "annotation failed")
		return
	}

	if r.URL.Query().Get("persist") == "true" {
		if s.store == nil {
			s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
			return
		}
		id, err := s.store.SaveTranscript(ctx, transcript)
		if err != nil {
			log.With(zap.Error(err)).Error("persisting transcript failed")
			s.writeError(w, http.StatusInternalServerError, "persisting transcript failed")
			return
		}
		w.Header().Set("X-Transcript-ID", strconv.FormatInt(id, 10))
	}

	s.writeJSON(w, http.StatusOK, transcript)
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	defer utils.PanicRecovery(s.log)

	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid transcript id")
		return
	}

	row, err := s.store.GetTranscript(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "transcript not found")
		return
	}

	s.writeJSON(w, http.StatusOK, row.Document)
}

func (s *Server) handleListTranscripts(w http.ResponseWriter, r *http.Request) {
	defer utils.PanicRecovery(s.log)

	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "persistence not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			s.writeError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	rows, err := s.store.ListRecentTranscripts(r.Context(), limit)
	if err != nil {
		s.log.With(zap.Error(err)).Error("listing transcripts failed")
		s.writeError(w, http.StatusInternalServerError, "listing transcripts failed")
		return
	}

	type transcriptSummary struct {
		ID        int64  `json:"id"`
		Language  string `json:"language"`
		Text      string `json:"text"`
		CreatedAt string `json:"createdAt"`
	}
	summaries := make([]transcriptSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, transcriptSummary{
			ID:        row.ID,
			Language:  row.Language,
			Text:      row.Text,
			CreatedAt: row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	s.writeJSON(w, http.StatusOK, summaries)
}
