package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"searchai/internal/format"
	"searchai/internal/logging"
	"searchai/internal/services"
	"searchai/internal/store"
	"searchai/internal/workflow"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.records.Ping(r.Context()); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, ErrorResponse{Error: err.Error(), Stage: workflow.StageDatabase})
		return
	}
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Stage: workflow.StageValidate})
		return
	}
	outcome, err := s.runner.Run(r.Context(), workflow.Request{
		Query:  req.Query,
		Format: format.Format(strings.ToLower(strings.TrimSpace(req.Format))),
	})
	if err != nil {
		stage, _ := services.Stage(err)
		status := statusForError(err)
		logger := logging.WithContext(r.Context(), s.logger)
		attrs := []logging.Attr{
			logging.String(logging.FieldStage, stage),
			logging.Error(err),
			logging.String(logging.FieldImpact, "client received an error response"),
		}
		switch {
		case status == http.StatusInternalServerError:
			logging.ErrorWithContext(logger, "api query failed", "api_query_failed", attrs...)
		case status > http.StatusInternalServerError:
			logging.WarnWithContext(logger, "api query failed", "api_query_failed", attrs...)
		}
		s.writeError(w, status, ErrorResponse{Error: err.Error(), Stage: stage})
		return
	}
	s.writeJSON(w, http.StatusCreated, SubmitResponse{Outcome: outcome})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.writeError(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	queries, err := s.records.History(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Stage: workflow.StageDatabase})
		return
	}
	if queries == nil {
		queries = []store.Query{}
	}
	s.writeJSON(w, http.StatusOK, HistoryResponse{Queries: queries})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	query, err := s.records.GetQuery(r.Context(), id)
	if errors.Is(err, store.ErrQueryNotFound) {
		s.writeError(w, http.StatusNotFound, ErrorResponse{Error: "query not found"})
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Stage: workflow.StageDatabase})
		return
	}
	results, err := s.records.Results(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Stage: workflow.StageDatabase})
		return
	}
	documents, err := s.records.Documents(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Stage: workflow.StageDatabase})
		return
	}
	if results == nil {
		results = []store.SearchResult{}
	}
	if documents == nil {
		documents = []store.Document{}
	}
	s.writeJSON(w, http.StatusOK, QueryDetail{Query: *query, Results: results, Documents: documents})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDatabase), errors.Is(err, services.ErrConfiguration):
		return http.StatusInternalServerError
	}
	if stage, ok := services.Stage(err); ok && stage == workflow.StageDatabase {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("api response encode failed",
			logging.String(logging.FieldEventType, "api_encode_failed"),
			logging.Error(err),
		)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, payload ErrorResponse) {
	s.writeJSON(w, status, payload)
}
