package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/recommend"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type healthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Entries int    `json:"entries"`
}

type recommendRequest struct {
	Query string `json:"query" validate:"required"`
	TopN  *int   `json:"top_n" validate:"omitempty,gte=1"`
}

type recommendResponse struct {
	Query   string        `json:"query"`
	Results []core.Result `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const (
	msgQueryMissing = "query missing"
	msgInvalidBody  = "invalid request body"
	msgInvalidTopN  = "top_n must be at least 1"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Model:   s.model,
		Entries: s.entries,
	})
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	req.Query = strings.TrimSpace(req.Query)

	if err := validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && fieldErrs[0].Field() == "TopN" {
			s.respondError(w, http.StatusBadRequest, msgInvalidTopN)
			return
		}
		s.respondError(w, http.StatusBadRequest, msgQueryMissing)
		return
	}

	topN := s.defaultTopN
	if req.TopN != nil {
		topN = min(*req.TopN, s.maxTopN)
	}

	var monitor recommend.Monitor
	if s.metrics != nil {
		monitor = s.metrics.Monitor()
	}

	results, err := s.engine.RecommendWithMonitor(r.Context(), req.Query, topN, monitor)
	switch {
	case errors.Is(err, core.ErrEmptyQuery):
		s.respondError(w, http.StatusBadRequest, msgQueryMissing)
		return
	case errors.Is(err, core.ErrInvalidTopN):
		s.respondError(w, http.StatusBadRequest, msgInvalidTopN)
		return
	case err != nil:
		s.logger.Error("recommend failed", "query", req.Query, "err", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if results == nil {
		results = []core.Result{}
	}
	s.respondJSON(w, http.StatusOK, recommendResponse{Query: req.Query, Results: results})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		s.logger.Error("failed to marshal response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("failed to write response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{Error: message})
}
