package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pathwise/backend/internal/assessment"
	"github.com/pathwise/backend/internal/graph"
	"github.com/pathwise/backend/internal/mastery"
	"github.com/pathwise/backend/internal/platform/cache"
	"github.com/pathwise/backend/internal/platform/database"
	"github.com/pathwise/backend/internal/recommend"
	"github.com/pathwise/backend/internal/report"
)

type serverConfig struct {
	graph       *graph.DAG
	recommender *recommend.Recommender
	mastery     mastery.Store
	responses   assessment.ResponseStore
	threshold   int
	db          *database.DB
	cache       *cache.Cache
}

type server struct {
	graph       *graph.DAG
	recommender *recommend.Recommender
	mastery     mastery.Store
	responses   assessment.ResponseStore
	threshold   int
	db          *database.DB
	cache       *cache.Cache
}

func newServer(cfg serverConfig) *server {
	return &server{
		graph:       cfg.graph,
		recommender: cfg.recommender,
		mastery:     cfg.mastery,
		responses:   cfg.responses,
		threshold:   cfg.threshold,
		db:          cfg.db,
		cache:       cfg.cache,
	}
}

func (s *server) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("POST /api/v1/assessments/score", s.handleScore)
	mux.HandleFunc("GET /api/v1/learners/{id}/recommendations", s.handleRecommendations)
	mux.HandleFunc("POST /api/v1/learners/{id}/recommendations/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/v1/learners/{id}/submissions", s.handleSubmissions)
	mux.HandleFunc("GET /api/v1/learners/{id}/report", s.handleReport)
	return mux
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.cache != nil {
		if err := s.cache.HealthCheck(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "cache unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type scoreRequest struct {
	LearnerID  string              `json:"learnerId"`
	Assessment json.RawMessage     `json:"assessment"`
	Answers    []assessment.Answer `json:"answers"`
}

func (s *server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.LearnerID == "" {
		writeError(w, http.StatusBadRequest, "learnerId is required")
		return
	}
	def, err := assessment.ParseDefinition(req.Assessment)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.graph.HasTopic(def.TargetTopic) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown topic: %s", def.TargetTopic))
		return
	}

	result, err := assessment.Score(def, req.Answers)
	if err != nil {
		if errors.Is(err, assessment.ErrEmptyAssessment) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "scoring failed")
		return
	}

	sub := assessment.Submission{
		LearnerID:   req.LearnerID,
		TargetTopic: def.TargetTopic,
		Result:      *result,
		SubmittedAt: time.Now().UTC(),
	}
	if _, err := s.responses.Append(r.Context(), sub); err != nil {
		slog.Error("failed to record submission", "learner_id", req.LearnerID, "error", err)
		writeError(w, http.StatusInternalServerError, "recording submission failed")
		return
	}

	status := mastery.StatusInProgress
	if result.PercentageScore >= s.threshold {
		status = mastery.StatusCompleted
	}
	rec := mastery.Record{Score: result.PercentageScore, Status: status}
	if err := s.mastery.SetRecord(r.Context(), req.LearnerID, def.TargetTopic, rec); err != nil {
		slog.Error("failed to update mastery", "learner_id", req.LearnerID, "error", err)
		writeError(w, http.StatusBadGateway, "mastery update failed")
		return
	}

	slog.Info("assessment scored",
		"learner_id", req.LearnerID,
		"target_topic", def.TargetTopic,
		"score", result.PercentageScore)
	writeJSON(w, http.StatusOK, result)
}

type recommendationsResponse struct {
	LearnerID       string                     `json:"learnerId"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

func (s *server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("id")
	recs, err := s.recommender.Get(r.Context(), learnerID)
	if err != nil {
		s.writeRecommendError(w, learnerID, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{LearnerID: learnerID, Recommendations: recs})
}

func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("id")
	recs, err := s.recommender.Refresh(r.Context(), learnerID)
	if err != nil {
		s.writeRecommendError(w, learnerID, err)
		return
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{LearnerID: learnerID, Recommendations: recs})
}

func (s *server) writeRecommendError(w http.ResponseWriter, learnerID string, err error) {
	slog.Error("recommendation lookup failed", "learner_id", learnerID, "error", err)

	var unknownErr *graph.UnknownTopicError
	if errors.As(err, &unknownErr) {
		writeError(w, http.StatusNotFound, unknownErr.Error())
		return
	}
	var computeErr *recommend.ComputeError
	if errors.As(err, &computeErr) {
		writeError(w, http.StatusBadGateway, "recommendation computation failed")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *server) handleSubmissions(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("id")
	subs, err := s.responses.ListByLearner(r.Context(), learnerID)
	if err != nil {
		slog.Error("failed to list submissions", "learner_id", learnerID, "error", err)
		writeError(w, http.StatusInternalServerError, "listing submissions failed")
		return
	}
	if subs == nil {
		subs = []assessment.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}

func (s *server) handleReport(w http.ResponseWriter, r *http.Request) {
	learnerID := r.PathValue("id")
	subs, err := s.responses.ListByLearner(r.Context(), learnerID)
	if err != nil {
		slog.Error("failed to list submissions", "learner_id", learnerID, "error", err)
		writeError(w, http.StatusInternalServerError, "building report failed")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", learnerID+"-report.xlsx"))
	if err := report.Write(w, learnerID, subs); err != nil {
		slog.Error("failed to write report", "learner_id", learnerID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
