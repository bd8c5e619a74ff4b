package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sportsrules/rulebook/internal/repository"
	"github.com/sportsrules/rulebook/internal/service"
	"github.com/sportsrules/rulebook/internal/sport"
)

// Answerer produces a grounded answer for a rulebook question.
type Answerer interface {
	AnswerQuestion(ctx context.Context, question string, hint sport.Sport) (*service.AnswerResult, error)
}

// Handler implements the API endpoints.
type Handler struct {
	answerer    Answerer
	ruleRepo    repository.RuleRepository
	searchLimit int
	logger      *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(answerer Answerer, ruleRepo repository.RuleRepository, searchLimit int, logger *slog.Logger) *Handler {
	if searchLimit <= 0 {
		searchLimit = 20
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		answerer:    answerer,
		ruleRepo:    ruleRepo,
		searchLimit: searchLimit,
		logger:      logger,
	}
}

type searchAIRequest struct {
	Question string `json:"question"`
	Sport    string `json:"sport,omitempty"`
}

type searchAIResponse struct {
	Answer             string `json:"answer"`
	DetectedSport      string `json:"detected_sport,omitempty"`
	SearchResultsCount int    `json:"search_results_count"`
}

// SearchAI handles POST /search-ai: the full question-answering pipeline.
func (h *Handler) SearchAI(w http.ResponseWriter, r *http.Request) {
	var req searchAIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	result, err := h.answerer.AnswerQuestion(r.Context(), req.Question, sport.Parse(req.Sport))
	if err != nil {
		h.logger.Error("answer pipeline failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to answer question")
		return
	}

	writeJSON(w, http.StatusOK, searchAIResponse{
		Answer:             result.Answer,
		DetectedSport:      string(result.DetectedSport),
		SearchResultsCount: result.SearchResultsCount,
	})
}

type searchHit struct {
	Number  string `json:"number"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Sport   string `json:"sport"`
	Path    string `json:"path"`
}

type searchResponse struct {
	Hits []searchHit `json:"hits"`
}

// Search handles GET /search: direct keyword search, no LLM involved.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query param `q` is required")
		return
	}
	sportFilter := strings.TrimSpace(r.URL.Query().Get("sport"))

	rules, err := h.ruleRepo.Search(r.Context(), query, sportFilter, h.searchLimit)
	if err != nil {
		h.logger.Error("keyword search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	hits := make([]searchHit, len(rules))
	for i, rule := range rules {
		hits[i] = searchHit{
			Number:  rule.Number,
			Title:   rule.Title,
			Content: rule.Content,
			Sport:   rule.Sport,
			Path:    rule.Path,
		}
	}

	writeJSON(w, http.StatusOK, searchResponse{Hits: hits})
}

// Readiness handles GET /readyz by probing the rule corpus.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ruleRepo != nil {
		if _, err := h.ruleRepo.Count(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "rule corpus unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
