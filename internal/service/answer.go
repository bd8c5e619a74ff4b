// Package service wires the question-answering pipeline: sport
// classification, retrieval, relevance ranking, prompt composition, and the
// completion call.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sportsrules/rulebook/internal/embedder"
	"github.com/sportsrules/rulebook/internal/llm"
	"github.com/sportsrules/rulebook/internal/ranking"
	"github.com/sportsrules/rulebook/internal/retrieval"
	"github.com/sportsrules/rulebook/internal/sport"
)

const (
	// DefaultMinContentLength is the minimum context block length for the
	// grounded prompt; anything shorter is treated as no usable content.
	DefaultMinContentLength = 15

	// DefaultTemperature keeps rule answers deterministic.
	DefaultTemperature float32 = 0.3

	// DefaultMaxTokens bounds answer verbosity.
	DefaultMaxTokens = 1500
)

// fallbackAnswer substitutes for an empty completion response.
const fallbackAnswer = "I couldn't find relevant information in the rulebook to answer your question."

// Retriever fetches candidate passages for an embedded question.
type Retriever interface {
	Retrieve(ctx context.Context, vector []float32, s sport.Sport) ([]retrieval.Candidate, error)
}

// AnswerResult is the terminal artifact returned to the caller.
type AnswerResult struct {
	Answer             string
	DetectedSport      sport.Sport
	SearchResultsCount int
}

// ComposerConfig holds the answer composer's policy knobs.
type ComposerConfig struct {
	MinContentLength int
	Temperature      float32
	MaxTokens        int
	Model            string
}

// AnswerService answers rulebook questions grounded in retrieved passages.
//
// Grounding is strict: when no usable context is retrieved the service
// instructs the model to emit a canned deflection rather than inviting an
// answer from general knowledge. A rules authority that guesses is worse
// than one that asks the user to rephrase.
type AnswerService struct {
	embedder  embedder.Embedder
	retriever Retriever
	ranker    *ranking.Ranker
	llmClient llm.LLM
	cfg       ComposerConfig
	logger    *slog.Logger
}

// NewAnswerService creates the answer pipeline over the given collaborators.
func NewAnswerService(emb embedder.Embedder, retriever Retriever, ranker *ranking.Ranker, llmClient llm.LLM, cfg ComposerConfig, logger *slog.Logger) *AnswerService {
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = DefaultMinContentLength
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AnswerService{
		embedder:  emb,
		retriever: retriever,
		ranker:    ranker,
		llmClient: llmClient,
		cfg:       cfg,
		logger:    logger,
	}
}

// AnswerQuestion runs the full pipeline for one question. A non-empty hint
// overrides sport classification. Upstream failures (embedding, retrieval,
// completion) propagate; missing content is a designed branch, not an error.
func (s *AnswerService) AnswerQuestion(ctx context.Context, question string, hint sport.Sport) (*AnswerResult, error) {
	detected := hint
	if detected == sport.Unknown {
		detected = sport.Classify(question)
	}
	s.logger.Debug("classified question", "sport", detected)

	vector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	candidates, err := s.retriever.Retrieve(ctx, vector, detected)
	if err != nil {
		return nil, fmt.Errorf("retrieving passages: %w", err)
	}
	s.logger.Debug("retrieved candidates", "count", len(candidates))

	ranked := s.ranker.Rank(candidates, detected, question)

	var prompt string
	if len(candidates) > 0 && len(strings.TrimSpace(ranked.ContextBlock)) > s.cfg.MinContentLength {
		prompt = buildGroundedPrompt(question, ranked.ContextBlock, detected)
	} else {
		s.logger.Info("no usable rulebook content for question", "sport", detected)
		prompt = buildNotFoundPrompt(question, detected)
	}

	answer, err := s.llmClient.Complete(ctx, prompt, llm.CompleteOptions{
		Model:       s.cfg.Model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		answer = fallbackAnswer
	}

	return &AnswerResult{
		Answer:             answer,
		DetectedSport:      detected,
		SearchResultsCount: len(candidates),
	}, nil
}
