package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sportsrules/rulebook/internal/config"
	"github.com/sportsrules/rulebook/internal/embedder"
	"github.com/sportsrules/rulebook/internal/llm"
	"github.com/sportsrules/rulebook/internal/ranking"
	"github.com/sportsrules/rulebook/internal/repository/postgres"
	"github.com/sportsrules/rulebook/internal/retrieval"
	"github.com/sportsrules/rulebook/internal/server"
	"github.com/sportsrules/rulebook/internal/service"
	"github.com/sportsrules/rulebook/internal/vectorstore"
)

func main() {
	// Set up structured logging
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("failed to run server", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("starting rulebook service",
		"http_port", cfg.HTTPPort,
		"environment", cfg.Environment,
	)

	// Keyword-search corpus (PostgreSQL full-text)
	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	slog.Info("connected to PostgreSQL")

	ruleRepo := postgres.NewRuleRepo(db)

	// Vector store
	store, err := vectorstore.NewQdrantStore(ctx, cfg.QdrantGRPCURL, cfg.QdrantCollection)
	if err != nil {
		return fmt.Errorf("failed to connect to Qdrant: %w", err)
	}
	defer store.Close()
	slog.Info("connected to Qdrant", "collection", cfg.QdrantCollection)

	// Embedding and completion clients
	embed := embedder.NewOllamaEmbedder(embedder.OllamaConfig{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaEmbeddingModel,
	})
	slog.Info("initialized embedder", "model", cfg.OllamaEmbeddingModel)

	llmClient := llm.NewOllamaClient(
		llm.WithBaseURL(cfg.OllamaURL),
		llm.WithModel(cfg.OllamaLLMModel),
	)
	slog.Info("initialized completion client", "model", cfg.OllamaLLMModel)

	// Core pipeline
	gateway := retrieval.NewGateway(store, retrieval.GatewayConfig{
		TopK:       cfg.RetrievalTopK,
		MinResults: cfg.MinSportResults,
		Logger:     slog.Default(),
	})

	ranker := ranking.NewRanker(ranking.Config{
		SportBoost:      cfg.SportBoost,
		LengthBoost:     cfg.LengthBoost,
		LengthThreshold: cfg.LengthThreshold,
		KeywordBoost:    cfg.KeywordBoost,
		ScenarioBoost:   cfg.ScenarioBoost,
		MaxPassages:     cfg.MaxContextPassages,
	}, ranking.NewSynonymMatcher())

	answerSvc := service.NewAnswerService(embed, gateway, ranker, llmClient, service.ComposerConfig{
		MinContentLength: cfg.MinContentLength,
		Temperature:      cfg.AnswerTemperature,
		MaxTokens:        cfg.AnswerMaxTokens,
		Model:            cfg.OllamaLLMModel,
	}, slog.Default())

	handler := server.NewHandler(answerSvc, ruleRepo, cfg.SearchLimit, slog.Default())

	httpServer := server.NewHTTPServer(server.HTTPServerConfig{
		Port:           cfg.HTTPPort,
		Logger:         slog.Default(),
		AllowedOrigins: []string{"*"}, // Configure in production
	}, handler)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("received shutdown signal", "signal", sig)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown HTTP server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
