// Command ruleindex loads the exported rule corpus into the vector store
// and the keyword-search table. It consumes the rulesData.json export
// produced by the rulebook parsing pipeline; parsing itself happens
// upstream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/sportsrules/rulebook/internal/config"
	"github.com/sportsrules/rulebook/internal/embedder"
	"github.com/sportsrules/rulebook/internal/repository"
	"github.com/sportsrules/rulebook/internal/repository/postgres"
	"github.com/sportsrules/rulebook/internal/vectorstore"
)

// ruleRecord mirrors one entry of the rulesData.json export.
type ruleRecord struct {
	ID       string `json:"id"`
	Sport    string `json:"sport"`
	Number   string `json:"number"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Path     string `json:"path"`
	Combined string `json:"combined"`
}

const batchSize = 64

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	file := flag.String("file", "data/rulesData.json", "path to the exported rules JSON")
	skipKeyword := flag.Bool("skip-keyword", false, "skip loading the keyword-search table")
	flag.Parse()

	if err := run(*file, *skipKeyword); err != nil {
		slog.Error("indexing failed", "error", err)
		os.Exit(1)
	}
}

func run(file string, skipKeyword bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	records, err := loadRecords(file)
	if err != nil {
		return err
	}
	slog.Info("loaded rule export", "file", file, "records", len(records))

	store, err := vectorstore.NewQdrantStore(ctx, cfg.QdrantGRPCURL, cfg.QdrantCollection)
	if err != nil {
		return fmt.Errorf("failed to connect to Qdrant: %w", err)
	}
	defer store.Close()

	embed := embedder.NewOllamaEmbedder(embedder.OllamaConfig{
		BaseURL: cfg.OllamaURL,
		Model:   cfg.OllamaEmbeddingModel,
	})

	if err := store.EnsureCollection(ctx, embed.Dimension()); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		texts := make([]string, len(batch))
		for i, rec := range batch {
			texts[i] = embeddingText(rec)
		}

		vectors, err := embed.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed batch starting at %d: %w", start, err)
		}

		passages := make([]vectorstore.Passage, len(batch))
		for i, rec := range batch {
			passages[i] = vectorstore.Passage{
				// Export IDs like "golf-42" are not UUIDs; derive a
				// stable one so re-runs upsert instead of duplicating.
				ID:      uuid.NewSHA1(uuid.NameSpaceOID, []byte(rec.ID)).String(),
				Vector:  vectors[i],
				Content: rec.Content,
				Sport:   rec.Sport,
				Number:  rec.Number,
				Title:   rec.Title,
				Path:    rec.Path,
			}
		}

		if err := store.Upsert(ctx, passages); err != nil {
			return fmt.Errorf("failed to upsert batch starting at %d: %w", start, err)
		}
		slog.Info("upserted vectors", "from", start, "to", end)
	}

	if skipKeyword {
		slog.Info("skipping keyword table load")
		return nil
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	rules := make([]repository.Rule, len(records))
	for i, rec := range records {
		rules[i] = repository.Rule{
			ID:      rec.ID,
			Sport:   rec.Sport,
			Number:  rec.Number,
			Title:   rec.Title,
			Content: rec.Content,
			Path:    rec.Path,
		}
	}

	ruleRepo := postgres.NewRuleRepo(db)
	if err := ruleRepo.Upsert(ctx, rules); err != nil {
		return fmt.Errorf("failed to load keyword table: %w", err)
	}
	slog.Info("loaded keyword table", "rules", len(rules))

	return nil
}

func loadRecords(file string) ([]ruleRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var records []ruleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return records, nil
}

// embeddingText prefers the export's precomposed combined field and falls
// back to concatenating the parts.
func embeddingText(rec ruleRecord) string {
	if rec.Combined != "" {
		return rec.Combined
	}
	return fmt.Sprintf("%s %s %s", rec.Number, rec.Title, rec.Content)
}
