package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/sportsrules/rulebook/internal/repository"
)

// RuleRepo implements repository.RuleRepository over PostgreSQL full-text
// search. The rules table carries a generated tsvector column indexed with
// GIN; see migrations/001_rules.sql.
type RuleRepo struct {
	db *DB
}

// NewRuleRepo creates a new rule repository
func NewRuleRepo(db *DB) *RuleRepo {
	return &RuleRepo{db: db}
}

// Upsert inserts or replaces rules by ID.
func (r *RuleRepo) Upsert(ctx context.Context, rules []repository.Rule) error {
	if len(rules) == 0 {
		return nil
	}

	query := `
		INSERT INTO rules (id, sport, number, title, content, path)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			sport = EXCLUDED.sport,
			number = EXCLUDED.number,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			path = EXCLUDED.path
	`

	for _, rule := range rules {
		_, err := r.db.Pool.Exec(ctx, query,
			rule.ID, strings.ToLower(rule.Sport), rule.Number, rule.Title, rule.Content, rule.Path)
		if err != nil {
			return fmt.Errorf("failed to upsert rule %s: %w", rule.ID, err)
		}
	}

	return nil
}

// Search performs ranked full-text search over number, title, and content,
// optionally restricted to one sport.
func (r *RuleRepo) Search(ctx context.Context, query, sport string, limit int) ([]repository.Rule, error) {
	if limit <= 0 {
		limit = 20
	}

	sql := `
		SELECT id, sport, number, title, content, path
		FROM rules
		WHERE search_vector @@ websearch_to_tsquery('english', $1)
		  AND ($2 = '' OR sport = $2)
		ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', $1)) DESC
		LIMIT $3
	`

	rows, err := r.db.Pool.Query(ctx, sql, query, strings.ToLower(sport), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search rules: %w", err)
	}
	defer rows.Close()

	var rules []repository.Rule
	for rows.Next() {
		var rule repository.Rule
		if err := rows.Scan(&rule.ID, &rule.Sport, &rule.Number, &rule.Title, &rule.Content, &rule.Path); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rule rows: %w", err)
	}

	return rules, nil
}

// Count returns the number of indexed rules.
func (r *RuleRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return count, nil
}

// Ensure RuleRepo implements RuleRepository
var _ repository.RuleRepository = (*RuleRepo)(nil)
