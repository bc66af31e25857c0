package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/user/promptlab-go/internal/models"
	"go.uber.org/zap"
)

// SQLExampleRepository implements ExampleRepository backed by SQLite.
type SQLExampleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExampleRepository creates a new SQLExampleRepository.
func NewExampleRepository(db *sql.DB, logger *zap.Logger) *SQLExampleRepository {
	return &SQLExampleRepository{db: db, logger: logger}
}

// ListEnabled returns enabled examples ordered by catalog position.
func (r *SQLExampleRepository) ListEnabled(ctx context.Context) ([]models.ExamplePrompt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, role, text, category FROM example_prompts
		 WHERE enabled = 1 ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	var examples []models.ExamplePrompt
	for rows.Next() {
		var e models.ExamplePrompt
		if err := rows.Scan(&e.ID, &e.Role, &e.Text, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan example: %w", err)
		}
		examples = append(examples, e)
	}
	return examples, rows.Err()
}

// ReplaceAll atomically replaces the whole catalog. Positions follow
// slice order so the search index rebuild sees the same ordering.
func (r *SQLExampleRepository) ReplaceAll(ctx context.Context, examples []models.ExamplePrompt) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM example_prompts`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	for i, e := range examples {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO example_prompts (role, text, category, enabled, position)
			 VALUES (?, ?, ?, 1, ?)`,
			e.Role, e.Text, e.Category, i); err != nil {
			return fmt.Errorf("failed to insert example %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog replace: %w", err)
	}

	r.logger.Info("example catalog replaced", zap.Int("count", len(examples)))
	return nil
}
