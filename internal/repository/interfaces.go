// Package repository provides data access interfaces and SQLite implementations.
package repository

import (
	"context"

	"github.com/user/promptlab-go/internal/models"
)

// ExampleRepository provides access to the example prompt catalog.
type ExampleRepository interface {
	// ListEnabled returns enabled examples in catalog order.
	ListEnabled(ctx context.Context) ([]models.ExamplePrompt, error)
	// ReplaceAll atomically replaces the whole catalog.
	ReplaceAll(ctx context.Context, examples []models.ExamplePrompt) error
}

// OptimizeLogRepository provides access to persisted pipeline run records.
type OptimizeLogRepository interface {
	Insert(ctx context.Context, entry *models.OptimizeLogEntry) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.OptimizeLog, int64, error)
	Stats(ctx context.Context) (*models.OptimizeStats, error)
}
