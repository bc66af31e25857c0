package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/user/promptlab-go/internal/models"
	"go.uber.org/zap"
)

// SQLOptimizeLogRepository implements OptimizeLogRepository backed by SQLite.
type SQLOptimizeLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOptimizeLogRepository creates a new SQLOptimizeLogRepository.
func NewOptimizeLogRepository(db *sql.DB, logger *zap.Logger) *SQLOptimizeLogRepository {
	return &SQLOptimizeLogRepository{db: db, logger: logger}
}

// Insert inserts a new optimize log entry.
func (r *SQLOptimizeLogRepository) Insert(ctx context.Context, entry *models.OptimizeLogEntry) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO optimize_logs (
			request_id, prompt_preview, word_count, intent, mode, model,
			improvement_pct, latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RequestID, entry.PromptPreview, entry.WordCount,
		string(entry.Intent), string(entry.Mode), entry.Model,
		entry.ImprovementPct, entry.LatencyMs,
		time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to insert optimize log: %w", err)
	}
	return result.LastInsertId()
}

// List retrieves optimize logs newest-first with pagination.
// Returns the page and the total row count.
func (r *SQLOptimizeLogRepository) List(ctx context.Context, limit, offset int) ([]*models.OptimizeLog, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM optimize_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count optimize logs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, request_id, prompt_preview, word_count, intent, mode, model,
		        improvement_pct, latency_ms, created_at
		 FROM optimize_logs ORDER BY id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list optimize logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.OptimizeLog
	for rows.Next() {
		var l models.OptimizeLog
		var intent, mode, createdAt string
		if err := rows.Scan(&l.ID, &l.RequestID, &l.PromptPreview, &l.WordCount,
			&intent, &mode, &l.Model, &l.ImprovementPct, &l.LatencyMs, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan optimize log: %w", err)
		}
		l.Intent = models.Intent(intent)
		l.Mode = models.RewriteMode(mode)
		if t, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
			l.CreatedAt = t
		}
		logs = append(logs, &l)
	}
	return logs, total, rows.Err()
}

// Stats aggregates the optimize log table.
func (r *SQLOptimizeLogRepository) Stats(ctx context.Context) (*models.OptimizeStats, error) {
	stats := &models.OptimizeStats{IntentCounts: make(map[string]int64)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN mode = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(AVG(latency_ms), 0),
		        COALESCE(AVG(improvement_pct), 0)
		 FROM optimize_logs`, string(models.ModeFallback)).
		Scan(&stats.TotalRequests, &stats.FallbackCount, &stats.AvgLatencyMs, &stats.AvgImprovement)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate optimize logs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT intent, COUNT(*) FROM optimize_logs GROUP BY intent`)
	if err != nil {
		return nil, fmt.Errorf("failed to count intents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var intent string
		var count int64
		if err := rows.Scan(&intent, &count); err != nil {
			return nil, fmt.Errorf("failed to scan intent count: %w", err)
		}
		stats.IntentCounts[intent] = count
	}
	return stats, rows.Err()
}
