//go:build !integration && !e2e
// +build !integration,!e2e

package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/testutil"
)

func insertLogEntries(t *testing.T, repo *SQLOptimizeLogRepository, n int, mode models.RewriteMode, intent models.Intent) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := repo.Insert(context.Background(), &models.OptimizeLogEntry{
			RequestID:      fmt.Sprintf("req-%s-%d", mode, i),
			PromptPreview:  "bana python öğret",
			WordCount:      3,
			Intent:         intent,
			Mode:           mode,
			Model:          "Fallback Optimizer",
			ImprovementPct: 60,
			LatencyMs:      int64(i + 1),
		})
		require.NoError(t, err)
	}
}

func TestOptimizeLogRepository_InsertAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOptimizeLogRepository(db, testutil.NewTestLogger())

	insertLogEntries(t, repo, 3, models.ModeFallback, models.IntentTeaching)

	logs, total, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, logs, 3)

	// Newest first.
	assert.Equal(t, "req-fallback-2", logs[0].RequestID)
	assert.Equal(t, models.ModeFallback, logs[0].Mode)
	assert.Equal(t, models.IntentTeaching, logs[0].Intent)
	assert.Equal(t, "bana python öğret", logs[0].PromptPreview)
	assert.False(t, logs[0].CreatedAt.IsZero())
}

func TestOptimizeLogRepository_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOptimizeLogRepository(db, testutil.NewTestLogger())

	insertLogEntries(t, repo, 5, models.ModeFallback, models.IntentGeneral)

	page, total, err := repo.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "req-fallback-2", page[0].RequestID)
	assert.Equal(t, "req-fallback-1", page[1].RequestID)
}

func TestOptimizeLogRepository_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOptimizeLogRepository(db, testutil.NewTestLogger())

	logs, total, err := repo.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
}

func TestOptimizeLogRepository_Stats(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOptimizeLogRepository(db, testutil.NewTestLogger())

	insertLogEntries(t, repo, 3, models.ModeFallback, models.IntentTeaching)
	insertLogEntries(t, repo, 2, models.ModeGenerative, models.IntentCodeGeneration)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5, stats.TotalRequests)
	assert.EqualValues(t, 3, stats.FallbackCount)
	assert.Greater(t, stats.AvgLatencyMs, 0.0)
	assert.InDelta(t, 60.0, stats.AvgImprovement, 1e-9)
	assert.EqualValues(t, 3, stats.IntentCounts[string(models.IntentTeaching)])
	assert.EqualValues(t, 2, stats.IntentCounts[string(models.IntentCodeGeneration)])
}

func TestOptimizeLogRepository_StatsEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewOptimizeLogRepository(db, testutil.NewTestLogger())

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalRequests)
	assert.Zero(t, stats.FallbackCount)
	assert.Empty(t, stats.IntentCounts)
}
