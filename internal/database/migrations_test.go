//go:build !integration && !e2e
// +build !integration,!e2e

package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db, zap.NewNop()))
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`,
		name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := newMigratedDB(t)

	for _, table := range []string{"schema_migrations", "example_prompts", "optimize_logs"} {
		assert.True(t, tableExists(t, db, table), "missing table %s", table)
	}
}

func TestRunMigrations_SeedsCatalog(t *testing.T) {
	db := newMigratedDB(t)

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM example_prompts WHERE enabled = 1`).Scan(&count))
	assert.Equal(t, 8, count)

	var role string
	require.NoError(t, db.QueryRow(
		`SELECT role FROM example_prompts ORDER BY position LIMIT 1`).Scan(&role))
	assert.Equal(t, "Python Teacher", role)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := newMigratedDB(t)

	// A second run applies nothing and keeps the seed intact.
	require.NoError(t, RunMigrations(db, zap.NewNop()))

	var versions, examples int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM schema_migrations`).Scan(&versions))
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM example_prompts`).Scan(&examples))
	assert.Equal(t, 2, versions)
	assert.Equal(t, 8, examples)
}

func TestRunMigrations_PreservesOperatorEdits(t *testing.T) {
	db := newMigratedDB(t)

	_, err := db.Exec(`UPDATE example_prompts SET enabled = 0 WHERE id = 1`)
	require.NoError(t, err)

	// Re-running never resurrects edited seed rows.
	require.NoError(t, RunMigrations(db, zap.NewNop()))

	var enabled int
	require.NoError(t, db.QueryRow(
		`SELECT enabled FROM example_prompts WHERE id = 1`).Scan(&enabled))
	assert.Equal(t, 0, enabled)
}
