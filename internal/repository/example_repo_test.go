//go:build !integration && !e2e
// +build !integration,!e2e

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/promptlab-go/internal/models"
	"github.com/user/promptlab-go/internal/testutil"
)

func TestExampleRepository_ReplaceAllAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewExampleRepository(db, testutil.NewTestLogger())
	ctx := context.Background()

	catalog := testutil.SampleCatalog()
	require.NoError(t, repo.ReplaceAll(ctx, catalog))

	got, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(catalog))
	for i := range catalog {
		assert.Equal(t, catalog[i].Role, got[i].Role)
		assert.Equal(t, catalog[i].Text, got[i].Text)
		assert.Equal(t, catalog[i].Category, got[i].Category)
		assert.NotZero(t, got[i].ID)
	}
}

func TestExampleRepository_ReplaceAllOverwrites(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewExampleRepository(db, testutil.NewTestLogger())
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, testutil.SampleCatalog()))
	replacement := []models.ExamplePrompt{
		{Role: "Historian", Text: "Sen bir tarihçisin. Olayları bağlamıyla anlat.", Category: "teaching"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, replacement))

	got, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Historian", got[0].Role)
}

func TestExampleRepository_ListSkipsDisabled(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewExampleRepository(db, testutil.NewTestLogger())
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, testutil.SampleCatalog()))
	_, err := db.ExecContext(ctx,
		`UPDATE example_prompts SET enabled = 0 WHERE role = 'Code Reviewer'`)
	require.NoError(t, err)

	got, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.NotEqual(t, "Code Reviewer", e.Role)
	}
}

func TestExampleRepository_ListOrderedByPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewExampleRepository(db, testutil.NewTestLogger())
	ctx := context.Background()

	// Insert in reverse position order; the listing must follow position,
	// not insertion order.
	for i, role := range []string{"Third", "Second", "First"} {
		_, err := db.ExecContext(ctx,
			`INSERT INTO example_prompts (role, text, category, enabled, position)
			 VALUES (?, ?, 'general', 1, ?)`, role, role+" text", 2-i)
		require.NoError(t, err)
	}

	got, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "First", got[0].Role)
	assert.Equal(t, "Second", got[1].Role)
	assert.Equal(t, "Third", got[2].Role)
}

func TestExampleRepository_ListEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewExampleRepository(db, testutil.NewTestLogger())

	got, err := repo.ListEnabled(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
