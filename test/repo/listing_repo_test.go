package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dishahq/disha/internal/model"
	appErr "github.com/dishahq/disha/internal/pkg/errors"
	"github.com/dishahq/disha/internal/repo"
	"github.com/dishahq/disha/test/testutil"
)

func mkListing(id string, mtime int64) *model.Listing {
	return &model.Listing{
		ID:           id,
		Title:        "Backend Intern",
		Company:      "Acme",
		Description:  "Work on Go services",
		SkillsText:   `["go", "sql"]`,
		StipendText:  "10000",
		DeadlineText: "2026-10-01",
		LocationText: "['Delhi', '110001']",
		Ctime:        mtime,
		Mtime:        mtime,
	}
}

func TestListingRepoUpsertAndGet(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	listings := repo.NewListingRepo(conn)

	now := time.Now().Unix()
	require.NoError(t, listings.Upsert(ctx, mkListing("t-upsert-1", now)))

	got, err := listings.GetByID(ctx, "t-upsert-1")
	require.NoError(t, err)
	require.Equal(t, "Backend Intern", got.Title)

	updated := mkListing("t-upsert-1", now+10)
	updated.Title = "Senior Backend Intern"
	require.NoError(t, listings.Upsert(ctx, updated))

	got, err = listings.GetByID(ctx, "t-upsert-1")
	require.NoError(t, err)
	require.Equal(t, "Senior Backend Intern", got.Title)
	require.Equal(t, now+10, got.Mtime)
}

func TestListingRepoGetMissing(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	listings := repo.NewListingRepo(conn)

	_, err := listings.GetByID(context.Background(), "t-no-such-id")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestListingRepoListStale(t *testing.T) {
	conn, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	ctx := context.Background()
	listings := repo.NewListingRepo(conn)
	embeddings := repo.NewEmbeddingRepo(conn)

	now := time.Now().Unix()
	require.NoError(t, listings.Upsert(ctx, mkListing("t-stale-1", now)))
	require.NoError(t, listings.Upsert(ctx, mkListing("t-stale-2", now)))

	// t-stale-2 gets a fresh vector; only t-stale-1 should be stale.
	require.NoError(t, embeddings.Save(ctx, &model.ListingEmbedding{
		ListingID:   "t-stale-2",
		Embedding:   make([]float32, 768),
		ContentHash: "hash",
		Mtime:       now + 1,
	}))

	stale, err := listings.ListStale(ctx, 100)
	require.NoError(t, err)
	ids := make(map[string]bool)
	for _, l := range stale {
		ids[l.ID] = true
	}
	require.True(t, ids["t-stale-1"])
	require.False(t, ids["t-stale-2"])
}
