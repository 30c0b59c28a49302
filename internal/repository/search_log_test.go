//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kontorly/worksearch/internal/domain"
	"github.com/kontorly/worksearch/internal/service"
	"github.com/kontorly/worksearch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchLogRepository(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewSearchLogRepository(pool)

	t.Run("create returns id", func(t *testing.T) {
		id, err := repo.CreateSearchLog(ctx, service.SearchLogEntry{
			UserID:          "u-1",
			Query:           "bolig",
			WorkspaceID:     "w-1",
			ContentTypes:    []domain.ContentType{domain.ContentTypeFile},
			FileExtensions:  []string{"pdf"},
			ResultCount:     4,
			FailedProviders: []string{"teams"},
			DurationMs:      87,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("filters stored as jsonb", func(t *testing.T) {
		id, err := repo.CreateSearchLog(ctx, service.SearchLogEntry{
			UserID: "u-2",
			Query:  "faktura",
			SiteID: "site-1",
		})
		require.NoError(t, err)

		var queryLength int
		var siteID string
		err = pool.QueryRow(ctx,
			`SELECT (filters->>'query_length')::int, filters->>'site_id' FROM search_logs WHERE id = $1`,
			id,
		).Scan(&queryLength, &siteID)
		require.NoError(t, err)
		assert.Equal(t, 7, queryLength)
		assert.Equal(t, "site-1", siteID)
	})

	t.Run("purge removes only aged rows", func(t *testing.T) {
		id, err := repo.CreateSearchLog(ctx, service.SearchLogEntry{UserID: "u-3", Query: "old"})
		require.NoError(t, err)
		_, err = pool.Exec(ctx,
			`UPDATE search_logs SET created_at = now() - interval '40 days' WHERE id = $1`, id)
		require.NoError(t, err)

		removed, err := repo.PurgeOlderThan(ctx, time.Now().UTC().Add(-30*24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		var remaining int
		require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM search_logs`).Scan(&remaining))
		assert.Equal(t, 2, remaining)
	})
}
