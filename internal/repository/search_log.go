package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kontorly/worksearch/internal/service"
)

// SearchLogRepository stores search logs for diagnosing degraded results.
type SearchLogRepository struct {
	pool *pgxpool.Pool
}

func NewSearchLogRepository(pool *pgxpool.Pool) *SearchLogRepository {
	return &SearchLogRepository{pool: pool}
}

func (r *SearchLogRepository) CreateSearchLog(ctx context.Context, entry service.SearchLogEntry) (string, error) {
	filters := map[string]any{
		"query_length": len(entry.Query),
	}
	if entry.SiteID != "" {
		filters["site_id"] = entry.SiteID
	}
	if entry.WorkspaceID != "" {
		filters["workspace_id"] = entry.WorkspaceID
	}
	if len(entry.ContentTypes) > 0 {
		filters["content_types"] = entry.ContentTypes
	}
	if len(entry.FileExtensions) > 0 {
		filters["file_extensions"] = entry.FileExtensions
	}

	filtersJSON, _ := json.Marshal(filters)
	failedJSON, _ := json.Marshal(entry.FailedProviders)

	var id string
	err := r.pool.QueryRow(ctx,
		`INSERT INTO search_logs (user_id, query, filters, result_count, failed_providers, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		entry.UserID,
		entry.Query,
		filtersJSON,
		entry.ResultCount,
		failedJSON,
		entry.DurationMs,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create search log: %w", err)
	}
	return id, nil
}

// PurgeOlderThan deletes search logs created before the cutoff and returns
// the number of rows removed.
func (r *SearchLogRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM search_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge search logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
