package service

import (
	"context"

	"github.com/kontorly/worksearch/internal/domain"
)

// SearchLogEntry captures one unified search for later diagnosis,
// including providers that were silently degraded to zero results.
type SearchLogEntry struct {
	UserID          string
	Query           string
	SiteID          string
	WorkspaceID     string
	ContentTypes    []domain.ContentType
	FileExtensions  []string
	ResultCount     int
	FailedProviders []string
	DurationMs      int64
}

// SearchLogRecorder persists search log entries.
type SearchLogRecorder interface {
	CreateSearchLog(ctx context.Context, entry SearchLogEntry) (string, error)
}
