package jobs

import (
	"context"
	"log"
	"time"
)

// SearchLogPurger deletes search logs older than a cutoff.
type SearchLogPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionProcessor trims aged search logs on each worker tick.
type RetentionProcessor struct {
	purger SearchLogPurger
	maxAge time.Duration
}

func NewRetentionProcessor(purger SearchLogPurger, maxAge time.Duration) *RetentionProcessor {
	return &RetentionProcessor{purger: purger, maxAge: maxAge}
}

func (p *RetentionProcessor) Process(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-p.maxAge)
	removed, err := p.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if removed > 0 {
		log.Printf("retention: purged %d search logs older than %v", removed, p.maxAge)
	}
	return nil
}
