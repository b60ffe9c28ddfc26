package ports

import (
	"context"

	"jobsight/internal/core/domain"
)

// EventPublisher publishes dashboard events to a message broker so other
// sessions can observe activity in real time.
type EventPublisher interface {
	PublishSelectionApplied(ctx context.Context, sel domain.Selection, total int) error
	PublishDatasetLoaded(ctx context.Context, rows int) error
}

// CacheService provides read-through caching of computed snapshots.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
