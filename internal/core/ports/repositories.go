package ports

import (
	"context"

	"jobsight/internal/core/domain"
)

// DatasetSource loads the full base table into memory. It runs exactly
// once at startup; a failed load is fatal and no dashboard is served.
type DatasetSource interface {
	Load(ctx context.Context) ([]domain.Listing, error)
}
