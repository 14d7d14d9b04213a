package dataset

import (
	"context"
)

// DatasetRepository stores whole immutable datasets keyed by ID.
type DatasetRepository interface {
	Save(ctx context.Context, ds Dataset) error
	GetByID(ctx context.Context, id string) (Dataset, error)
	Delete(ctx context.Context, id string) error
}
