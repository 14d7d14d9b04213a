package dataset

import (
	"context"
)

type DatasetService interface {
	// Upload decodes the file, validates its schema, runs the full
	// derivation pipeline and stores the resulting dataset.
	Upload(ctx context.Context, req UploadRequest) (UploadResponse, error)

	Get(ctx context.Context, id string) (DatasetResponse, error)
	ListFacts(ctx context.Context, id string, filter Filter) ([]FactResponse, error)
	Delete(ctx context.Context, id string) error
}
