package memory

import (
	"context"
	"sync"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
)

// DatasetRepository keeps whole datasets in process memory. Datasets are
// immutable once saved; the mutex only guards the map because the HTTP
// surface is concurrent.
type DatasetRepository struct {
	mu       sync.RWMutex
	datasets map[string]dataset.Dataset
}

func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{
		datasets: make(map[string]dataset.Dataset),
	}
}

// Save implements dataset.DatasetRepository.
func (r *DatasetRepository) Save(_ context.Context, ds dataset.Dataset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[ds.ID] = ds
	return nil
}

// GetByID implements dataset.DatasetRepository.
func (r *DatasetRepository) GetByID(_ context.Context, id string) (dataset.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, ok := r.datasets[id]
	if !ok {
		return dataset.Dataset{}, dataset.ErrDatasetNotFound
	}
	return ds, nil
}

// Delete implements dataset.DatasetRepository.
func (r *DatasetRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.datasets[id]; !ok {
		return dataset.ErrDatasetNotFound
	}
	delete(r.datasets, id)
	return nil
}
