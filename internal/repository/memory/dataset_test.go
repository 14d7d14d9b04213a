package memory

import (
	"context"
	"testing"
	"time"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetRepository_SaveAndGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewDatasetRepository()

	ds := dataset.Dataset{
		ID:         "ds-1",
		UploadedAt: time.Now().UTC(),
		StartDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Schema:     dataset.Schema{DayIndices: []int{1, 2}},
		Facts:      []dataset.Fact{{EmployeeID: "E1", DayIndex: 1}},
	}

	require.NoError(t, repo.Save(ctx, ds))

	got, err := repo.GetByID(ctx, "ds-1")
	require.NoError(t, err)
	assert.Equal(t, ds, got)
}

func TestDatasetRepository_GetMissing(t *testing.T) {
	t.Parallel()
	repo := NewDatasetRepository()

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)
}

func TestDatasetRepository_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewDatasetRepository()

	require.NoError(t, repo.Save(ctx, dataset.Dataset{ID: "ds-2"}))
	require.NoError(t, repo.Delete(ctx, "ds-2"))

	_, err := repo.GetByID(ctx, "ds-2")
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "ds-2"), dataset.ErrDatasetNotFound)
}
