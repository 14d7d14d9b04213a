package response

import (
	"errors"
	"net/http"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/domain/report"
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Schema errors carry per-column details
	var schemaErr *dataset.SchemaError
	if errors.As(err, &schemaErr) {
		BadRequest(w, "Sheet does not match the expected attendance layout", schemaErr.Details())
		return
	}

	switch {
	// Dataset domain errors
	case errors.Is(err, dataset.ErrDatasetNotFound):
		NotFound(w, "Dataset not found")
	case errors.Is(err, dataset.ErrEmptySheet):
		BadRequest(w, "Sheet contains no attendance rows", nil)
	case errors.Is(err, dataset.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported file format", nil)

	// Report domain errors
	case errors.Is(err, report.ErrUnknownExportFormat):
		BadRequest(w, "Unknown export format, expected csv or xlsx", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
