package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// Dataset domain errors
var (
	ErrDatasetNotFound   = errors.New("dataset not found")
	ErrEmptySheet        = errors.New("uploaded sheet contains no data rows")
	ErrUnsupportedFormat = errors.New("unsupported file format: only .csv, .xlsx and .xls are accepted")
)

// SchemaError reports an upload whose header is missing mandatory
// columns or contains in/out columns with no matching counterpart.
// It is fatal: the pipeline halts before any derivation.
type SchemaError struct {
	MissingColumns  []string
	UnpairedColumns []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.MissingColumns) > 0 {
		parts = append(parts, "missing required columns: "+strings.Join(e.MissingColumns, ", "))
	}
	if len(e.UnpairedColumns) > 0 {
		parts = append(parts, "in/out columns without a counterpart: "+strings.Join(e.UnpairedColumns, ", "))
	}
	if len(parts) == 0 {
		return "invalid sheet schema"
	}
	return fmt.Sprintf("invalid sheet schema: %s", strings.Join(parts, "; "))
}

// Details maps the schema problems into a field->message form suitable
// for the error response envelope.
func (e *SchemaError) Details() map[string]string {
	details := make(map[string]string)
	for _, col := range e.MissingColumns {
		details[col] = "required column is missing"
	}
	for _, col := range e.UnpairedColumns {
		details[col] = "in/out column has no matching counterpart"
	}
	return details
}
