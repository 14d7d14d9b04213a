package report

import "errors"

// Report domain errors
var (
	ErrUnknownExportFormat = errors.New("unknown export format: only csv and xlsx are supported")
)
