package report

import (
	"context"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
)

// ReportService aggregates a stored dataset's fact table under a filter.
// Every operation recomputes from the immutable facts; an empty filtered
// result degrades to zero-valued aggregates, never an error.
type ReportService interface {
	Overview(ctx context.Context, datasetID string, filter dataset.Filter) (OverviewResponse, error)
	Daily(ctx context.Context, datasetID string, filter dataset.Filter) ([]DailyRow, error)
	Monthly(ctx context.Context, datasetID string, filter dataset.Filter) ([]MonthlyRow, error)
	ByEmployee(ctx context.Context, datasetID string, filter dataset.Filter) ([]EmployeeRow, error)
	ByDepartment(ctx context.Context, datasetID string, filter dataset.Filter) ([]DepartmentRow, error)

	ExportDaily(ctx context.Context, datasetID string, filter dataset.Filter, format string) (Export, error)
	ExportMonthly(ctx context.Context, datasetID string, filter dataset.Filter, format string) (Export, error)

	// ComposeSummaryEmail builds a ready-to-send mail message with the
	// monthly summary spreadsheet attached. Transport belongs to an
	// external collaborator; only the message bytes are produced here.
	ComposeSummaryEmail(ctx context.Context, datasetID string, filter dataset.Filter, req EmailSummaryRequest) (Export, error)
}

// Exporter renders summary tables into downloadable byte encodings.
type Exporter interface {
	DailyExport(ctx context.Context, rows []DailyRow, format string) (Export, error)
	MonthlyExport(ctx context.Context, rows []MonthlyRow, format string) (Export, error)
}
