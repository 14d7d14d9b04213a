package report

import (
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
)

// Export formats accepted by the export endpoints.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ========================================
// OVERVIEW (KPI block)
// ========================================

type OverviewResponse struct {
	TotalEmployees  int     `json:"total_employees"`
	TotalRecords    int     `json:"total_records"`
	PunctualRecords int     `json:"punctual_records"`
	PunctualityRate float64 `json:"punctuality_rate"`
	AverageHours    float64 `json:"average_hours"`
}

// ========================================
// SUMMARY TABLES
// ========================================

// DailyRow is one line of the daily summary table.
type DailyRow struct {
	EmployeeID string   `json:"employee_id"`
	Date       string   `json:"date"`
	ClockIn    string   `json:"clock_in,omitempty"`
	ClockOut   string   `json:"clock_out,omitempty"`
	Hours      *float64 `json:"hours_worked"`
	Punctual   bool     `json:"is_punctual"`
}

// MonthlyRow is one line of the monthly punctuality summary.
// PunctualStatus is "Yes" when the rate meets the configured target.
type MonthlyRow struct {
	EmployeeID      string  `json:"employee_id"`
	MonthYear       string  `json:"month_year"` // YYYY-MM
	TotalDays       int     `json:"total_days"`
	PunctualDays    int     `json:"punctual_days"`
	LateDays        int     `json:"late_days"`
	PunctualityRate float64 `json:"punctuality_rate"`
	AverageHours    float64 `json:"avg_hours_worked"`
	PunctualStatus  string  `json:"punctual_status"`
}

type EmployeeRow struct {
	EmployeeID      string  `json:"employee_id"`
	Department      string  `json:"employee_department"`
	TotalDays       int     `json:"total_days"`
	PunctualDays    int     `json:"punctual_days"`
	LateDays        int     `json:"late_days"`
	TotalHours      float64 `json:"total_hours"`
	AverageHours    float64 `json:"avg_hours_worked"`
	PunctualityRate float64 `json:"punctuality_rate"`
}

type DepartmentRow struct {
	Department      string  `json:"employee_department"`
	Employees       int     `json:"employees"`
	TotalDays       int     `json:"total_days"`
	PunctualDays    int     `json:"punctual_days"`
	PunctualityRate float64 `json:"punctuality_rate"`
	AverageHours    float64 `json:"avg_hours_worked"`
}

// ========================================
// EXPORT / EMAIL
// ========================================

// Export is a byte-producible rendition of a summary table, ready to be
// served as a download or attached to a mail message.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type EmailSummaryRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
}

func (r *EmailSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "recipient address is required",
		})
	} else if !validator.IsValidEmail(r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "to",
			Message: "recipient address is not a valid email",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
