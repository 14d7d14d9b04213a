package dataset

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
)

// ========================================
// UPLOAD DTOs
// ========================================

type UploadRequest struct {
	StartDate  string                `json:"start_date"` // YYYY-MM-DD, optional
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "attendance sheet file is required",
		})
	} else {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "invalid file type: only csv, xlsx, xls allowed",
			})
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs = append(errs, validator.ValidationError{
				Field:   "file",
				Message: "attendance sheet size must not exceed 10MB",
			})
		}
	}

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ParseWarningResponse struct {
	DayIndex int    `json:"day_index"`
	BadCells int    `json:"bad_cells"`
	Message  string `json:"message"`
}

type UploadResponse struct {
	ID           string                 `json:"id"`
	UploadedAt   string                 `json:"uploaded_at"`
	StartDate    string                 `json:"start_date"`
	DayIndices   []int                  `json:"day_indices"`
	SourceRows   int                    `json:"source_rows"`
	Employees    int                    `json:"employees"`
	Facts        int                    `json:"facts"`
	DuplicateIDs []string               `json:"duplicate_employee_ids,omitempty"`
	Warnings     []ParseWarningResponse `json:"warnings,omitempty"`
}

type DatasetResponse struct {
	ID           string                 `json:"id"`
	UploadedAt   string                 `json:"uploaded_at"`
	StartDate    string                 `json:"start_date"`
	DayIndices   []int                  `json:"day_indices"`
	SourceRows   int                    `json:"source_rows"`
	Employees    int                    `json:"employees"`
	Facts        int                    `json:"facts"`
	DuplicateIDs []string               `json:"duplicate_employee_ids,omitempty"`
	Warnings     []ParseWarningResponse `json:"warnings,omitempty"`
}

type FactResponse struct {
	EmployeeID string   `json:"employee_id"`
	Gender     string   `json:"employee_gender"`
	Resident   string   `json:"employee_resident"`
	Department string   `json:"employee_department"`
	DayIndex   int      `json:"day_index"`
	Date       string   `json:"date"`
	ClockIn    string   `json:"clock_in,omitempty"`
	ClockOut   string   `json:"clock_out,omitempty"`
	Hours      *float64 `json:"hours_worked"`
	Punctual   bool     `json:"is_punctual"`
}

// ========================================
// FILTER
// ========================================

// Filter narrows the fact table. All active predicates are conjunctive.
// A nil employee or resident means "all"; an empty department selection
// deliberately passes every department through rather than excluding
// all of them.
type Filter struct {
	Employee    *string `json:"employee,omitempty"`
	Resident    *string `json:"resident,omitempty"`
	Departments []string `json:"departments,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && f.EndDate != nil {
		start, okStart := validator.IsValidDate(*f.StartDate)
		end, okEnd := validator.IsValidDate(*f.EndDate)
		if okStart && okEnd && start.After(end) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns the facts matching every active predicate. The receiver
// must have passed Validate; malformed date bounds are ignored here.
func (f *Filter) Apply(facts []Fact) []Fact {
	matched := make([]Fact, 0, len(facts))

	for _, fact := range facts {
		if f.Employee != nil && fact.EmployeeID != *f.Employee {
			continue
		}
		if f.Resident != nil && !strings.EqualFold(fact.Resident, *f.Resident) {
			continue
		}
		if len(f.Departments) > 0 && !validator.IsInSlice(fact.Department, f.Departments) {
			continue
		}
		if f.StartDate != nil {
			if start, ok := validator.IsValidDate(*f.StartDate); ok && fact.Date.Before(start) {
				continue
			}
		}
		if f.EndDate != nil {
			if end, ok := validator.IsValidDate(*f.EndDate); ok && fact.Date.After(end) {
				continue
			}
		}
		matched = append(matched, fact)
	}

	return matched
}
