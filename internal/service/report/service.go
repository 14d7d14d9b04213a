package report

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/diverse-infotech/attendance-insight-go/internal/config"
	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/domain/report"
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/mailer"
)

type ReportServiceImpl struct {
	repo     dataset.DatasetRepository
	exporter report.Exporter
	mailer   *mailer.Mailer
	cfg      config.ReportConfig
}

func NewReportService(repo dataset.DatasetRepository, exporter report.Exporter, m *mailer.Mailer, cfg config.ReportConfig) report.ReportService {
	return &ReportServiceImpl{
		repo:     repo,
		exporter: exporter,
		mailer:   m,
		cfg:      cfg,
	}
}

func (s *ReportServiceImpl) filteredFacts(ctx context.Context, datasetID string, filter dataset.Filter) ([]dataset.Fact, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ds, err := s.repo.GetByID(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	return filter.Apply(ds.Facts), nil
}

// Overview implements report.ReportService.
func (s *ReportServiceImpl) Overview(ctx context.Context, datasetID string, filter dataset.Filter) (report.OverviewResponse, error) {
	facts, err := s.filteredFacts(ctx, datasetID, filter)
	if err != nil {
		return report.OverviewResponse{}, err
	}

	employees := make(map[string]bool)
	var punctual int
	var hoursSum float64
	var hoursCount int

	for _, f := range facts {
		employees[f.EmployeeID] = true
		if f.Punctual {
			punctual++
		}
		if f.Hours != nil {
			hoursSum += *f.Hours
			hoursCount++
		}
	}

	return report.OverviewResponse{
		TotalEmployees:  len(employees),
		TotalRecords:    len(facts),
		PunctualRecords: punctual,
		PunctualityRate: rate(punctual, len(facts)),
		AverageHours:    mean(hoursSum, hoursCount),
	}, nil
}

// Daily implements report.ReportService.
func (s *ReportServiceImpl) Daily(ctx context.Context, datasetID string, filter dataset.Filter) ([]report.DailyRow, error) {
	facts, err := s.filteredFacts(ctx, datasetID, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]report.DailyRow, 0, len(facts))
	for _, f := range facts {
		rows = append(rows, report.DailyRow{
			EmployeeID: f.EmployeeID,
			Date:       f.Date.Format("2006-01-02"),
			ClockIn:    f.ClockIn,
			ClockOut:   f.ClockOut,
			Hours:      f.Hours,
			Punctual:   f.Punctual,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})

	return rows, nil
}

// Monthly implements report.ReportService.
func (s *ReportServiceImpl) Monthly(ctx context.Context, datasetID string, filter dataset.Filter) ([]report.MonthlyRow, error) {
	facts, err := s.filteredFacts(ctx, datasetID, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		employeeID string
		monthYear  string
		total      int
		punctual   int
		hoursSum   float64
		hoursCount int
	}

	buckets := make(map[string]*bucket)
	for _, f := range facts {
		monthYear := f.Date.Format("2006-01")
		key := f.EmployeeID + "\x1f" + monthYear
		b, ok := buckets[key]
		if !ok {
			b = &bucket{employeeID: f.EmployeeID, monthYear: monthYear}
			buckets[key] = b
		}
		b.total++
		if f.Punctual {
			b.punctual++
		}
		if f.Hours != nil {
			b.hoursSum += *f.Hours
			b.hoursCount++
		}
	}

	rows := make([]report.MonthlyRow, 0, len(buckets))
	for _, b := range buckets {
		punctualityRate := rate(b.punctual, b.total)

		status := "No"
		if punctualityRate >= s.cfg.MonthlyTargetRate {
			status = "Yes"
		}

		rows = append(rows, report.MonthlyRow{
			EmployeeID:      b.employeeID,
			MonthYear:       b.monthYear,
			TotalDays:       b.total,
			PunctualDays:    b.punctual,
			LateDays:        b.total - b.punctual,
			PunctualityRate: punctualityRate,
			AverageHours:    mean(b.hoursSum, b.hoursCount),
			PunctualStatus:  status,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EmployeeID != rows[j].EmployeeID {
			return rows[i].EmployeeID < rows[j].EmployeeID
		}
		return rows[i].MonthYear < rows[j].MonthYear
	})

	return rows, nil
}

// ByEmployee implements report.ReportService.
func (s *ReportServiceImpl) ByEmployee(ctx context.Context, datasetID string, filter dataset.Filter) ([]report.EmployeeRow, error) {
	facts, err := s.filteredFacts(ctx, datasetID, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		department string
		total      int
		punctual   int
		hoursSum   float64
		hoursCount int
	}

	buckets := make(map[string]*bucket)
	for _, f := range facts {
		b, ok := buckets[f.EmployeeID]
		if !ok {
			b = &bucket{department: f.Department}
			buckets[f.EmployeeID] = b
		}
		b.total++
		if f.Punctual {
			b.punctual++
		}
		if f.Hours != nil {
			b.hoursSum += *f.Hours
			b.hoursCount++
		}
	}

	rows := make([]report.EmployeeRow, 0, len(buckets))
	for id, b := range buckets {
		rows = append(rows, report.EmployeeRow{
			EmployeeID:      id,
			Department:      b.department,
			TotalDays:       b.total,
			PunctualDays:    b.punctual,
			LateDays:        b.total - b.punctual,
			TotalHours:      round2(b.hoursSum),
			AverageHours:    mean(b.hoursSum, b.hoursCount),
			PunctualityRate: rate(b.punctual, b.total),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })

	return rows, nil
}

// ByDepartment implements report.ReportService.
func (s *ReportServiceImpl) ByDepartment(ctx context.Context, datasetID string, filter dataset.Filter) ([]report.DepartmentRow, error) {
	facts, err := s.filteredFacts(ctx, datasetID, filter)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		employees  map[string]bool
		total      int
		punctual   int
		hoursSum   float64
		hoursCount int
	}

	buckets := make(map[string]*bucket)
	for _, f := range facts {
		b, ok := buckets[f.Department]
		if !ok {
			b = &bucket{employees: make(map[string]bool)}
			buckets[f.Department] = b
		}
		b.employees[f.EmployeeID] = true
		b.total++
		if f.Punctual {
			b.punctual++
		}
		if f.Hours != nil {
			b.hoursSum += *f.Hours
			b.hoursCount++
		}
	}

	rows := make([]report.DepartmentRow, 0, len(buckets))
	for department, b := range buckets {
		rows = append(rows, report.DepartmentRow{
			Department:      department,
			Employees:       len(b.employees),
			TotalDays:       b.total,
			PunctualDays:    b.punctual,
			PunctualityRate: rate(b.punctual, b.total),
			AverageHours:    mean(b.hoursSum, b.hoursCount),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })

	return rows, nil
}

// ExportDaily implements report.ReportService.
func (s *ReportServiceImpl) ExportDaily(ctx context.Context, datasetID string, filter dataset.Filter, format string) (report.Export, error) {
	rows, err := s.Daily(ctx, datasetID, filter)
	if err != nil {
		return report.Export{}, err
	}
	return s.exporter.DailyExport(ctx, rows, format)
}

// ExportMonthly implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthly(ctx context.Context, datasetID string, filter dataset.Filter, format string) (report.Export, error) {
	rows, err := s.Monthly(ctx, datasetID, filter)
	if err != nil {
		return report.Export{}, err
	}
	return s.exporter.MonthlyExport(ctx, rows, format)
}

// ComposeSummaryEmail implements report.ReportService.
func (s *ReportServiceImpl) ComposeSummaryEmail(ctx context.Context, datasetID string, filter dataset.Filter, req report.EmailSummaryRequest) (report.Export, error) {
	if err := req.Validate(); err != nil {
		return report.Export{}, err
	}

	attachment, err := s.ExportMonthly(ctx, datasetID, filter, report.FormatXLSX)
	if err != nil {
		return report.Export{}, err
	}

	subject := req.Subject
	if subject == "" {
		subject = "Employee Attendance Summary"
	}

	body := "Hi,\n\nPlease find attached the monthly employee attendance summary.\n\nRegards,\nAttendance Insight"

	message, err := s.mailer.Compose(req.To, subject, body, mailer.Attachment{
		Filename:    attachment.Filename,
		ContentType: attachment.ContentType,
		Data:        attachment.Data,
	})
	if err != nil {
		return report.Export{}, fmt.Errorf("failed to compose summary email: %w", err)
	}

	return report.Export{
		Filename:    "attendance_summary.eml",
		ContentType: "message/rfc822",
		Data:        message,
	}, nil
}

// rate is the punctual share as a percentage rounded to 2 decimals,
// degrading to 0.0 on an empty set.
func rate(punctual, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return round2(float64(punctual) / float64(total) * 100)
}

// mean averages only over rows whose hours are defined.
func mean(sum float64, count int) float64 {
	if count == 0 {
		return 0.0
	}
	return round2(sum / float64(count))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
