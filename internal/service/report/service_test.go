package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/diverse-infotech/attendance-insight-go/internal/config"
	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/domain/report"
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/mailer"
	"github.com/diverse-infotech/attendance-insight-go/internal/repository/memory"
	"github.com/diverse-infotech/attendance-insight-go/internal/service/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func fact(employee, department string, day int, hours *float64, punctual bool) dataset.Fact {
	return dataset.Fact{
		EmployeeID: employee,
		Gender:     "Male",
		Resident:   "Urban",
		Department: department,
		DayIndex:   day,
		Date:       date(day),
		ClockIn:    "09:00 AM",
		ClockOut:   "05:00 PM",
		Hours:      hours,
		Punctual:   punctual,
	}
}

func seedDataset(t *testing.T, repo dataset.DatasetRepository, facts []dataset.Fact) string {
	t.Helper()

	ds := dataset.Dataset{
		ID:         "ds-test",
		UploadedAt: date(1),
		StartDate:  date(1),
		Schema:     dataset.Schema{DayIndices: []int{1, 2}},
		Facts:      facts,
		SourceRows: 2,
		Employees:  2,
	}
	require.NoError(t, repo.Save(context.Background(), ds))
	return ds.ID
}

func newTestService(t *testing.T, facts []dataset.Fact) (report.ReportService, string) {
	t.Helper()

	repo := memory.NewDatasetRepository()
	id := seedDataset(t, repo, facts)

	svc := NewReportService(
		repo,
		export.NewExporter(),
		mailer.New("Attendance Insight", "no-reply@example.com"),
		config.ReportConfig{MonthlyTargetRate: 90.0},
	)
	return svc, id
}

func sampleFacts() []dataset.Fact {
	return []dataset.Fact{
		fact("EMP001", "Engineering", 1, floatPtr(8.5), true),
		fact("EMP001", "Engineering", 2, floatPtr(7.0), false),
		fact("EMP002", "Marketing", 1, floatPtr(9.0), true),
		fact("EMP002", "Marketing", 2, nil, false),
	}
}

func TestOverview(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	overview, err := svc.Overview(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)

	assert.Equal(t, 2, overview.TotalEmployees)
	assert.Equal(t, 4, overview.TotalRecords)
	assert.Equal(t, 2, overview.PunctualRecords)
	assert.Equal(t, 50.0, overview.PunctualityRate)
	// Absent hours are excluded from the mean: (8.5+7.0+9.0)/3.
	assert.Equal(t, 8.17, overview.AverageHours)
}

func TestOverviewEmptyResult(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	dept := []string{"Sales"}
	overview, err := svc.Overview(context.Background(), id, dataset.Filter{Departments: dept})
	require.NoError(t, err)

	assert.Equal(t, 0, overview.TotalEmployees)
	assert.Equal(t, 0, overview.TotalRecords)
	assert.Equal(t, 0.0, overview.PunctualityRate)
	assert.Equal(t, 0.0, overview.AverageHours)
}

func TestOverviewUnknownDataset(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, sampleFacts())

	_, err := svc.Overview(context.Background(), "missing", dataset.Filter{})
	assert.ErrorIs(t, err, dataset.ErrDatasetNotFound)
}

func TestDailySorted(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	rows, err := svc.Daily(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "EMP001", rows[0].EmployeeID)
	assert.Equal(t, "2025-06-01", rows[0].Date)
	assert.Equal(t, "EMP002", rows[1].EmployeeID)
	assert.Equal(t, "2025-06-01", rows[1].Date)
	assert.Equal(t, "2025-06-02", rows[2].Date)
}

func TestDailyEmptyDepartmentsPassThrough(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	rows, err := svc.Daily(context.Background(), id, dataset.Filter{Departments: []string{}})
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestMonthly(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	rows, err := svc.Monthly(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "EMP001", first.EmployeeID)
	assert.Equal(t, "2025-06", first.MonthYear)
	assert.Equal(t, 2, first.TotalDays)
	assert.Equal(t, 1, first.PunctualDays)
	assert.Equal(t, 1, first.LateDays)
	assert.Equal(t, 50.0, first.PunctualityRate)
	assert.Equal(t, 7.75, first.AverageHours)
	assert.Equal(t, "No", first.PunctualStatus)

	second := rows[1]
	assert.Equal(t, "EMP002", second.EmployeeID)
	// The absent day still counts toward the denominator.
	assert.Equal(t, 50.0, second.PunctualityRate)
	// But not toward the mean.
	assert.Equal(t, 9.0, second.AverageHours)
}

func TestMonthlyTargetBoundary(t *testing.T) {
	t.Parallel()

	// 18 of 20 punctual days is exactly the 90% target.
	facts := make([]dataset.Fact, 0, 20)
	for day := 1; day <= 20; day++ {
		facts = append(facts, fact("EMP001", "Engineering", day, floatPtr(8.0), day <= 18))
	}

	svc, id := newTestService(t, facts)

	rows, err := svc.Monthly(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 90.0, rows[0].PunctualityRate)
	assert.Equal(t, "Yes", rows[0].PunctualStatus)
}

func TestMonthlySplitsAcrossMonths(t *testing.T) {
	t.Parallel()

	june := fact("EMP001", "Engineering", 30, floatPtr(8.0), true)
	july := fact("EMP001", "Engineering", 31, floatPtr(8.0), true)
	july.Date = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	svc, id := newTestService(t, []dataset.Fact{june, july})

	rows, err := svc.Monthly(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-06", rows[0].MonthYear)
	assert.Equal(t, "2025-07", rows[1].MonthYear)
}

func TestByEmployee(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	rows, err := svc.ByEmployee(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "EMP001", first.EmployeeID)
	assert.Equal(t, "Engineering", first.Department)
	assert.Equal(t, 15.5, first.TotalHours)
	assert.Equal(t, 7.75, first.AverageHours)
	assert.Equal(t, 50.0, first.PunctualityRate)
}

func TestByDepartment(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	rows, err := svc.ByDepartment(context.Background(), id, dataset.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Engineering", rows[0].Department)
	assert.Equal(t, 1, rows[0].Employees)
	assert.Equal(t, 2, rows[0].TotalDays)
	assert.Equal(t, "Marketing", rows[1].Department)
}

func TestExportMonthlyCSV(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	out, err := svc.ExportMonthly(context.Background(), id, dataset.Filter{}, report.FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "monthly_punctuality_summary_2025-06.csv", out.Filename)
	assert.Contains(t, string(out.Data), "EMP001,2025-06,2,1,1,50.00,7.75,No")
}

func TestExportDailyUnknownFormat(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	_, err := svc.ExportDaily(context.Background(), id, dataset.Filter{}, "pdf")
	assert.ErrorIs(t, err, report.ErrUnknownExportFormat)
}

func TestComposeSummaryEmail(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	req := report.EmailSummaryRequest{To: "hr@example.com"}
	out, err := svc.ComposeSummaryEmail(context.Background(), id, dataset.Filter{}, req)
	require.NoError(t, err)

	assert.Equal(t, "attendance_summary.eml", out.Filename)
	assert.Equal(t, "message/rfc822", out.ContentType)

	message := string(out.Data)
	assert.Contains(t, message, "To: hr@example.com")
	assert.Contains(t, message, "Subject: Employee Attendance Summary")
	assert.True(t, bytes.Contains(out.Data, []byte("monthly_punctuality_summary_2025-06.xlsx")))
}

func TestComposeSummaryEmailInvalidRecipient(t *testing.T) {
	t.Parallel()

	svc, id := newTestService(t, sampleFacts())

	req := report.EmailSummaryRequest{To: "not-an-email"}
	_, err := svc.ComposeSummaryEmail(context.Background(), id, dataset.Filter{}, req)
	assert.Error(t, err)
}
