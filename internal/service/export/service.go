package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var dailyHeader = []string{"employee_id", "date", "clock_in", "clock_out", "hours_worked", "is_punctual"}

var monthlyHeader = []string{"employee_id", "month_year", "total_days", "punctual_days", "late_days", "punctuality_rate", "avg_hours_worked", "punctual_status"}

// ExporterImpl renders summary tables into CSV and XLSX bytes.
type ExporterImpl struct{}

func NewExporter() report.Exporter {
	return &ExporterImpl{}
}

// DailyExport implements report.Exporter.
func (e *ExporterImpl) DailyExport(_ context.Context, rows []report.DailyRow, format string) (report.Export, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.EmployeeID,
			r.Date,
			r.ClockIn,
			r.ClockOut,
			formatHours(r.Hours),
			yesNo(r.Punctual),
		})
	}

	switch format {
	case report.FormatCSV:
		data, err := writeCSV(dailyHeader, records)
		if err != nil {
			return report.Export{}, err
		}
		return report.Export{
			Filename:    "daily_attendance_summary.csv",
			ContentType: csvContentType,
			Data:        data,
		}, nil
	case report.FormatXLSX:
		data, err := writeXLSX("Daily Summary", dailyHeader, records)
		if err != nil {
			return report.Export{}, err
		}
		return report.Export{
			Filename:    "daily_attendance_summary.xlsx",
			ContentType: xlsxContentType,
			Data:        data,
		}, nil
	default:
		return report.Export{}, report.ErrUnknownExportFormat
	}
}

// MonthlyExport implements report.Exporter.
func (e *ExporterImpl) MonthlyExport(_ context.Context, rows []report.MonthlyRow, format string) (report.Export, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.EmployeeID,
			r.MonthYear,
			strconv.Itoa(r.TotalDays),
			strconv.Itoa(r.PunctualDays),
			strconv.Itoa(r.LateDays),
			formatFloat(r.PunctualityRate),
			formatFloat(r.AverageHours),
			r.PunctualStatus,
		})
	}

	name := "monthly_punctuality_summary"
	if len(rows) > 0 {
		name = fmt.Sprintf("%s_%s", name, rows[0].MonthYear)
	}

	switch format {
	case report.FormatCSV:
		data, err := writeCSV(monthlyHeader, records)
		if err != nil {
			return report.Export{}, err
		}
		return report.Export{
			Filename:    name + ".csv",
			ContentType: csvContentType,
			Data:        data,
		}, nil
	case report.FormatXLSX:
		data, err := writeXLSX("Monthly Summary", monthlyHeader, records)
		if err != nil {
			return report.Export{}, err
		}
		return report.Export{
			Filename:    name + ".xlsx",
			ContentType: xlsxContentType,
			Data:        data,
		}, nil
	default:
		return report.Export{}, report.ErrUnknownExportFormat
	}
}

func writeCSV(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheet string, header []string, records [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, name := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, name)
	}

	lastCol, _ := excelize.CoordinatesToCellName(len(header), 1)
	f.SetCellStyle(sheet, "A1", lastCol, headerStyle)

	for rowIdx, record := range records {
		for colIdx, value := range record {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	// Freeze the header row.
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
	})

	endCol, _ := excelize.ColumnNumberToName(len(header))
	f.SetColWidth(sheet, "A", endCol, 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}

func formatHours(h *float64) string {
	if h == nil {
		return ""
	}
	return formatFloat(*h)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
