package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/diverse-infotech/attendance-insight-go/internal/config"
	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
	"github.com/diverse-infotech/attendance-insight-go/internal/service/pipeline"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Mandatory identity/attribute columns of an attendance sheet.
var requiredColumns = []string{
	"employee_id",
	"employee_gender",
	"employee_resident",
	"employee_department",
}

type DatasetServiceImpl struct {
	repo dataset.DatasetRepository
	cfg  config.PipelineConfig
}

func NewDatasetService(repo dataset.DatasetRepository, cfg config.PipelineConfig) dataset.DatasetService {
	return &DatasetServiceImpl{
		repo: repo,
		cfg:  cfg,
	}
}

// Upload implements dataset.DatasetService.
func (s *DatasetServiceImpl) Upload(ctx context.Context, req dataset.UploadRequest) (dataset.UploadResponse, error) {
	if err := req.Validate(); err != nil {
		return dataset.UploadResponse{}, err
	}

	header, rows, err := decodeSheet(req.File, req.FileHeader.Filename)
	if err != nil {
		return dataset.UploadResponse{}, err
	}

	schema, columns, err := buildSchema(header)
	if err != nil {
		return dataset.UploadResponse{}, err
	}

	records := buildRecords(rows, columns, schema)
	if len(records) == 0 {
		return dataset.UploadResponse{}, dataset.ErrEmptySheet
	}

	startDate, _ := validator.IsValidDate(s.cfg.DefaultStartDate)
	if req.StartDate != "" {
		startDate, _ = validator.IsValidDate(req.StartDate)
	}

	result := pipeline.Run(records, schema, s.pipelineOptions(startDate))

	ds := dataset.Dataset{
		ID:           uuid.NewString(),
		UploadedAt:   time.Now().UTC(),
		StartDate:    startDate,
		Schema:       schema,
		Facts:        result.Facts,
		DuplicateIDs: result.DuplicateIDs,
		Warnings:     result.Warnings,
		SourceRows:   len(records),
		Employees:    result.Employees,
	}

	if err := s.repo.Save(ctx, ds); err != nil {
		return dataset.UploadResponse{}, fmt.Errorf("failed to save dataset: %w", err)
	}

	return dataset.UploadResponse{
		ID:           ds.ID,
		UploadedAt:   ds.UploadedAt.Format(time.RFC3339),
		StartDate:    ds.StartDate.Format("2006-01-02"),
		DayIndices:   ds.Schema.DayIndices,
		SourceRows:   ds.SourceRows,
		Employees:    ds.Employees,
		Facts:        len(ds.Facts),
		DuplicateIDs: ds.DuplicateIDs,
		Warnings:     mapWarnings(ds.Warnings),
	}, nil
}

// Get implements dataset.DatasetService.
func (s *DatasetServiceImpl) Get(ctx context.Context, id string) (dataset.DatasetResponse, error) {
	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dataset.DatasetResponse{}, err
	}

	return dataset.DatasetResponse{
		ID:           ds.ID,
		UploadedAt:   ds.UploadedAt.Format(time.RFC3339),
		StartDate:    ds.StartDate.Format("2006-01-02"),
		DayIndices:   ds.Schema.DayIndices,
		SourceRows:   ds.SourceRows,
		Employees:    ds.Employees,
		Facts:        len(ds.Facts),
		DuplicateIDs: ds.DuplicateIDs,
		Warnings:     mapWarnings(ds.Warnings),
	}, nil
}

// ListFacts implements dataset.DatasetService.
func (s *DatasetServiceImpl) ListFacts(ctx context.Context, id string, filter dataset.Filter) ([]dataset.FactResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ds, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	facts := filter.Apply(ds.Facts)
	responses := make([]dataset.FactResponse, 0, len(facts))
	for _, f := range facts {
		responses = append(responses, dataset.FactResponse{
			EmployeeID: f.EmployeeID,
			Gender:     f.Gender,
			Resident:   f.Resident,
			Department: f.Department,
			DayIndex:   f.DayIndex,
			Date:       f.Date.Format("2006-01-02"),
			ClockIn:    f.ClockIn,
			ClockOut:   f.ClockOut,
			Hours:      f.Hours,
			Punctual:   f.Punctual,
		})
	}

	return responses, nil
}

// Delete implements dataset.DatasetService.
func (s *DatasetServiceImpl) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *DatasetServiceImpl) pipelineOptions(startDate time.Time) pipeline.Options {
	// Cutoff format was validated at config load.
	cutoff, _ := validator.ParseClockTime(s.cfg.ArrivalCutoff)

	return pipeline.Options{
		StartDate:         startDate,
		PunctualThreshold: s.cfg.PunctualThresholdHours,
		Basis:             pipeline.Basis(s.cfg.PunctualityBasis),
		ArrivalCutoff:     cutoff,
		NegativePolicy:    pipeline.NegativePolicy(s.cfg.NegativeDurationPolicy),
	}
}

func mapWarnings(warnings []dataset.ParseWarning) []dataset.ParseWarningResponse {
	if len(warnings) == 0 {
		return nil
	}
	responses := make([]dataset.ParseWarningResponse, 0, len(warnings))
	for _, w := range warnings {
		responses = append(responses, dataset.ParseWarningResponse{
			DayIndex: w.DayIndex,
			BadCells: w.BadCells,
			Message:  fmt.Sprintf("day %d: %d time value(s) could not be parsed", w.DayIndex, w.BadCells),
		})
	}
	return responses
}

// ========================================
// SHEET DECODING
// ========================================

func decodeSheet(file io.Reader, filename string) ([]string, [][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return decodeCSV(file)
	case ".xlsx", ".xls":
		return decodeExcel(file)
	default:
		return nil, nil, dataset.ErrUnsupportedFormat
	}
}

func decodeCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // hand-edited sheets have ragged rows
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, dataset.ErrEmptySheet
	}

	rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	return rows[0], rows[1:], nil
}

func decodeExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read spreadsheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, dataset.ErrEmptySheet
	}

	return rows[0], rows[1:], nil
}

// ========================================
// SCHEMA
// ========================================

// sheetColumns maps schema fields to their header positions.
type sheetColumns struct {
	employeeID int
	gender     int
	resident   int
	department int
	in         map[int]int
	out        map[int]int
}

// buildSchema validates the header once and produces the explicit
// day-index descriptor the rest of the pipeline works from. Columns are
// never rediscovered by name prefix after this point.
func buildSchema(header []string) (dataset.Schema, sheetColumns, error) {
	positions := make(map[string]int, len(header))
	columns := sheetColumns{
		in:  make(map[int]int),
		out: make(map[int]int),
	}

	for i, name := range header {
		name = strings.TrimSpace(name)
		if day, ok := dayIndexOf(name, "in_"); ok {
			columns.in[day] = i
			continue
		}
		if day, ok := dayIndexOf(name, "out_"); ok {
			columns.out[day] = i
			continue
		}
		positions[name] = i
	}

	var schemaErr dataset.SchemaError
	for _, col := range requiredColumns {
		if _, ok := positions[col]; !ok {
			schemaErr.MissingColumns = append(schemaErr.MissingColumns, col)
		}
	}

	for day := range columns.in {
		if _, ok := columns.out[day]; !ok {
			schemaErr.UnpairedColumns = append(schemaErr.UnpairedColumns, fmt.Sprintf("in_%d", day))
		}
	}
	for day := range columns.out {
		if _, ok := columns.in[day]; !ok {
			schemaErr.UnpairedColumns = append(schemaErr.UnpairedColumns, fmt.Sprintf("out_%d", day))
		}
	}
	sort.Strings(schemaErr.UnpairedColumns)

	var days []int
	for day := range columns.in {
		if _, ok := columns.out[day]; ok {
			days = append(days, day)
		}
	}
	sort.Ints(days)

	if len(days) == 0 && len(schemaErr.UnpairedColumns) == 0 {
		schemaErr.MissingColumns = append(schemaErr.MissingColumns, "in_1/out_1 (at least one in/out column pair)")
	}

	if len(schemaErr.MissingColumns) > 0 || len(schemaErr.UnpairedColumns) > 0 {
		return dataset.Schema{}, sheetColumns{}, &schemaErr
	}

	columns.employeeID = positions["employee_id"]
	columns.gender = positions["employee_gender"]
	columns.resident = positions["employee_resident"]
	columns.department = positions["employee_department"]

	return dataset.Schema{DayIndices: days}, columns, nil
}

// dayIndexOf extracts the day index from a column name like "in_12".
func dayIndexOf(name, prefix string) (int, bool) {
	suffix, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, false
	}
	day, err := strconv.Atoi(suffix)
	if err != nil || day < 1 {
		return 0, false
	}
	return day, true
}

func buildRecords(rows [][]string, columns sheetColumns, schema dataset.Schema) []dataset.RawRecord {
	records := make([]dataset.RawRecord, 0, len(rows))

	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}

		days := make(map[int]dataset.TimePair, len(schema.DayIndices))
		for _, day := range schema.DayIndices {
			days[day] = dataset.TimePair{
				In:  cell(row, columns.in[day]),
				Out: cell(row, columns.out[day]),
			}
		}

		records = append(records, dataset.RawRecord{
			EmployeeID: cell(row, columns.employeeID),
			Gender:     cell(row, columns.gender),
			Resident:   cell(row, columns.resident),
			Department: cell(row, columns.department),
			Days:       days,
		})
	}

	return records
}

// cell tolerates ragged rows: a position past the row's end is absent.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if !validator.IsEmpty(v) {
			return false
		}
	}
	return true
}
