package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/diverse-infotech/attendance-insight-go/internal/domain/dataset"
	"github.com/diverse-infotech/attendance-insight-go/internal/pkg/validator"
)

// Basis selects how a day is classified as punctual.
type Basis string

const (
	// BasisHours marks a day punctual when worked hours meet the threshold.
	BasisHours Basis = "hours"
	// BasisArrival marks a day punctual when the clock-in is at or
	// before the cutoff, regardless of hours worked.
	BasisArrival Basis = "arrival"
)

// NegativePolicy decides what a negative derived duration becomes when a
// clock-out precedes its clock-in on the same day index.
type NegativePolicy string

const (
	// NegativePreserve keeps the negative value as subtraction produced
	// it. This reproduces the legacy sheets' behavior.
	NegativePreserve NegativePolicy = "preserve"
	// NegativeAbsent drops the value as unusable.
	NegativeAbsent NegativePolicy = "absent"
	// NegativeRollover assumes an overnight shift and adds a day.
	NegativeRollover NegativePolicy = "rollover"
)

// Options configures one pipeline run. Zero values are not usable;
// build Options through config mapping or the test helpers.
type Options struct {
	StartDate         time.Time
	PunctualThreshold float64
	Basis             Basis
	ArrivalCutoff     time.Time // wall-clock on the zero date, per validator.ParseClockTime
	NegativePolicy    NegativePolicy
}

// Result carries everything a run derives beyond the fact table itself.
type Result struct {
	Facts        []dataset.Fact
	DuplicateIDs []string
	Warnings     []dataset.ParseWarning
	Employees    int
}

// Run executes the full derivation pipeline: hours derivation, duplicate
// resolution, wide-to-long reshaping and punctuality classification.
// The input slice is not modified.
func Run(records []dataset.RawRecord, schema dataset.Schema, opts Options) Result {
	derived, warnings := DeriveHours(records, schema, opts.NegativePolicy)
	resolved, duplicateIDs := ResolveDuplicates(derived, schema)
	facts := Reshape(resolved, schema, opts.StartDate)
	Classify(facts, opts)

	return Result{
		Facts:        facts,
		DuplicateIDs: duplicateIDs,
		Warnings:     warnings,
		Employees:    len(resolved),
	}
}

// DeriveHours computes worked hours for every (record, day index) pair.
// A cell whose clock-in or clock-out fails to parse yields an absent
// value and counts toward that day's parse warning; derivation always
// continues for the remaining cells.
func DeriveHours(records []dataset.RawRecord, schema dataset.Schema, policy NegativePolicy) ([]dataset.DerivedRecord, []dataset.ParseWarning) {
	badCells := make(map[int]int)

	derived := make([]dataset.DerivedRecord, 0, len(records))
	for _, rec := range records {
		hours := make(map[int]*float64, len(schema.DayIndices))
		for _, day := range schema.DayIndices {
			pair := rec.Days[day]

			in, okIn := validator.ParseClockTime(pair.In)
			out, okOut := validator.ParseClockTime(pair.Out)
			if !okIn || !okOut {
				badCells[day]++
				hours[day] = nil
				continue
			}

			value := out.Sub(in).Hours()
			if value < 0 {
				switch policy {
				case NegativeAbsent:
					hours[day] = nil
					continue
				case NegativeRollover:
					value += 24
				}
			}

			rounded := round2(value)
			hours[day] = &rounded
		}
		derived = append(derived, dataset.DerivedRecord{RawRecord: rec, Hours: hours})
	}

	warnings := make([]dataset.ParseWarning, 0, len(badCells))
	for _, day := range schema.DayIndices {
		if n := badCells[day]; n > 0 {
			warnings = append(warnings, dataset.ParseWarning{DayIndex: day, BadCells: n})
		}
	}

	return derived, warnings
}

// ResolveDuplicates collapses the table to one row per employee ID.
// Exact full-row duplicates go first; among the remaining rows sharing
// an ID, the one with the greatest total derived hours wins, ties going
// to the earlier row. The IDs that had competing rows are returned for
// the upload response. The operation is idempotent.
func ResolveDuplicates(records []dataset.DerivedRecord, schema dataset.Schema) ([]dataset.DerivedRecord, []string) {
	// Drop exact duplicates. The fingerprint covers every raw field;
	// derived hours are a function of those and need no separate hash.
	seen := make(map[string]bool, len(records))
	unique := make([]dataset.DerivedRecord, 0, len(records))
	for _, rec := range records {
		fp := fingerprint(rec.RawRecord, schema)
		if seen[fp] {
			continue
		}
		seen[fp] = true
		unique = append(unique, rec)
	}

	counts := make(map[string]int, len(unique))
	for _, rec := range unique {
		counts[rec.EmployeeID]++
	}

	var duplicateIDs []string
	for id, n := range counts {
		if n > 1 {
			duplicateIDs = append(duplicateIDs, id)
		}
	}
	sort.Strings(duplicateIDs)

	// Stable descending sort by total hours, then keep the first row
	// seen per employee.
	sort.SliceStable(unique, func(i, j int) bool {
		return totalHours(unique[i], schema) > totalHours(unique[j], schema)
	})

	kept := make([]dataset.DerivedRecord, 0, len(counts))
	taken := make(map[string]bool, len(counts))
	for _, rec := range unique {
		if taken[rec.EmployeeID] {
			continue
		}
		taken[rec.EmployeeID] = true
		kept = append(kept, rec)
	}

	return kept, duplicateIDs
}

// Reshape pivots the deduplicated wide table into the long-format fact
// table: one fact per (employee, day index), day indices ascending per
// the schema, identity fields carried unchanged. The calendar date is
// startDate offset by day index minus one.
func Reshape(records []dataset.DerivedRecord, schema dataset.Schema, startDate time.Time) []dataset.Fact {
	facts := make([]dataset.Fact, 0, len(records)*len(schema.DayIndices))

	for _, rec := range records {
		for _, day := range schema.DayIndices {
			pair := rec.Days[day]
			facts = append(facts, dataset.Fact{
				EmployeeID: rec.EmployeeID,
				Gender:     rec.Gender,
				Resident:   rec.Resident,
				Department: rec.Department,
				DayIndex:   day,
				Date:       startDate.AddDate(0, 0, day-1),
				ClockIn:    pair.In,
				ClockOut:   pair.Out,
				Hours:      rec.Hours[day],
			})
		}
	}

	return facts
}

// Classify sets the punctual flag on every fact in place. Under the
// hours basis a day with absent hours is not punctual — an explicit
// rule, not a comparison accident.
func Classify(facts []dataset.Fact, opts Options) {
	for i := range facts {
		switch opts.Basis {
		case BasisArrival:
			in, ok := validator.ParseClockTime(facts[i].ClockIn)
			facts[i].Punctual = ok && !in.After(opts.ArrivalCutoff)
		default:
			facts[i].Punctual = facts[i].Hours != nil && *facts[i].Hours >= opts.PunctualThreshold
		}
	}
}

func fingerprint(rec dataset.RawRecord, schema dataset.Schema) string {
	var b strings.Builder
	b.WriteString(rec.EmployeeID)
	b.WriteByte('\x1f')
	b.WriteString(rec.Gender)
	b.WriteByte('\x1f')
	b.WriteString(rec.Resident)
	b.WriteByte('\x1f')
	b.WriteString(rec.Department)
	for _, day := range schema.DayIndices {
		pair := rec.Days[day]
		b.WriteByte('\x1f')
		b.WriteString(pair.In)
		b.WriteByte('\x1f')
		b.WriteString(pair.Out)
	}
	return b.String()
}

// totalHours sums the derived hours of a row, absent values counting as
// zero. Used only to rank duplicate rows.
func totalHours(rec dataset.DerivedRecord, schema dataset.Schema) float64 {
	var total float64
	for _, day := range schema.DayIndices {
		if h := rec.Hours[day]; h != nil {
			total += *h
		}
	}
	return total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
