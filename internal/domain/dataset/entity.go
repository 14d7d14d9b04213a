package dataset

import (
	"time"
)

// TimePair holds the raw clock-in/clock-out strings for one tracked day.
type TimePair struct {
	In  string
	Out string
}

// RawRecord is one uploaded sheet row before any derivation.
type RawRecord struct {
	EmployeeID string
	Gender     string
	Resident   string
	Department string
	Days       map[int]TimePair
}

// Schema describes the day-indexed column families found in the upload
// header. It is built and validated once at ingestion; later pipeline
// stages never rediscover columns by name.
type Schema struct {
	DayIndices []int // ascending
}

// DerivedRecord is a RawRecord plus the worked hours computed per day
// index. A nil entry means the value is absent: either clock string
// failed to parse, or the negative-duration policy dropped it.
type DerivedRecord struct {
	RawRecord
	Hours map[int]*float64
}

// Fact is one (employee, day) observation of the long-format fact table,
// the primary analytical output. Facts are immutable once built.
type Fact struct {
	EmployeeID string
	Gender     string
	Resident   string
	Department string
	DayIndex   int
	Date       time.Time
	ClockIn    string
	ClockOut   string
	Hours      *float64
	Punctual   bool
}

// ParseWarning reports clock values of one day-index column pair that
// could not be parsed. Non-fatal: the affected cells are absent.
type ParseWarning struct {
	DayIndex int
	BadCells int
}

// Dataset is the result of one upload-and-reshape cycle. It is stored
// whole and never mutated; a new upload produces a new Dataset.
type Dataset struct {
	ID           string
	UploadedAt   time.Time
	StartDate    time.Time
	Schema       Schema
	Facts        []Fact
	DuplicateIDs []string
	Warnings     []ParseWarning
	SourceRows   int // non-blank rows decoded from the file
	Employees    int // rows surviving duplicate resolution
}
