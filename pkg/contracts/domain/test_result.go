package domain

import (
	"strconv"
	"strings"
)

// MissingValue is the sentinel substituted for absent fields
const MissingValue = "N/A"

// Column names expected in every input file
const (
	ColumnTestCaseID    = "TestCaseID"
	ColumnTestCaseName  = "TestCaseName"
	ColumnStatus        = "Status"
	ColumnExecutionTime = "ExecutionTime"
	ColumnErrorDetails  = "ErrorDetails"
)

// Status values that are counted by the analysis
const (
	StatusPass = "Pass"
	StatusFail = "Fail"
)

// Columns returns the five record columns in report order
func Columns() []string {
	return []string{
		ColumnTestCaseID,
		ColumnTestCaseName,
		ColumnStatus,
		ColumnExecutionTime,
		ColumnErrorDetails,
	}
}

// RequiredColumns returns the columns an input file must carry.
// ErrorDetails is optional because passing suites frequently omit it.
func RequiredColumns() []string {
	return []string{
		ColumnTestCaseID,
		ColumnTestCaseName,
		ColumnStatus,
		ColumnExecutionTime,
	}
}

// Field is a single parsed cell. Present is false when the source had no value.
type Field struct {
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// Value returns a present field
func Value(s string) Field {
	return Field{Value: s, Present: true}
}

// Missing returns an absent field
func Missing() Field {
	return Field{}
}

// OrSentinel returns the field text or MissingValue when absent
func (f Field) OrSentinel() string {
	if !f.Present {
		return MissingValue
	}
	return f.Value
}

// RawRecord is one row exactly as it was read from a source file
type RawRecord struct {
	TestCaseID    Field `json:"test_case_id"`
	TestCaseName  Field `json:"test_case_name"`
	Status        Field `json:"status"`
	ExecutionTime Field `json:"execution_time"`
	ErrorDetails  Field `json:"error_details"`
}

// RawTable is the untouched parse result of one input file
type RawTable struct {
	Source  string      `json:"source"`
	Format  string      `json:"format"`
	Records []RawRecord `json:"records"`
}

// Len returns the number of rows in the table
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Duration is an execution time in seconds. Present is false when the source
// cell was empty; such values are excluded from numeric aggregates.
type Duration struct {
	Seconds float64 `json:"seconds"`
	Present bool    `json:"present"`
}

// String renders the duration as the shortest decimal text that still carries
// a fractional part (10 -> "10.0", 2.5 -> "2.5"), or MissingValue when absent.
func (d Duration) String() string {
	if !d.Present {
		return MissingValue
	}
	s := strconv.FormatFloat(d.Seconds, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// WithUnit renders the duration followed by the seconds suffix
func (d Duration) WithUnit() string {
	if !d.Present {
		return MissingValue
	}
	return d.String() + "s"
}

// TestRecord is one normalized test-case result
type TestRecord struct {
	TestCaseID    string   `json:"test_case_id"`
	TestCaseName  string   `json:"test_case_name"`
	Status        string   `json:"status"`
	ExecutionTime Duration `json:"execution_time"`
	ErrorDetails  string   `json:"error_details"`
}

// Table is the ordered, normalized collection of records from all inputs
type Table struct {
	Records []TestRecord `json:"records"`
	Sources []string     `json:"sources"`
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
