package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	apperrors "qareport/internal/errors"
	"qareport/pkg/contracts/domain"
)

// secondsSuffixes are the unit markers accepted after an execution time
var secondsSuffixes = map[string]bool{
	"":        true,
	"s":       true,
	"sec":     true,
	"secs":    true,
	"second":  true,
	"seconds": true,
}

// ParseDuration strips a trailing seconds marker ("2.5s", "3 sec") and parses
// the remaining number. Other units such as "ms" are rejected rather than
// silently read as seconds.
func ParseDuration(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	number := strings.TrimRightFunc(trimmed, unicode.IsLetter)
	unit := strings.ToLower(trimmed[len(number):])
	number = strings.TrimSpace(number)

	if !secondsSuffixes[unit] {
		return 0, fmt.Errorf("unsupported unit %q", unit)
	}
	if number == "" {
		return 0, fmt.Errorf("no numeric value")
	}

	seconds, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, err
	}
	return seconds, nil
}

// NormalizationStatistics describes what Normalize filled in
type NormalizationStatistics struct {
	TotalRecords     int
	FilledFields     int
	MissingDurations int
}

// Normalize converts raw rows into report records without touching its
// input: durations are coerced first, then absent text fields become the
// N/A sentinel. The first duration that cannot be coerced aborts with a
// MALFORMED_DURATION error.
func Normalize(records []domain.RawRecord) ([]domain.TestRecord, error) {
	out, _, err := NormalizeWithStats(records)
	return out, err
}

// NormalizeWithStats is Normalize plus counts of filled values
func NormalizeWithStats(records []domain.RawRecord) ([]domain.TestRecord, NormalizationStatistics, error) {
	stats := NormalizationStatistics{TotalRecords: len(records)}
	out := make([]domain.TestRecord, 0, len(records))

	for i, raw := range records {
		duration := domain.Duration{}
		if raw.ExecutionTime.Present {
			seconds, err := ParseDuration(raw.ExecutionTime.Value)
			if err != nil {
				return nil, stats, apperrors.NewMalformedDurationError(i+1, raw.ExecutionTime.Value, err)
			}
			duration = domain.Duration{Seconds: seconds, Present: true}
		} else {
			stats.MissingDurations++
		}

		for _, f := range []domain.Field{raw.TestCaseID, raw.TestCaseName, raw.Status, raw.ExecutionTime, raw.ErrorDetails} {
			if !f.Present {
				stats.FilledFields++
			}
		}

		out = append(out, domain.TestRecord{
			TestCaseID:    raw.TestCaseID.OrSentinel(),
			TestCaseName:  raw.TestCaseName.OrSentinel(),
			Status:        raw.Status.OrSentinel(),
			ExecutionTime: duration,
			ErrorDetails:  raw.ErrorDetails.OrSentinel(),
		})
	}

	return out, stats, nil
}
