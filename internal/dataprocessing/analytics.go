package dataprocessing

import (
	"log/slog"

	apperrors "qareport/internal/errors"
	"qareport/pkg/contracts/domain"
)

// Combine concatenates the parsed tables in order. It fails with
// NO_VALID_DATA when there is nothing to aggregate: no tables, or tables
// that hold no rows at all.
func Combine(tables []*domain.RawTable) ([]domain.RawRecord, []string, error) {
	if len(tables) == 0 {
		return nil, nil, apperrors.NewNoValidDataError()
	}

	total := 0
	for _, t := range tables {
		total += t.Len()
	}
	if total == 0 {
		return nil, nil, apperrors.NewNoValidDataError().WithContext("files", len(tables))
	}

	records := make([]domain.RawRecord, 0, total)
	sources := make([]string, 0, len(tables))
	for _, t := range tables {
		if t == nil {
			continue
		}
		records = append(records, t.Records...)
		sources = append(sources, t.Source)
	}

	return records, sources, nil
}

// Summarize computes the report statistics for table. Statuses other than
// Pass and Fail count toward the total only. The average covers records
// whose duration is present and is zero when none are.
func Summarize(table *domain.Table) domain.Analysis {
	var analysis domain.Analysis
	if table == nil {
		return analysis
	}

	var sum float64
	var timed int

	for _, r := range table.Records {
		analysis.TotalTests++
		switch r.Status {
		case domain.StatusPass:
			analysis.PassedTests++
		case domain.StatusFail:
			analysis.FailedTests++
		}
		if r.ExecutionTime.Present {
			sum += r.ExecutionTime.Seconds
			timed++
		}
	}

	if timed > 0 {
		analysis.AverageExecutionTime = sum / float64(timed)
	}

	return analysis
}

// Aggregator runs the aggregation chain and logs its outcome
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator; a nil logger falls back to slog.Default
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate aggregates with the default logger
func Aggregate(tables []*domain.RawTable) (*domain.Table, domain.Analysis, error) {
	return NewAggregator(nil).Aggregate(tables)
}

// Aggregate runs Combine, Normalize and Summarize over the parsed tables
func (a *Aggregator) Aggregate(tables []*domain.RawTable) (*domain.Table, domain.Analysis, error) {
	raw, sources, err := Combine(tables)
	if err != nil {
		return nil, domain.Analysis{}, err
	}

	records, stats, err := NormalizeWithStats(raw)
	if err != nil {
		return nil, domain.Analysis{}, err
	}

	table := &domain.Table{Records: records, Sources: sources}
	analysis := Summarize(table)

	a.logger.Info("Aggregated test results",
		slog.Int("files", len(sources)),
		slog.Int("total_tests", analysis.TotalTests),
		slog.Int("passed_tests", analysis.PassedTests),
		slog.Int("failed_tests", analysis.FailedTests),
		slog.Float64("average_execution_time", analysis.AverageExecutionTime),
		slog.Int("filled_fields", stats.FilledFields),
		slog.Int("missing_durations", stats.MissingDurations))

	return table, analysis, nil
}
