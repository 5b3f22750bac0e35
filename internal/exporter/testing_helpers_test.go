package exporter

import (
	"qareport/pkg/contracts/domain"
)

func sampleTable() (*domain.Table, domain.Analysis) {
	table := &domain.Table{
		Records: []domain.TestRecord{
			{
				TestCaseID:    "1",
				TestCaseName:  "Login",
				Status:        "Pass",
				ExecutionTime: domain.Duration{Seconds: 10, Present: true},
				ErrorDetails:  domain.MissingValue,
			},
			{
				TestCaseID:    "2",
				TestCaseName:  "Checkout",
				Status:        "Fail",
				ExecutionTime: domain.Duration{Seconds: 2.5, Present: true},
				ErrorDetails:  "Timeout, retry exhausted",
			},
			{
				TestCaseID:    "3",
				TestCaseName:  "Search",
				Status:        "Skipped",
				ExecutionTime: domain.Duration{},
				ErrorDetails:  domain.MissingValue,
			},
		},
		Sources: []string{"results.csv"},
	}
	analysis := domain.Analysis{
		TotalTests:           3,
		PassedTests:          1,
		FailedTests:          1,
		AverageExecutionTime: 6.25,
	}
	return table, analysis
}
