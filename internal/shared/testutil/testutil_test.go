package testutil

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLogCapture(t *testing.T) {
	logger, capture := NewTestLogger()

	logger.With(slog.String("component", "app")).Warn("Skipping input file", slog.String("file", "a.csv"))
	logger.Info("done")

	records := capture.Records()
	require.Len(t, records, 2)

	r := AssertLogged(t, capture, slog.LevelWarn, "Skipping")
	assert.Equal(t, "app", r.Attrs["component"])
	assert.Equal(t, "a.csv", r.Attrs["file"])

	_, ok := capture.Find(slog.LevelError, "Skipping")
	assert.False(t, ok)
	assert.Len(t, capture.ByLevel(slog.LevelInfo), 1)
}

func TestWriteResultsCSV(t *testing.T) {
	path := WriteResultsCSV(t, t.TempDir(), "r.csv", []string{"1", "Login", "Pass", "1s", ""})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TestCaseID,TestCaseName,Status,ExecutionTime,ErrorDetails\n1,Login,Pass,1s,\n", string(data))
}

func TestWriteWorkbook(t *testing.T) {
	path := WriteWorkbook(t, t.TempDir(), "r.xlsx", [][]any{{"A", "B"}, {1, "x"}})

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B"}, {"1", "x"}}, rows)
}
