package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ResultHeader is the canonical header of a test-result file
var ResultHeader = []string{"TestCaseID", "TestCaseName", "Status", "ExecutionTime", "ErrorDetails"}

// WriteFile writes content to dir/name and returns the path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteResultsCSV writes a CSV with ResultHeader followed by rows
func WriteResultsCSV(t *testing.T, dir, name string, rows ...[]string) string {
	t.Helper()
	lines := []string{strings.Join(ResultHeader, ",")}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return WriteFile(t, dir, name, strings.Join(lines, "\n")+"\n")
}

// WriteResultsJSON writes rows as a JSON array of objects
func WriteResultsJSON(t *testing.T, dir, name string, rows ...map[string]any) string {
	t.Helper()
	if rows == nil {
		rows = []map[string]any{}
	}
	data, err := json.Marshal(rows)
	require.NoError(t, err)
	return WriteFile(t, dir, name, string(data))
}

// WriteWorkbook writes rows onto the first sheet of a new workbook
func WriteWorkbook(t *testing.T, dir, name string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}
