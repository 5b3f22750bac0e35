package dataprocessing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "qareport/internal/errors"
	"qareport/pkg/contracts/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{path: "a.csv", expected: FormatCSV},
		{path: "dir/b.json", expected: FormatJSON},
		{path: "c.xls", expected: FormatExcel},
		{path: "d.xlsx", expected: FormatExcel},
		{path: "e.CSV", wantErr: true},
		{path: "f.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseFile_UnsupportedFormatNamesExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.txt", "whatever")

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".txt")
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
}

func TestParseFile_CSV(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.csv",
		"TestCaseID,TestCaseName,Status,ExecutionTime,ErrorDetails\n"+
			"1,Login,Pass,2.5s,\n"+
			"2,Logout,Fail,10s,Timeout\n"+
			"3,Search,Skip,1s\n")

	table, err := ParseFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Equal(t, "csv", table.Format)
	require.Len(t, table.Records, 3)

	first := table.Records[0]
	assert.Equal(t, domain.Value("1"), first.TestCaseID)
	assert.Equal(t, domain.Value("Login"), first.TestCaseName)
	assert.Equal(t, domain.Value("2.5s"), first.ExecutionTime)
	assert.False(t, first.ErrorDetails.Present, "empty cell is missing")

	assert.Equal(t, domain.Value("Timeout"), table.Records[1].ErrorDetails)
	assert.False(t, table.Records[2].ErrorDetails.Present, "short row pads with missing")
}

func TestParseFile_CSVWithBOMAndNoErrorDetailsColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bom.csv",
		"\ufeffTestCaseID,TestCaseName,Status,ExecutionTime\n"+
			"7,Checkout,Pass,3s\n")

	table, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, domain.Value("7"), table.Records[0].TestCaseID)
	assert.False(t, table.Records[0].ErrorDetails.Present)
}

func TestParseFile_CSVMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "row longer than header", content: "TestCaseID,TestCaseName,Status,ExecutionTime,ErrorDetails\n1,a,Pass,1s,x,extra\n"},
		{name: "bare quote", content: "TestCaseID,TestCaseName,Status,ExecutionTime\n1,a \"b,Pass,1s\n"},
		{name: "missing required column", content: "TestCaseID,Status,ExecutionTime\n1,Pass,1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.csv", tt.content)

			_, err := ParseFile(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrParsing))
		})
	}
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrParsing))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParseFile_JSONRecords(t *testing.T) {
	path := writeFile(t, t.TempDir(), "results.json", `[
		{"TestCaseID": 1, "TestCaseName": "Login", "Status": "Pass", "ExecutionTime": "2.5s", "ErrorDetails": null},
		{"TestCaseID": 2, "TestCaseName": "Logout", "Status": "Fail", "ExecutionTime": "4s", "ErrorDetails": "boom"},
		{"TestCaseID": 3, "TestCaseName": "Search", "Status": "Pass", "ExecutionTime": "1s"}
	]`)

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", table.Format)
	require.Len(t, table.Records, 3)

	assert.Equal(t, domain.Value("1"), table.Records[0].TestCaseID)
	assert.False(t, table.Records[0].ErrorDetails.Present, "null is missing")
	assert.Equal(t, domain.Value("boom"), table.Records[1].ErrorDetails)
	assert.False(t, table.Records[2].ErrorDetails.Present, "absent key is missing")
}

func TestParseFile_JSONColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "columns.json", `{
		"TestCaseID": {"0": "A", "1": "B", "10": "C", "2": "D"},
		"TestCaseName": {"0": "a", "1": "b", "10": "c", "2": "d"},
		"Status": {"0": "Pass", "1": "Fail", "10": "Pass", "2": "Pass"},
		"ExecutionTime": {"0": "1s", "1": "2s", "10": "3s", "2": "4s"},
		"ErrorDetails": {"1": "x"}
	}`)

	table, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, table.Records, 4)

	ids := make([]string, 0, 4)
	for _, r := range table.Records {
		ids = append(ids, r.TestCaseID.Value)
	}
	assert.Equal(t, []string{"A", "B", "D", "C"}, ids, "index labels sort numerically")
	assert.Equal(t, domain.Value("x"), table.Records[1].ErrorDetails)
	assert.False(t, table.Records[0].ErrorDetails.Present)
}

func TestParseFile_JSONMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `[{"TestCaseID": 1`},
		{name: "scalar document", content: `42`},
		{name: "non-object row", content: `[1, 2]`},
		{name: "missing required column", content: `[{"TestCaseID": 1, "Status": "Pass"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.json", tt.content)
			_, err := ParseFile(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrParsing))
		})
	}
}

func TestParseFile_JSONEmptyArray(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.json", `[]`)

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func writeWorkbook(t *testing.T, path string, rows [][]interface{}) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestParseFile_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	writeWorkbook(t, path, [][]interface{}{
		{"TestCaseID", "TestCaseName", "Status", "ExecutionTime", "ErrorDetails"},
		{1, "Login", "Pass", "2.5s", nil},
		{},
		{2, "Logout", "Fail", 4.25, "Timeout"},
	})

	table, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "excel", table.Format)
	require.Len(t, table.Records, 2, "blank rows are skipped")

	assert.Equal(t, domain.Value("1"), table.Records[0].TestCaseID)
	assert.Equal(t, domain.Value("2.5s"), table.Records[0].ExecutionTime)
	assert.False(t, table.Records[0].ErrorDetails.Present)

	assert.Equal(t, domain.Value("4.25"), table.Records[1].ExecutionTime)
	assert.Equal(t, domain.Value("Timeout"), table.Records[1].ErrorDetails)
}

func TestParseFile_UnreadableWorkbookIsParseFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "legacy.xls", "not a zip container")

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrParsing))
}

func TestParse_ReaderEntryPoint(t *testing.T) {
	table, err := Parse(strings.NewReader("TestCaseID,TestCaseName,Status,ExecutionTime\n1,a,Pass,1s\n"), FormatCSV, "stdin")
	require.NoError(t, err)
	assert.Equal(t, "stdin", table.Source)
	assert.Equal(t, 1, table.Len())

	_, err = Parse(strings.NewReader(""), FormatUnknown, "stdin")
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "csv", FormatCSV.String())
	assert.Equal(t, "json", FormatJSON.String())
	assert.Equal(t, "excel", FormatExcel.String())
	assert.Equal(t, "unknown", FormatUnknown.String())
}
