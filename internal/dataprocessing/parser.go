package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "qareport/internal/errors"
	"qareport/pkg/contracts/domain"
)

// Format identifies a supported tabular input format
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatJSON
	FormatExcel
)

// String returns the lower-case format name
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatExcel:
		return "excel"
	default:
		return "unknown"
	}
}

// extensionFormats maps file extensions to formats. Matching is case-sensitive.
var extensionFormats = map[string]Format{
	".csv":  FormatCSV,
	".json": FormatJSON,
	".xls":  FormatExcel,
	".xlsx": FormatExcel,
}

// decodeFunc turns a source stream into a header and rows of cells
type decodeFunc func(r io.Reader) (header []string, rows [][]domain.Field, err error)

var decoders = map[Format]decodeFunc{
	FormatCSV:   decodeCSV,
	FormatJSON:  decodeJSON,
	FormatExcel: decodeExcel,
}

// DetectFormat returns the format for path's extension or an
// UNSUPPORTED_FORMAT error naming the extension.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	format, ok := extensionFormats[ext]
	if !ok {
		return FormatUnknown, apperrors.NewUnsupportedFormatError(ext).WithContext("file", path)
	}
	return format, nil
}

// IsSupported reports whether path has a parseable extension
func IsSupported(path string) bool {
	_, ok := extensionFormats[filepath.Ext(path)]
	return ok
}

// Parser reads test-result files, logging through its own logger
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser; a nil logger falls back to slog.Default
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseFile parses with a parser bound to the default logger
func ParseFile(filePath string) (*domain.RawTable, error) {
	return NewParser(nil).ParseFile(filePath)
}

// Parse decodes with a parser bound to the default logger
func Parse(r io.Reader, format Format, source string) (*domain.RawTable, error) {
	return NewParser(nil).Parse(r, format, source)
}

// ParseFile reads one test-result file into a RawTable.
// Unknown extensions fail with UNSUPPORTED_FORMAT; every other failure is a
// PARSING error carrying the file path.
func (p *Parser) ParseFile(filePath string) (*domain.RawTable, error) {
	format, err := DetectFormat(filePath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError(filePath, err)
	}
	defer f.Close()

	return p.Parse(f, format, filePath)
}

// Parse decodes r as format. source is recorded on the table and in errors.
func (p *Parser) Parse(r io.Reader, format Format, source string) (*domain.RawTable, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, apperrors.NewUnsupportedFormatError(format.String()).WithContext("file", source)
	}

	header, rows, err := decode(r)
	if err != nil {
		return nil, apperrors.NewParsingError(source, err)
	}

	records, err := buildRecords(header, rows)
	if err != nil {
		return nil, apperrors.NewParsingError(source, err)
	}

	p.logger.Debug("Parsed input file",
		slog.String("file", source),
		slog.String("format", format.String()),
		slog.Int("records", len(records)))

	return &domain.RawTable{
		Source:  source,
		Format:  format.String(),
		Records: records,
	}, nil
}

// buildRecords maps header positions onto record fields. A header lacking a
// required column is rejected; ErrorDetails may be absent.
func buildRecords(header []string, rows [][]domain.Field) ([]domain.RawRecord, error) {
	if len(rows) == 0 && len(header) == 0 {
		return []domain.RawRecord{}, nil
	}

	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := columnMap[name]; !dup {
			columnMap[name] = i
		}
	}

	for _, col := range domain.RequiredColumns() {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("could not find required column: %s", col)
		}
	}

	get := func(row []domain.Field, col string) domain.Field {
		idx, exists := columnMap[col]
		if !exists || idx >= len(row) {
			return domain.Missing()
		}
		return row[idx]
	}

	records := make([]domain.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.RawRecord{
			TestCaseID:    get(row, domain.ColumnTestCaseID),
			TestCaseName:  get(row, domain.ColumnTestCaseName),
			Status:        get(row, domain.ColumnStatus),
			ExecutionTime: get(row, domain.ColumnExecutionTime),
			ErrorDetails:  get(row, domain.ColumnErrorDetails),
		})
	}

	return records, nil
}

// textField treats an empty cell as missing
func textField(s string) domain.Field {
	if s == "" {
		return domain.Missing()
	}
	return domain.Value(s)
}
