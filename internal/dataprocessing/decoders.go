package dataprocessing

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"qareport/pkg/contracts/domain"
)

// decodeCSV reads a header row followed by data rows. Short rows are padded
// with missing values; rows longer than the header are malformed.
func decodeCSV(r io.Reader) ([]string, [][]domain.Field, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("no columns to parse from file")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]domain.Field
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read record: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(record))
		}

		row := make([]domain.Field, len(record))
		for i, cell := range record {
			row[i] = textField(cell)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}

// decodeJSON accepts either an array of row objects or an object of
// column -> {index -> value} (an array per column is also accepted).
func decodeJSON(r io.Reader) ([]string, [][]domain.Field, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	switch v := doc.(type) {
	case []interface{}:
		return jsonRecords(v)
	case map[string]interface{}:
		return jsonColumns(v)
	default:
		return nil, nil, fmt.Errorf("unsupported JSON layout: expected an array of objects or an object of columns")
	}
}

func jsonRecords(items []interface{}) ([]string, [][]domain.Field, error) {
	objects := make([]map[string]interface{}, len(items))
	seen := make(map[string]bool)
	var header []string

	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, nil, fmt.Errorf("row %d is not an object", i)
		}
		objects[i] = obj

		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
	}

	rows := make([][]domain.Field, len(objects))
	for i, obj := range objects {
		row := make([]domain.Field, len(header))
		for j, col := range header {
			v, ok := obj[col]
			if !ok {
				row[j] = domain.Missing()
				continue
			}
			row[j] = jsonCell(v)
		}
		rows[i] = row
	}

	return header, rows, nil
}

func jsonColumns(columns map[string]interface{}) ([]string, [][]domain.Field, error) {
	header := make([]string, 0, len(columns))
	for name := range columns {
		header = append(header, name)
	}
	sort.Strings(header)

	cells := make(map[string]map[string]interface{}, len(columns))
	indexSet := make(map[string]bool)

	for _, name := range header {
		byIndex := make(map[string]interface{})
		switch v := columns[name].(type) {
		case map[string]interface{}:
			for idx, cell := range v {
				byIndex[idx] = cell
			}
		case []interface{}:
			for i, cell := range v {
				byIndex[strconv.Itoa(i)] = cell
			}
		default:
			return nil, nil, fmt.Errorf("column %q is not an object or array", name)
		}
		for idx := range byIndex {
			indexSet[idx] = true
		}
		cells[name] = byIndex
	}

	index := sortIndex(indexSet)

	rows := make([][]domain.Field, len(index))
	for i, idx := range index {
		row := make([]domain.Field, len(header))
		for j, name := range header {
			v, ok := cells[name][idx]
			if !ok {
				row[j] = domain.Missing()
				continue
			}
			row[j] = jsonCell(v)
		}
		rows[i] = row
	}

	return header, rows, nil
}

// sortIndex orders row labels numerically when they are all integers
func sortIndex(set map[string]bool) []string {
	index := make([]string, 0, len(set))
	numeric := true
	for idx := range set {
		index = append(index, idx)
		if _, err := strconv.Atoi(idx); err != nil {
			numeric = false
		}
	}

	if numeric {
		sort.Slice(index, func(i, j int) bool {
			a, _ := strconv.Atoi(index[i])
			b, _ := strconv.Atoi(index[j])
			return a < b
		})
	} else {
		sort.Strings(index)
	}
	return index
}

// jsonCell converts a decoded JSON value to a field. Only null is missing;
// numbers keep their literal text.
func jsonCell(v interface{}) domain.Field {
	switch val := v.(type) {
	case nil:
		return domain.Missing()
	case string:
		return domain.Value(val)
	case json.Number:
		return domain.Value(val.String())
	case bool:
		return domain.Value(strconv.FormatBool(val))
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return domain.Value(fmt.Sprintf("%v", val))
		}
		return domain.Value(string(b))
	}
}

// decodeExcel reads the first worksheet; its first row is the header.
// Legacy BIFF .xls workbooks are not readable by excelize and fail here.
func decodeExcel(r io.Reader) ([]string, [][]domain.Field, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("worksheet %q is empty", sheets[0])
	}

	header := rows[0]
	var data [][]domain.Field
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		fields := make([]domain.Field, len(row))
		for i, cell := range row {
			fields[i] = textField(cell)
		}
		data = append(data, fields)
	}

	return header, data, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
