// Package ingest reads uploaded inventory datasets (XLSX or CSV) into raw
// rows for the engine's normalizer. Header matching is tolerant of spacing
// and case; missing required columns fail fast with a SchemaError.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rickyckwong/transfer-suggest/internal/domain"
)

// ReadFile reads a dataset file, dispatching on extension.
func ReadFile(path string) ([]domain.RawRow, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return ReadWorkbook(path)
	case ".csv":
		return readCSVFile(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %s for %s (want .xlsx or .csv)", ext, path)
	}
}

// ReadWorkbook reads the first sheet of an XLSX workbook. The first
// non-empty row is the header; fully empty rows are skipped.
func ReadWorkbook(path string) ([]domain.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromTable(rows)
}

// ReadCSV reads a dataset from CSV content.
func ReadCSV(r io.Reader) ([]domain.RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var table [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		table = append(table, record)
	}
	return fromTable(table)
}

func readCSVFile(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// fromTable turns a header row plus data rows into RawRows keyed by the
// canonical column names.
func fromTable(table [][]string) ([]domain.RawRow, error) {
	headerLine := -1
	for i, row := range table {
		if !rowEmpty(row) {
			headerLine = i
			break
		}
	}
	if headerLine < 0 {
		return nil, &domain.SchemaError{MissingColumns: domain.RequiredColumns}
	}

	colIndex, err := mapHeader(table[headerLine])
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawRow, 0, len(table)-headerLine-1)
	for i := headerLine + 1; i < len(table); i++ {
		row := table[i]
		if rowEmpty(row) {
			continue
		}
		fields := make(map[string]string, len(colIndex))
		for col, idx := range colIndex {
			if idx < len(row) {
				fields[col] = row[idx]
			} else {
				fields[col] = ""
			}
		}
		rows = append(rows, domain.RawRow{Line: i + 1, Fields: fields})
	}
	return rows, nil
}

// mapHeader resolves the canonical column set against the sheet's header.
func mapHeader(header []string) (map[string]int, error) {
	byNormalized := make(map[string]int, len(header))
	for i, h := range header {
		byNormalized[normalizeColumnName(h)] = i
	}

	colIndex := make(map[string]int, len(domain.RequiredColumns))
	var missing []string
	for _, col := range domain.RequiredColumns {
		idx, ok := byNormalized[normalizeColumnName(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		colIndex[col] = idx
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{MissingColumns: missing}
	}
	return colIndex, nil
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

func normalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return columnNameSanitizer.Replace(name)
}
