// Package dataset loads named numeric series from CSV files for analysis.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a CSV file whose first row names the columns and returns one
// series per numeric column. Columns that fail to parse as float64 on any row
// are dropped rather than failing the load.
func LoadCSV(path string) (map[string][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	series, err := LoadCSVFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return series, nil
}

// LoadCSVFromReader reads header-led CSV data from r.
func LoadCSVFromReader(r io.Reader) (map[string][]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input")
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		names[i] = name
	}

	columns := make([][]float64, len(names))
	numeric := make([]bool, len(names))
	for i := range numeric {
		numeric[i] = true
	}

	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if len(record) != len(names) {
			return nil, fmt.Errorf("row %d: expected %d fields, got %d", row, len(names), len(record))
		}
		for i, field := range record {
			if !numeric[i] {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				numeric[i] = false
				columns[i] = nil
				continue
			}
			columns[i] = append(columns[i], v)
		}
		row++
	}

	series := make(map[string][]float64)
	for i, name := range names {
		if numeric[i] && len(columns[i]) > 0 {
			series[name] = columns[i]
		}
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no numeric columns found")
	}
	return series, nil
}
