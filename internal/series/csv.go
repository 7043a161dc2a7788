package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for series CSV files.
type CSVOptions struct {
	DateColumn  string // header name for dates (default: "Date")
	ValueColumn string // header name for values (default: "Value")
	DateFormat  string // date layout (default: "2006-01-02")
	Delimiter   rune   // field delimiter (default: ',')
	BOMPrefix   bool   // write a UTF-8 BOM for Excel compatibility
}

// DefaultCSVOptions returns the options used for series files written
// by this module.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateColumn:  "Date",
		ValueColumn: "Value",
		DateFormat:  "2006-01-02",
		Delimiter:   ',',
	}
}

// LoadCSV loads a series from a CSV file. The series name defaults to
// the file name without extension.
func LoadCSV(path string, opts *CSVOptions) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// ReadCSV reads a series from r. The first row is a header; the date
// and value columns are located by name, falling back to columns 0 and
// 1. Empty value cells become NaN so that downstream cleaning can drop
// or interpolate them.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	dateIdx, valueIdx := 0, 1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case opts.DateColumn:
			dateIdx = i
		case opts.ValueColumn:
			valueIdx = i
		}
	}

	s := New("", 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if dateIdx >= len(record) || valueIdx >= len(record) {
			return nil, fmt.Errorf("record has %d fields, need %d", len(record), max(dateIdx, valueIdx)+1)
		}

		date, err := time.Parse(opts.DateFormat, strings.TrimSpace(record[dateIdx]))
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", record[dateIdx], err)
		}

		raw := strings.TrimSpace(record[valueIdx])
		value := math.NaN()
		if raw != "" {
			value, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value %q: %w", record[valueIdx], err)
			}
		}
		s.Append(date, value)
	}
	return s, nil
}

// SaveCSV writes the series to path, creating parent directories as
// needed.
func SaveCSV(s *Series, path string, opts *CSVOptions) error {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if opts.BOMPrefix {
		if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	w := csv.NewWriter(f)
	w.Comma = opts.Delimiter
	if err := w.Write([]string{opts.DateColumn, opts.ValueColumn}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, d := range s.Dates {
		value := ""
		if !math.IsNaN(s.Values[i]) {
			value = strconv.FormatFloat(s.Values[i], 'f', 6, 64)
		}
		if err := w.Write([]string{d.Format(opts.DateFormat), value}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
