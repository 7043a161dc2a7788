package series

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// xlsxDateLayouts are tried in order when a date cell is stored as text.
var xlsxDateLayouts = []string{"2006-01-02", "01/02/2006", "2006-01", "Jan-06", "2006/01/02"}

// LoadXLSX reads a series from an Excel workbook. It scans the sheets
// for one whose header row contains a date column and a value column,
// then reads (date, value) rows until the first empty row. Empty value
// cells become NaN.
func LoadXLSX(path string) (*Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string
	for _, name := range f.GetSheetList() {
		candidate, err := f.GetRows(name)
		if err != nil || len(candidate) < 2 {
			continue
		}
		head := strings.ToLower(strings.Join(candidate[0], " "))
		if strings.Contains(head, "date") && strings.Contains(head, "value") {
			rows = candidate
			sheetName = name
			break
		}
	}
	if sheetName == "" {
		return nil, fmt.Errorf("no sheet with Date/Value columns in %s", path)
	}

	slog.Debug("found series data in sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	dateIdx, valueIdx := -1, -1
	for i, h := range rows[0] {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), "date"):
			dateIdx = i
		case strings.EqualFold(strings.TrimSpace(h), "value"):
			valueIdx = i
		}
	}
	if dateIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("missing Date/Value header in sheet %s", sheetName)
	}

	base := filepath.Base(path)
	s := New(strings.TrimSuffix(base, filepath.Ext(base)), len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= dateIdx || strings.TrimSpace(row[dateIdx]) == "" {
			break
		}
		date, err := parseXLSXDate(strings.TrimSpace(row[dateIdx]))
		if err != nil {
			return nil, err
		}
		value := math.NaN()
		if valueIdx < len(row) {
			if raw := strings.TrimSpace(row[valueIdx]); raw != "" {
				value, err = strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid value %q: %w", row[valueIdx], err)
				}
			}
		}
		s.Append(date, value)
	}
	return s, nil
}

func parseXLSXDate(raw string) (time.Time, error) {
	for _, layout := range xlsxDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	// Excel serial date number.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// SaveXLSX writes the series to an Excel workbook with a single sheet
// holding Date and Value columns.
func SaveXLSX(s *Series, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Series"
	f.SetSheetName(f.GetSheetName(0), sheet)

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Value"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, d := range s.Dates {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{d.Format("2006-01-02"), s.Values[i]}
		if math.IsNaN(s.Values[i]) {
			row[1] = ""
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f.SaveAs(path)
}
