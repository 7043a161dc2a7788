package x13

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"x13adjust/internal/series"
)

// d11Line matches a data line of the d11 table: a six-digit year+month
// token followed by a value in fixed or scientific notation, e.g.
// "202301  123.456789" or "202301  1.234568E+02".
var d11Line = regexp.MustCompile(`^(\d{4})(\d{2})\s+([-+]?\d+\.?\d*(?:[eE][-+]?\d+)?)`)

// parseD11 reads the binary's seasonally adjusted output table into a
// date-indexed series. Header and separator lines are skipped; dates
// are normalized to month end.
func parseD11(path string) (*series.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open d11 file: %w", err)
	}
	defer f.Close()

	out := series.New("sa_value", 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		m := d11Line.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			continue
		}
		value, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q in %s: %w", m[3], path, err)
		}
		date := series.MonthEnd(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC))
		out.Append(date, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read d11 file: %w", err)
	}

	if out.Len() == 0 {
		return nil, fmt.Errorf("no data parsed from d11 file: %s", path)
	}
	return out, nil
}
