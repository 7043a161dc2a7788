package x13

import (
	"fmt"

	"x13adjust/internal/series"
)

// preprocess cleans and windows the raw series into the contiguous
// monthly slice the binary requires: sort by date, keep the last value
// per duplicated month, drop missing values, restrict to the trailing
// span window, and interpolate any remaining monthly gaps.
func preprocess(raw *series.Series, cfg Config) (*series.Series, error) {
	if raw.Len() < cfg.MinObservations {
		return nil, fmt.Errorf("too few observations: %d < %d", raw.Len(), cfg.MinObservations)
	}

	// Dedupe runs before DropNaN: a month whose last reported value is
	// NaN is treated as missing and interpolated, not replaced by an
	// earlier stale value.
	s := raw.Sorted().DedupeKeepLast().DropNaN().TrailingYears(cfg.SpanYears)
	if s.Len() < cfg.MinObservations {
		return nil, fmt.Errorf("too few observations after %dyr trim: %d < %d",
			cfg.SpanYears, s.Len(), cfg.MinObservations)
	}

	return s.InterpolateMonthly(), nil
}
