package series

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Series represents a monthly time series with parallel date and value
// slices. Dates are calendar dates; most pipeline operations key on the
// (year, month) pair rather than the exact day.
type Series struct {
	Dates  []time.Time
	Values []float64
	Name   string
}

// New creates an empty series with the given name and capacity.
func New(name string, capacity int) *Series {
	return &Series{
		Dates:  make([]time.Time, 0, capacity),
		Values: make([]float64, 0, capacity),
		Name:   name,
	}
}

// FromPairs creates a series from explicit dates and values.
func FromPairs(dates []time.Time, values []float64, name string) (*Series, error) {
	if len(dates) != len(values) {
		return nil, errors.New("dates and values must have the same length")
	}
	return &Series{Dates: dates, Values: values, Name: name}, nil
}

// Append adds an observation to the end of the series.
func (s *Series) Append(date time.Time, value float64) {
	s.Dates = append(s.Dates, date)
	s.Values = append(s.Values, value)
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// Clone returns a deep copy of the series.
func (s *Series) Clone() *Series {
	out := &Series{
		Dates:  make([]time.Time, len(s.Dates)),
		Values: make([]float64, len(s.Values)),
		Name:   s.Name,
	}
	copy(out.Dates, s.Dates)
	copy(out.Values, s.Values)
	return out
}

// MonthKey collapses a date to a sortable YYYYMM integer.
func MonthKey(t time.Time) int {
	return t.Year()*100 + int(t.Month())
}

// MonthEnd returns the last day of t's month, at midnight UTC. The x13
// engine works on month-end dates, so all windowed data is normalized
// through this before it reaches the binary.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// At returns the value for the month containing date, if present.
func (s *Series) At(date time.Time) (float64, bool) {
	key := MonthKey(date)
	for i, d := range s.Dates {
		if MonthKey(d) == key {
			return s.Values[i], true
		}
	}
	return 0, false
}

// Sorted returns a copy of the series ordered by date. The sort is
// stable so that, among duplicate months, the later input observation
// stays later.
func (s *Series) Sorted() *Series {
	out := s.Clone()
	sort.Stable(byDate{out})
	return out
}

type byDate struct{ s *Series }

func (b byDate) Len() int { return b.s.Len() }
func (b byDate) Less(i, j int) bool {
	return b.s.Dates[i].Before(b.s.Dates[j])
}
func (b byDate) Swap(i, j int) {
	b.s.Dates[i], b.s.Dates[j] = b.s.Dates[j], b.s.Dates[i]
	b.s.Values[i], b.s.Values[j] = b.s.Values[j], b.s.Values[i]
}

// DedupeKeepLast returns a copy with at most one observation per month,
// keeping the last value seen for each month. The input must already be
// sorted by date.
func (s *Series) DedupeKeepLast() *Series {
	out := New(s.Name, s.Len())
	for i := range s.Dates {
		if i+1 < len(s.Dates) && MonthKey(s.Dates[i+1]) == MonthKey(s.Dates[i]) {
			continue
		}
		out.Append(s.Dates[i], s.Values[i])
	}
	return out
}

// DropNaN returns a copy without NaN observations.
func (s *Series) DropNaN() *Series {
	out := New(s.Name, s.Len())
	for i, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		out.Append(s.Dates[i], v)
	}
	return out
}

// TrailingYears returns a copy restricted to the most recent n years,
// measured back from the latest observation. The input must already be
// sorted by date.
func (s *Series) TrailingYears(n int) *Series {
	if s.Len() == 0 || n <= 0 {
		return s.Clone()
	}
	cutoff := s.Dates[len(s.Dates)-1].AddDate(-n, 0, 0)
	out := New(s.Name, s.Len())
	for i, d := range s.Dates {
		if d.Before(cutoff) {
			continue
		}
		out.Append(d, s.Values[i])
	}
	return out
}

// InterpolateMonthly returns a copy covering every month between the
// first and last observation, with missing months filled by linear
// interpolation between the nearest present neighbors. Dates in the
// result are normalized to month end. The input must be sorted and
// deduplicated.
func (s *Series) InterpolateMonthly() *Series {
	if s.Len() == 0 {
		return s.Clone()
	}

	byMonth := make(map[int]float64, s.Len())
	for i, d := range s.Dates {
		byMonth[MonthKey(d)] = s.Values[i]
	}

	first := MonthEnd(s.Dates[0])
	last := MonthEnd(s.Dates[len(s.Dates)-1])

	out := New(s.Name, s.Len())
	var gap []time.Time
	prev := math.NaN()

	for m := first; !m.After(last); m = MonthEnd(m.AddDate(0, 0, 1)) {
		if v, ok := byMonth[MonthKey(m)]; ok {
			// Close out any open gap against the new anchor.
			for gi, gd := range gap {
				frac := float64(gi+1) / float64(len(gap)+1)
				out.Append(gd, prev+(v-prev)*frac)
			}
			gap = gap[:0]
			out.Append(m, v)
			prev = v
			continue
		}
		gap = append(gap, m)
	}
	return out
}

// Contiguous reports whether the series covers every month between its
// first and last observation with no gaps.
func (s *Series) Contiguous() bool {
	for i := 1; i < s.Len(); i++ {
		want := MonthKey(MonthEnd(s.Dates[i-1].AddDate(0, 0, 1)))
		if MonthKey(s.Dates[i]) != want {
			return false
		}
	}
	return true
}
