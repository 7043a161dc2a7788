package series

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthly(start time.Time, values ...float64) *Series {
	s := New("test", len(values))
	for i, v := range values {
		s.Append(MonthEnd(start.AddDate(0, i, 0)), v)
	}
	return s
}

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid_month", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"february", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"leap_february", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"december", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthEnd(tt.in))
		})
	}
}

func TestSorted(t *testing.T) {
	s := New("test", 3)
	s.Append(time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), 3)
	s.Append(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 1)
	s.Append(time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), 2)

	sorted := s.Sorted()
	assert.Equal(t, []float64{1, 2, 3}, sorted.Values)
	// the receiver is untouched
	assert.Equal(t, []float64{3, 1, 2}, s.Values)
}

func TestDedupeKeepLast(t *testing.T) {
	s := New("test", 4)
	jan := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	s.Append(jan, 1)
	s.Append(jan, 10)
	s.Append(jan, 100)
	s.Append(feb, 2)

	deduped := s.DedupeKeepLast()
	require.Equal(t, 2, deduped.Len())
	assert.Equal(t, []float64{100, 2}, deduped.Values)
}

func TestDedupeKeepLastAfterSort(t *testing.T) {
	// A later observation for an already-seen month must win even when
	// the input arrives out of order.
	jan := time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)
	s := New("test", 3)
	s.Append(feb, 2)
	s.Append(jan, 1)
	s.Append(jan, 99)

	deduped := s.Sorted().DedupeKeepLast()
	v, ok := deduped.At(jan)
	require.True(t, ok)
	assert.Equal(t, 99.0, v)
}

func TestDropNaN(t *testing.T) {
	s := monthly(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1, math.NaN(), 3)
	clean := s.DropNaN()
	require.Equal(t, 2, clean.Len())
	assert.Equal(t, []float64{1, 3}, clean.Values)
}

func TestTrailingYears(t *testing.T) {
	// 10 years of annual January observations.
	s := New("test", 10)
	for y := 2014; y <= 2023; y++ {
		s.Append(time.Date(y, 1, 31, 0, 0, 0, 0, time.UTC), float64(y))
	}

	windowed := s.TrailingYears(3)
	require.Equal(t, 4, windowed.Len()) // cutoff is inclusive
	assert.Equal(t, 2020.0, windowed.Values[0])
	assert.Equal(t, 2023.0, windowed.Values[3])
}

func TestTrailingYearsNoop(t *testing.T) {
	s := monthly(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1, 2, 3)
	assert.Equal(t, 3, s.TrailingYears(8).Len())
	assert.Equal(t, 3, s.TrailingYears(0).Len())
}

func TestInterpolateMonthlySingleGap(t *testing.T) {
	s := New("test", 2)
	s.Append(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 100)
	s.Append(time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), 104)

	filled := s.InterpolateMonthly()
	require.Equal(t, 3, filled.Len())
	// single missing month takes the linear average of its neighbors
	assert.Equal(t, 102.0, filled.Values[1])
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), filled.Dates[1])
}

func TestInterpolateMonthlyMultiGap(t *testing.T) {
	s := New("test", 2)
	s.Append(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 100)
	s.Append(time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC), 106)

	filled := s.InterpolateMonthly()
	require.Equal(t, 4, filled.Len())
	assert.InDelta(t, 102.0, filled.Values[1], 1e-9)
	assert.InDelta(t, 104.0, filled.Values[2], 1e-9)
	assert.True(t, filled.Contiguous())
}

func TestInterpolateMonthlyContiguousInput(t *testing.T) {
	s := monthly(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 1, 2, 3)
	filled := s.InterpolateMonthly()
	assert.Equal(t, s.Values, filled.Values)
}

func TestAt(t *testing.T) {
	s := monthly(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 10, 20)

	// lookup keys on (year, month), not the exact day
	v, ok := s.At(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, 20.0, v)

	_, ok = s.At(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestFromPairsLengthMismatch(t *testing.T) {
	_, err := FromPairs([]time.Time{{}}, nil, "bad")
	assert.Error(t, err)
}

func TestContiguous(t *testing.T) {
	contiguous := monthly(time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC), 1, 2, 3)
	assert.True(t, contiguous.Contiguous())

	gapped := New("test", 2)
	gapped.Append(time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), 1)
	gapped.Append(time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), 3)
	assert.False(t, gapped.Contiguous())
}
