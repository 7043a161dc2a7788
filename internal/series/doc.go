// Package series provides the monthly time series value type used across
// the seasonal adjustment pipeline, together with CSV and Excel loaders
// and writers for series files.
//
// A Series is an ordered mapping from calendar month to value. All
// cleaning operations (Sorted, DedupeKeepLast, DropNaN, TrailingYears,
// InterpolateMonthly) return a new Series and leave the receiver
// untouched, so the original caller-supplied data survives every
// transformation step.
package series
