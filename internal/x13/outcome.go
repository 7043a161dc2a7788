package x13

import "x13adjust/internal/series"

// FallbackReason classifies why an adjustment run returned the input
// unchanged.
type FallbackReason string

const (
	FallbackNone          FallbackReason = ""
	FallbackInvalidConfig FallbackReason = "invalid_config"
	FallbackTooFewObs     FallbackReason = "too_few_observations"
	FallbackBinaryMissing FallbackReason = "binary_missing"
	FallbackRunFailed     FallbackReason = "run_failed"
	FallbackTimeout       FallbackReason = "timeout"
	FallbackUnparsable    FallbackReason = "unparsable_output"
	FallbackRealignment   FallbackReason = "realignment_failed"
	FallbackInternal      FallbackReason = "internal_error"
)

// Outcome is the tagged result of an adjustment run. Series always
// holds a usable series: the adjusted one when Adjusted is true, the
// caller's original otherwise.
type Outcome struct {
	Series   *series.Series
	Adjusted bool
	Reason   FallbackReason
	Err      error
}

func adjusted(s *series.Series) *Outcome {
	return &Outcome{Series: s, Adjusted: true}
}

func fellBack(original *series.Series, reason FallbackReason, err error) *Outcome {
	return &Outcome{Series: original, Reason: reason, Err: err}
}
