// Package x13 seasonally adjusts monthly NSA time series by driving the
// X-13ARIMA-SEATS binary as a subprocess.
//
// The pipeline is: clean and window the input series, write the .dat
// and .spc files the binary expects into a temporary directory, run the
// binary under a timeout, parse the d11 (seasonally adjusted) output,
// and re-align the adjusted values onto the caller's original index.
//
// Every failure mode collapses to the same policy: the outcome carries
// the original series unchanged, a fallback reason, and a logged
// warning. No error from the pipeline reaches the caller as a Go error.
//
// Example:
//
//	cfg := x13.DefaultConfig()
//	outcome := x13.Adjust(ctx, nsa, "cpi_food", cfg)
//	if outcome.Adjusted {
//	    // outcome.Series holds the seasonally adjusted values
//	}
package x13
