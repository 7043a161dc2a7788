package x13

import (
	"fmt"
	"os"
	"time"
)

// Transform selects the transform function passed to the binary.
type Transform string

const (
	TransformAuto Transform = "auto"
	TransformLog  Transform = "log"
	TransformNone Transform = "none"
)

// BinaryPathEnv overrides the default binary location when set.
const BinaryPathEnv = "X13AS_PATH"

// DefaultBinaryPath is used when BinaryPathEnv is unset.
const DefaultBinaryPath = "/usr/local/bin/x13as"

// DefaultInterventions is the regression block appended to the spec
// file unless interventions are disabled. It models the COVID shock as
// a temporary ramp plus a level shift.
const DefaultInterventions = "regression{\n" +
	"  variables = (Rp2020.03-2020.05 LS2020.06)\n" +
	"}\n"

// Config holds the tunable parameters for one adjustment run. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// BinaryPath is the location of the x13as executable.
	BinaryPath string

	// SpanYears restricts adjustment to the trailing N years of data.
	SpanYears int

	// MinObservations is the smallest series the binary is asked to
	// adjust; shorter series fall back to the input.
	MinObservations int

	// Interventions is a regression spec block passed through to the
	// binary verbatim. Empty disables intervention terms.
	Interventions string

	// Timeout bounds the subprocess call.
	Timeout time.Duration

	// Transform selects the binary's transform function.
	Transform Transform
}

// DefaultConfig returns the standard production configuration. The
// binary path honors the X13AS_PATH environment variable.
func DefaultConfig() Config {
	path := os.Getenv(BinaryPathEnv)
	if path == "" {
		path = DefaultBinaryPath
	}
	return Config{
		BinaryPath:      path,
		SpanYears:       8,
		MinObservations: 36,
		Interventions:   DefaultInterventions,
		Timeout:         60 * time.Second,
		Transform:       TransformAuto,
	}
}

// Validate checks that every parameter is usable.
func (c Config) Validate() error {
	if c.BinaryPath == "" {
		return fmt.Errorf("binary path must not be empty")
	}
	if c.SpanYears <= 0 {
		return fmt.Errorf("span years must be positive, got %d", c.SpanYears)
	}
	if c.MinObservations <= 0 {
		return fmt.Errorf("min observations must be positive, got %d", c.MinObservations)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Transform {
	case TransformAuto, TransformLog, TransformNone:
	default:
		return fmt.Errorf("unknown transform %q", c.Transform)
	}
	return nil
}
