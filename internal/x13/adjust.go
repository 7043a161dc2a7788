package x13

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"x13adjust/internal/series"
)

const tracerName = "x13adjust"

// Adjust seasonally adjusts a monthly NSA series. It returns a tagged
// Outcome whose Series is the adjusted series on success and the
// caller's input unchanged on any failure. seriesID is used only for
// logging and tracing.
func Adjust(ctx context.Context, input *series.Series, seriesID string, cfg Config) (outcome *Outcome) {
	// trace_id lands on these records via the global handler
	logger := slog.Default().With(
		slog.String("component", "x13"),
		slog.String("series_id", seriesID))

	if input == nil {
		out := fellBack(series.New(seriesID, 0), FallbackInternal, errors.New("nil input series"))
		logger.WarnContext(ctx, "seasonal adjustment failed, using unadjusted series",
			slog.String("reason", string(out.Reason)),
			slog.Any("error", out.Err))
		recordOutcome(out)
		return out
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "x13.Adjust")
	span.SetAttributes(
		attribute.String("series.id", seriesID),
		attribute.Int("series.len", input.Len()))
	defer span.End()

	// Catch-all: nothing from the pipeline may escape to the caller.
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic in adjustment pipeline: %v", r)
			outcome = fellBack(input, FallbackInternal, err)
		}
		if !outcome.Adjusted {
			span.SetStatus(codes.Error, string(outcome.Reason))
			if outcome.Reason != FallbackTooFewObs {
				logger.WarnContext(ctx, "seasonal adjustment failed, using unadjusted series",
					slog.String("reason", string(outcome.Reason)),
					slog.Any("error", outcome.Err))
			} else {
				logger.DebugContext(ctx, "series too short for adjustment, skipping",
					slog.Int("observations", input.Len()))
			}
		}
		recordOutcome(outcome)
	}()

	if err := cfg.Validate(); err != nil {
		return fellBack(input, FallbackInvalidConfig, err)
	}

	windowed, err := preprocess(input, cfg)
	if err != nil {
		return fellBack(input, FallbackTooFewObs, err)
	}
	span.SetAttributes(attribute.Int("series.windowed_len", windowed.Len()))

	parsed, reason, err := runBinary(ctx, windowed, cfg, logger)
	if err != nil {
		return fellBack(input, reason, err)
	}

	result, err := realign(input, windowed, parsed)
	if err != nil {
		return fellBack(input, FallbackRealignment, err)
	}

	logger.InfoContext(ctx, "seasonal adjustment completed",
		slog.Int("input_observations", input.Len()),
		slog.Int("adjusted_observations", parsed.Len()))
	return adjusted(result)
}

// runBinary writes the input files into an invocation-scoped temp
// directory, runs the binary, and parses the d11 output. The temp
// directory is removed on every path.
func runBinary(ctx context.Context, windowed *series.Series, cfg Config, logger *slog.Logger) (*series.Series, FallbackReason, error) {
	dir, err := os.MkdirTemp("", "x13_")
	if err != nil {
		return nil, FallbackRunFailed, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	base, err := writeInputFiles(dir, windowed, cfg)
	if err != nil {
		return nil, FallbackRunFailed, err
	}

	d11Path, err := run(ctx, base, cfg, logger)
	if err != nil {
		switch {
		case errors.Is(err, errTimeout):
			return nil, FallbackTimeout, err
		case errors.Is(err, os.ErrNotExist):
			return nil, FallbackBinaryMissing, err
		default:
			return nil, FallbackRunFailed, err
		}
	}

	parsed, err := parseD11(d11Path)
	if err != nil {
		return nil, FallbackUnparsable, err
	}
	return parsed, FallbackNone, nil
}

// realign maps the parsed output back onto the original index. Output
// is trusted only when every parsed month belongs to the windowed
// input; original dates outside the parsed range keep their original
// values.
func realign(original, windowed, parsed *series.Series) (*series.Series, error) {
	for _, d := range parsed.Dates {
		if _, ok := windowed.At(d); !ok {
			return nil, fmt.Errorf("parsed output month %d not in windowed input", series.MonthKey(d))
		}
	}

	result := original.Clone()
	for i, d := range result.Dates {
		if v, ok := parsed.At(d); ok {
			result.Values[i] = v
		}
	}
	return result, nil
}
