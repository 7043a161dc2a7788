package x13

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// errTimeout marks a run that was killed by the configured timeout.
var errTimeout = errors.New("x13 run timed out")

// run invokes the binary on the input files rooted at base and returns
// the path of the d11 output file. The subprocess is killed when the
// configured timeout expires.
func run(ctx context.Context, base string, cfg Config, logger *slog.Logger) (string, error) {
	if _, err := os.Stat(cfg.BinaryPath); err != nil {
		return "", fmt.Errorf("binary not found at %s: %w", cfg.BinaryPath, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, cfg.BinaryPath, base)
	cmd.Dir = filepath.Dir(base)

	output, err := cmd.CombinedOutput()
	if runCtx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w after %s", errTimeout, cfg.Timeout)
	}
	if err != nil {
		logger.DebugContext(ctx, "x13 run failed",
			slog.String("binary", cfg.BinaryPath),
			slog.String("error", err.Error()),
			slog.String("output", truncate(string(output), 500)))
		return "", fmt.Errorf("x13 binary failed: %w", err)
	}

	d11Path := base + ".d11"
	if _, err := os.Stat(d11Path); err != nil {
		return "", fmt.Errorf("no d11 output produced: %s", truncate(string(output), 300))
	}
	return d11Path, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
