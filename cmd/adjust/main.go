// Command adjust seasonally adjusts series files in a directory. Each
// input file holds Date,Value records, as CSV or as an Excel workbook;
// the adjusted series is written next to it in the same format with an
// _sa suffix. Files that cannot be adjusted are written with their
// original values, mirroring the library's fallback policy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"x13adjust/internal/config"
	"x13adjust/internal/infrastructure"
	"x13adjust/internal/series"
	"x13adjust/internal/x13"
)

func main() {
	inDir := flag.String("in", ".", "input directory containing series CSV or XLSX files")
	outDir := flag.String("out", "", "output directory (defaults to the input directory)")
	workers := flag.Int("workers", 4, "number of series adjusted concurrently")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()
	logger = infrastructure.WithComponent(logger, "batch")

	if *outDir == "" {
		*outDir = *inDir
	}

	inputs, err := findInputs(*inDir)
	if err != nil {
		logger.Error("Failed to list input files", "error", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		logger.Error("No series files found", "dir", *inDir)
		os.Exit(1)
	}

	logger.Info("Starting batch adjustment",
		"files", len(inputs),
		"workers", *workers,
		"binary", cfg.Engine.BinaryPath)

	adjustedCount, err := adjustAll(context.Background(), inputs, *outDir, cfg.X13(), *workers, logger)
	if err != nil {
		logger.Error("Batch adjustment failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Batch adjustment completed",
		"files", len(inputs),
		"adjusted", adjustedCount,
		"fell_back", len(inputs)-adjustedCount)
}

// adjustAll runs the adjustment pipeline over every input file with
// bounded concurrency and returns how many series were adjusted rather
// than passed through.
func adjustAll(ctx context.Context, inputs []string, outDir string, cfg x13.Config, workers int, logger *slog.Logger) (int, error) {
	results := make([]bool, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range inputs {
		g.Go(func() error {
			s, err := loadSeries(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}

			outcome := x13.Adjust(ctx, s, s.Name, cfg)
			results[i] = outcome.Adjusted

			out := outputPath(outDir, path)
			if err := saveSeries(outcome.Series, out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
			logger.Info("Series processed",
				"series", s.Name,
				"adjusted", outcome.Adjusted,
				"output", out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	adjusted := 0
	for _, ok := range results {
		if ok {
			adjusted++
		}
	}
	return adjusted, nil
}

// findInputs lists the series files in dir, skipping outputs of
// earlier runs.
func findInputs(dir string) ([]string, error) {
	var inputs []string
	for _, pattern := range []string{"*.csv", "*.xlsx"} {
		files, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
			if !strings.HasSuffix(name, "_sa") {
				inputs = append(inputs, f)
			}
		}
	}
	return inputs, nil
}

func loadSeries(path string) (*series.Series, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return series.LoadXLSX(path)
	}
	return series.LoadCSV(path, nil)
}

func saveSeries(s *series.Series, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return series.SaveXLSX(s, path)
	}
	return series.SaveCSV(s, path, nil)
}

// outputPath maps an input file to its _sa output in outDir, keeping
// the input's format.
func outputPath(outDir, inPath string) string {
	base := filepath.Base(inPath)
	ext := filepath.Ext(base)
	return filepath.Join(outDir, strings.TrimSuffix(base, ext)+"_sa"+ext)
}
