package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"x13adjust/internal/series"
	"x13adjust/internal/x13"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "cpi_sa.csv"), outputPath("out", filepath.Join("in", "cpi.csv")))
	assert.Equal(t, filepath.Join(".", "x_sa.csv"), outputPath(".", "x.csv"))
	assert.Equal(t, filepath.Join("out", "cpi_sa.xlsx"), outputPath("out", filepath.Join("in", "cpi.xlsx")))
}

func TestFindInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cpi.csv", "cpi_sa.csv", "gdp.xlsx", "gdp_sa.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	inputs, err := findInputs(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "cpi.csv"),
		filepath.Join(dir, "gdp.xlsx"),
	}, inputs)
}

func TestAdjustAllFallsBackPerFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	for _, name := range []string{"alpha", "beta"} {
		s := series.New(name, 24)
		start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 24; i++ {
			s.Append(series.MonthEnd(start.AddDate(0, i, 0)), 100+float64(i))
		}
		require.NoError(t, series.SaveCSV(s, filepath.Join(inDir, name+".csv"), nil))
	}

	cfg := x13.DefaultConfig()
	cfg.MinObservations = 12
	cfg.BinaryPath = filepath.Join(t.TempDir(), "absent")

	inputs, err := filepath.Glob(filepath.Join(inDir, "*.csv"))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	logger := testLogger()
	adjusted, err := adjustAll(context.Background(), inputs, outDir, cfg, 2, logger)
	require.NoError(t, err)
	assert.Zero(t, adjusted)

	// fallback still writes the passthrough output
	for _, name := range []string{"alpha_sa.csv", "beta_sa.csv"} {
		out, err := series.LoadCSV(filepath.Join(outDir, name), nil)
		require.NoError(t, err)
		assert.Equal(t, 24, out.Len())
		assert.Equal(t, 100.0, out.Values[0])
	}
}

func TestAdjustAllWithFakeBinary(t *testing.T) {
	inDir := t.TempDir()

	s := series.New("gamma", 24)
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	var d11 string
	for i := 0; i < 24; i++ {
		d := series.MonthEnd(start.AddDate(0, i, 0))
		s.Append(d, 100+float64(i))
		d11 += fmt.Sprintf("%04d%02d  7.000000\n", d.Year(), int(d.Month()))
	}
	require.NoError(t, series.SaveCSV(s, filepath.Join(inDir, "gamma.csv"), nil))

	binDir := t.TempDir()
	fixture := filepath.Join(binDir, "fixture.d11")
	require.NoError(t, os.WriteFile(fixture, []byte(d11), 0644))
	binary := filepath.Join(binDir, "x13as")
	script := "#!/bin/sh\ncp \"" + fixture + "\" \"$1.d11\"\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))

	cfg := x13.DefaultConfig()
	cfg.MinObservations = 12
	cfg.BinaryPath = binary

	adjusted, err := adjustAll(context.Background(),
		[]string{filepath.Join(inDir, "gamma.csv")}, inDir, cfg, 1, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted)

	out, err := series.LoadCSV(filepath.Join(inDir, "gamma_sa.csv"), nil)
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.Values[0])
}

func TestAdjustAllWorkbookRoundTrip(t *testing.T) {
	inDir := t.TempDir()

	s := series.New("delta", 24)
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	var d11 string
	for i := 0; i < 24; i++ {
		d := series.MonthEnd(start.AddDate(0, i, 0))
		s.Append(d, 100+float64(i))
		d11 += fmt.Sprintf("%04d%02d  3.500000\n", d.Year(), int(d.Month()))
	}
	require.NoError(t, series.SaveXLSX(s, filepath.Join(inDir, "delta.xlsx")))

	binDir := t.TempDir()
	fixture := filepath.Join(binDir, "fixture.d11")
	require.NoError(t, os.WriteFile(fixture, []byte(d11), 0644))
	binary := filepath.Join(binDir, "x13as")
	script := "#!/bin/sh\ncp \"" + fixture + "\" \"$1.d11\"\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))

	cfg := x13.DefaultConfig()
	cfg.MinObservations = 12
	cfg.BinaryPath = binary

	inputs, err := findInputs(inDir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(inDir, "delta.xlsx")}, inputs)

	adjusted, err := adjustAll(context.Background(), inputs, inDir, cfg, 1, testLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted)

	out, err := series.LoadXLSX(filepath.Join(inDir, "delta_sa.xlsx"))
	require.NoError(t, err)
	assert.Equal(t, 24, out.Len())
	assert.Equal(t, 3.5, out.Values[0])
}
