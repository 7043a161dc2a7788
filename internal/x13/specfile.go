package x13

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"x13adjust/internal/series"
)

// writeInputFiles materializes the two files the binary consumes into
// dir: input.dat with one value per line in chronological order, and
// input.spc referencing it. Returns the shared base path (without
// extension) that the binary takes as its argument.
func writeInputFiles(dir string, s *series.Series, cfg Config) (string, error) {
	base := filepath.Join(dir, "input")

	datPath := base + ".dat"
	var dat strings.Builder
	for _, v := range s.Values {
		fmt.Fprintf(&dat, "  %.6f\n", v)
	}
	if err := os.WriteFile(datPath, []byte(dat.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write data file: %w", err)
	}

	spcPath := base + ".spc"
	if err := os.WriteFile(spcPath, []byte(specContent(datPath, s, cfg)), 0644); err != nil {
		return "", fmt.Errorf("failed to write spec file: %w", err)
	}

	return base, nil
}

// specContent builds the x13as spec: series location and start period,
// transform function, automatic model selection, optional intervention
// regressors, and the d11 (seasonally adjusted) output table.
func specContent(datPath string, s *series.Series, cfg Config) string {
	start := s.Dates[0]
	var spc strings.Builder
	fmt.Fprintf(&spc, "series{\n  file = \"%s\"\n  period = 12\n  start = %d.%d\n}\n",
		datPath, start.Year(), int(start.Month()))
	fmt.Fprintf(&spc, "transform{\n  function = %s\n}\n", cfg.Transform)
	spc.WriteString("automdl{}\n")
	if cfg.Interventions != "" {
		spc.WriteString(cfg.Interventions)
	}
	spc.WriteString("x11{\n  save = (d11)\n}\n")
	return spc.String()
}
