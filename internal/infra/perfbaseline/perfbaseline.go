// Package perfbaseline reads and writes the flat perf JSON records CI
// consumes: aggregated results, golden baselines, and the
// github-action-benchmark export format.
package perfbaseline

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/seqeyes/seqcheck/internal/domain"
)

// Load reads a perf report (results or baseline) from disk.
func Load(path string) (domain.PerfReport, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.PerfReport{}, &domain.OpError{
			Op:   "perfbaseline.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var report domain.PerfReport
	if err := json.Unmarshal(b, &report); err != nil {
		return domain.PerfReport{}, &domain.OpError{
			Op:   "perfbaseline.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return report, nil
}

// Save writes a perf report, creating parent directories as needed.
func Save(path string, report domain.PerfReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "perfbaseline.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &domain.OpError{
			Op:   "perfbaseline.save",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return os.WriteFile(path, b, 0o644)
}

type benchmarkEntry struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// SaveBenchmark exports entries with a measured value in the JSON shape
// github-action-benchmark ingests.
func SaveBenchmark(path string, report domain.PerfReport) error {
	out := make([]benchmarkEntry, 0, len(report.Entries))
	for _, e := range report.Entries {
		if e.ZoomMS == nil {
			continue
		}
		out = append(out, benchmarkEntry{
			Name:  "Zoom Performance: " + filepath.Base(e.File),
			Unit:  "ms",
			Value: *e.ZoomMS,
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "perfbaseline.benchmark",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
