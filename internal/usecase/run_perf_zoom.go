package usecase

import (
	"context"
	"path/filepath"
	"runtime"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

type RunPerfZoom struct {
	suites ports.SuiteLoader
	perf   ports.PerfRunner

	root string
	cfg  domain.Config
	exe  string

	goos string
}

type PerfOption func(*RunPerfZoom)

// withGOOS pins the platform for NTSTATUS decoding in tests.
func withGOOS(goos string) PerfOption {
	return func(uc *RunPerfZoom) { uc.goos = goos }
}

func NewRunPerfZoom(sl ports.SuiteLoader, pr ports.PerfRunner, root string, cfg domain.Config, exe string, opts ...PerfOption) *RunPerfZoom {
	uc := &RunPerfZoom{
		suites: sl,
		perf:   pr,
		root:   root,
		cfg:    cfg,
		exe:    exe,
		goos:   runtime.GOOS,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute measures zoom timing for every target in the suite. Each target is
// measured cfg.Perf.Repeat times (plus a discarded warmup run when enabled)
// and reported as the median. A crashing target discards any runs measured
// before the crash and keeps a nil zoom_ms; the batch continues.
func (uc *RunPerfZoom) Execute(ctx context.Context, suitePath string) (domain.PerfReport, error) {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return domain.PerfReport{}, err
	}

	report := domain.PerfReport{
		Timestamp: time.Now().UTC(),
		Exe:       uc.exe,
		Entries:   make([]domain.PerfEntry, 0, len(suite.Targets)),
	}

	repeat := uc.cfg.Perf.Repeat
	if repeat < 1 {
		repeat = 1
	}

	for _, target := range suite.Targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		seqPath := filepath.Join(uc.root, uc.cfg.Paths.SeqDir, target.Name)
		report.Entries = append(report.Entries, uc.measureTarget(ctx, seqPath, repeat))
	}

	return report, nil
}

func (uc *RunPerfZoom) measureTarget(ctx context.Context, seqPath string, repeat int) domain.PerfEntry {
	entry := domain.PerfEntry{File: seqPath, Runs: []float64{}}

	if uc.cfg.Perf.Warmup {
		_, _ = uc.perf.MeasureZoom(ctx, seqPath)
	}

	for i := 0; i < repeat; i++ {
		sample, err := uc.perf.MeasureZoom(ctx, seqPath)
		entry.Exit = sample.ExitCode
		if err != nil || sample.ExitCode != 0 {
			// A crash, launch failure or timeout invalidates the whole
			// series; earlier measurements are discarded.
			entry.Runs = entry.Runs[:0]
			break
		}
		if sample.ZoomMS != nil {
			entry.Runs = append(entry.Runs, *sample.ZoomMS)
		}
	}

	if len(entry.Runs) > 0 {
		m := domain.Median(entry.Runs)
		entry.ZoomMS = &m
	}

	if uc.goos == "windows" && entry.Exit != 0 {
		if hex, reason, ok := domain.DecodeNTStatus(entry.Exit); ok {
			entry.ExitHex = hex
			entry.ExitReason = reason
		}
	}

	return entry
}
