package usecase

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

type GenerateBaselines struct {
	suites ports.SuiteLoader
	runner ports.SnapshotRunner
	store  ports.ReportStore

	root string
	cfg  domain.Config

	format domain.SnapshotFormat
}

type BaselinesOption func(*GenerateBaselines)

func WithBaselineFormat(f domain.SnapshotFormat) BaselinesOption {
	return func(uc *GenerateBaselines) {
		if f != "" {
			uc.format = f
		}
	}
}

func NewGenerateBaselines(sl ports.SuiteLoader, sr ports.SnapshotRunner, rs ports.ReportStore, root string, cfg domain.Config, opts ...BaselinesOption) *GenerateBaselines {
	uc := &GenerateBaselines{
		suites: sl,
		runner: sr,
		store:  rs,
		root:   root,
		cfg:    cfg,
		format: cfg.Defaults.Format,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute regenerates the baseline artifacts for every target in the suite.
// SVG mode needs one capture per target. PNG mode captures the timing diagram
// over the target's time range and the trajectory over the whole sequence, in
// two separate viewer runs.
func (uc *GenerateBaselines) Execute(ctx context.Context, suitePath string) (domain.RunArtifact, error) {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	run := domain.RunArtifact{
		Kind:      domain.RunBaselines,
		SuiteName: suite.Name,
		SuitePath: suitePath,
		StartedAt: time.Now(),
		Results:   make([]domain.TargetResult, 0, len(suite.Targets)),
	}

	baseDir := filepath.Join(uc.root, uc.cfg.Paths.BaselinesDir)

	for _, target := range suite.Targets {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		run.Results = append(run.Results, uc.generateTarget(ctx, target, baseDir))
	}

	run.FinishedAt = time.Now()

	if id, err := uc.store.SaveRun(run); err == nil {
		run.ID = id
	}
	return run, nil
}

func (uc *GenerateBaselines) generateTarget(ctx context.Context, target domain.TargetSpec, baseDir string) domain.TargetResult {
	result := domain.TargetResult{Name: target.Name}

	seqPath := filepath.Join(uc.root, uc.cfg.Paths.SeqDir, target.Name)
	result.SeqPath = seqPath
	if _, err := os.Stat(seqPath); err != nil {
		result.Error = &domain.RunError{
			Kind:    domain.RunErrorLaunch,
			Message: "sequence file not found: " + seqPath,
		}
		return result
	}

	base := targetBase(target.Name)
	seqName, trajName := domain.SnapshotNames(base, uc.format)

	if uc.format == domain.FormatPNG {
		return uc.generatePNG(ctx, result, seqPath, target.TimeRangeMS, baseDir, base, seqName, trajName)
	}

	tmp, err := os.MkdirTemp("", "seqcheck-baseline-*")
	if err != nil {
		result.Error = domain.NewRunError(err)
		return result
	}
	defer os.RemoveAll(tmp)

	res, err := uc.runner.Capture(ctx, domain.CaptureRequest{
		SeqPath:       seqPath,
		OutDir:        tmp,
		TimeRangeMS:   target.TimeRangeMS,
		WholeSequence: true,
	})
	result.ExitCode = res.ExitCode
	result.DurationMS = res.DurationMS
	result.TimedOut = res.TimedOut
	if err != nil {
		result.Error = domain.NewRunError(err)
		return result
	}

	result.Checks = append(result.Checks, uc.install(tmp, baseDir, seqName))
	result.Checks = append(result.Checks, uc.install(tmp, baseDir, trajName))
	for _, c := range result.Checks {
		if c.Status == domain.CheckPass {
			result.Artifacts = append(result.Artifacts, filepath.Join(baseDir, c.Name))
		}
	}
	return result
}

func (uc *GenerateBaselines) generatePNG(ctx context.Context, result domain.TargetResult, seqPath, timeRange, baseDir, base, seqName, trajName string) domain.TargetResult {
	// Ranged capture produces the timing-diagram baseline.
	seqTmp, err := os.MkdirTemp("", "seqcheck-baseline-*")
	if err != nil {
		result.Error = domain.NewRunError(err)
		return result
	}
	defer os.RemoveAll(seqTmp)

	res, err := uc.runner.Capture(ctx, domain.CaptureRequest{
		SeqPath:       seqPath,
		OutDir:        seqTmp,
		TimeRangeMS:   timeRange,
		WholeSequence: true,
	})
	result.ExitCode = res.ExitCode
	result.DurationMS = res.DurationMS
	result.TimedOut = res.TimedOut
	if err != nil {
		result.Error = domain.NewRunError(err)
		return result
	}
	result.Checks = append(result.Checks, uc.install(seqTmp, baseDir, seqName))

	// Whole-sequence capture produces the trajectory baseline.
	trajTmp, err := os.MkdirTemp("", "seqcheck-baseline-*")
	if err != nil {
		result.Error = domain.NewRunError(err)
		return result
	}
	defer os.RemoveAll(trajTmp)

	res, err = uc.runner.Capture(ctx, domain.CaptureRequest{
		SeqPath:       seqPath,
		OutDir:        trajTmp,
		WholeSequence: true,
	})
	result.DurationMS += res.DurationMS
	if res.TimedOut {
		result.TimedOut = true
	}
	if err != nil {
		result.Error = domain.NewRunError(err)
		return result
	}
	result.Checks = append(result.Checks, uc.install(trajTmp, baseDir, trajName))

	for _, c := range result.Checks {
		if c.Status == domain.CheckPass {
			result.Artifacts = append(result.Artifacts, filepath.Join(baseDir, c.Name))
		}
	}
	return result
}

// install moves one captured file into the baselines directory. The check name
// doubles as the artifact file name.
func (uc *GenerateBaselines) install(tmp, baseDir, name string) domain.CheckResult {
	src := filepath.Join(tmp, name)
	if _, err := os.Stat(src); err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: "viewer produced no " + name,
		}
	}
	if err := copyFile(src, filepath.Join(baseDir, name)); err != nil {
		return domain.CheckResult{
			Name:    name,
			Status:  domain.CheckFail,
			Message: err.Error(),
		}
	}
	return domain.CheckResult{Name: name, Status: domain.CheckPass, Message: "baseline updated"}
}
