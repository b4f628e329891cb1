package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
	uccompare "github.com/seqeyes/seqcheck/internal/usecase/compare"
)

type RunVisualSuite struct {
	suites ports.SuiteLoader
	runner ports.SnapshotRunner
	store  ports.ReportStore

	root string
	cfg  domain.Config

	format domain.SnapshotFormat
}

type VisualOption func(*RunVisualSuite)

// WithFormat overrides the workspace's default snapshot format.
func WithFormat(f domain.SnapshotFormat) VisualOption {
	return func(uc *RunVisualSuite) {
		if f != "" {
			uc.format = f
		}
	}
}

func NewRunVisualSuite(sl ports.SuiteLoader, sr ports.SnapshotRunner, rs ports.ReportStore, root string, cfg domain.Config, opts ...VisualOption) *RunVisualSuite {
	uc := &RunVisualSuite{
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

// Execute captures snapshots for every target in the suite and compares them
// against the stored baselines. A failing or crashing target never stops the
// batch; its result carries the error instead.
func (uc *RunVisualSuite) Execute(ctx context.Context, suitePath string) (domain.RunArtifact, error) {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	run := domain.RunArtifact{
		Kind:      domain.RunVisual,
		SuiteName: suite.Name,
		SuitePath: suitePath,
		StartedAt: time.Now(),
		Results:   make([]domain.TargetResult, 0, len(suite.Targets)),
	}

	snapsDir := filepath.Join(uc.root, uc.cfg.Paths.SnapshotsDir)
	baseDir := filepath.Join(uc.root, uc.cfg.Paths.BaselinesDir)

	for _, target := range suite.Targets {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		run.Results = append(run.Results, uc.runTarget(ctx, target, snapsDir, baseDir))
	}

	run.FinishedAt = time.Now()

	if id, err := uc.store.SaveRun(run); err == nil {
		run.ID = id
	}
	return run, nil
}

func (uc *RunVisualSuite) runTarget(ctx context.Context, target domain.TargetSpec, snapsDir, baseDir string) domain.TargetResult {
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

	tmp, err := os.MkdirTemp("", "seqcheck-capture-*")
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

	// A nonzero viewer exit is not fatal on its own; the checks below decide.
	base := targetBase(target.Name)
	seqName, trajName := domain.SnapshotNames(base, uc.format)

	for _, name := range []string{seqName, trajName} {
		src := filepath.Join(tmp, name)
		dst := filepath.Join(snapsDir, name)
		if err := copyFile(src, dst); err == nil {
			result.Artifacts = append(result.Artifacts, dst)
		}
	}

	result.Checks = uc.evaluate(base, snapsDir, baseDir)
	return result
}

func (uc *RunVisualSuite) evaluate(base, snapsDir, baseDir string) []domain.CheckResult {
	seqName, trajName := domain.SnapshotNames(base, uc.format)

	if uc.format == domain.FormatPNG {
		tol := uc.cfg.Compare.PNGPixelTolerance
		maxRatio := uc.cfg.Compare.PNGMaxDiffRatio
		return []domain.CheckResult{
			uccompare.PNGPair("seq png",
				filepath.Join(baseDir, seqName),
				filepath.Join(snapsDir, seqName),
				filepath.Join(snapsDir, base+"_seq_diff.png"),
				tol, maxRatio),
			uccompare.PNGPair("traj png",
				filepath.Join(baseDir, trajName),
				filepath.Join(snapsDir, trajName),
				filepath.Join(snapsDir, base+"_traj_diff.png"),
				tol, maxRatio),
		}
	}

	threshold := uc.cfg.Compare.SVGLineThreshold
	return []domain.CheckResult{
		uccompare.SVGPair("seq svg",
			filepath.Join(baseDir, seqName),
			filepath.Join(snapsDir, seqName),
			threshold),
		uccompare.SVGPair("traj svg",
			filepath.Join(baseDir, trajName),
			filepath.Join(snapsDir, trajName),
			threshold),
	}
}

// targetBase strips the sequence file extension for snapshot naming.
func targetBase(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
