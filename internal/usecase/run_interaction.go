package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

type RunInteraction struct {
	suites ports.SuiteLoader
	runner ports.InteractionRunner
	store  ports.ReportStore

	root string
	cfg  domain.Config
}

func NewRunInteraction(sl ports.SuiteLoader, ir ports.InteractionRunner, rs ports.ReportStore, root string, cfg domain.Config) *RunInteraction {
	return &RunInteraction{
		suites: sl,
		runner: ir,
		store:  rs,
		root:   root,
		cfg:    cfg,
	}
}

// Execute runs the interaction test binary once per target. A nonzero exit
// fails that target only; the batch always completes.
func (uc *RunInteraction) Execute(ctx context.Context, suitePath string) (domain.RunArtifact, error) {
	suite, err := uc.suites.LoadSuite(suitePath)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	run := domain.RunArtifact{
		Kind:      domain.RunInteract,
		SuiteName: suite.Name,
		SuitePath: suitePath,
		StartedAt: time.Now(),
		Results:   make([]domain.TargetResult, 0, len(suite.Targets)),
	}

	for _, target := range suite.Targets {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		result := domain.TargetResult{Name: target.Name}

		seqPath := filepath.Join(uc.root, uc.cfg.Paths.SeqDir, target.Name)
		result.SeqPath = seqPath
		if _, err := os.Stat(seqPath); err != nil {
			result.Error = &domain.RunError{
				Kind:    domain.RunErrorLaunch,
				Message: "sequence file not found: " + seqPath,
			}
			run.Results = append(run.Results, result)
			continue
		}

		started := time.Now()
		code, err := uc.runner.RunInteraction(ctx, seqPath)
		result.DurationMS = time.Since(started).Milliseconds()
		result.ExitCode = code

		switch {
		case err != nil:
			result.Error = domain.NewRunError(err)
		case code != 0:
			result.Checks = []domain.CheckResult{{
				Name:    "interaction",
				Status:  domain.CheckFail,
				Message: fmt.Sprintf("exit code %d", code),
			}}
		default:
			result.Checks = []domain.CheckResult{{
				Name:   "interaction",
				Status: domain.CheckPass,
			}}
		}

		run.Results = append(run.Results, result)
	}

	run.FinishedAt = time.Now()

	if id, err := uc.store.SaveRun(run); err == nil {
		run.ID = id
	}
	return run, nil
}
