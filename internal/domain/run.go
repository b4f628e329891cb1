package domain

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// RunKind distinguishes the kind of batch a run artifact records.
type RunKind string

const (
	RunVisual    RunKind = "visual"
	RunBaselines RunKind = "baselines"
	RunPerf      RunKind = "perf"
	RunInteract  RunKind = "interact"
)

// RunErrorKind is a high-level classification of runtime errors.
type RunErrorKind string

const (
	RunErrorUnknown RunErrorKind = "unknown"
	RunErrorTimeout RunErrorKind = "timeout"
	RunErrorLaunch  RunErrorKind = "launch"
	RunErrorCrash   RunErrorKind = "crash"
)

// RunError represents a structured error produced by a runner.
type RunError struct {
	Kind    RunErrorKind
	Message string
}

// NewRunError classifies an error coming out of a subprocess invocation.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}

	kind := RunErrorUnknown
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = RunErrorTimeout
	case isLaunchError(err):
		kind = RunErrorLaunch
	default:
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			kind = RunErrorCrash
		}
	}

	return &RunError{
		Kind:    kind,
		Message: err.Error(),
	}
}

func isLaunchError(err error) bool {
	var xe *exec.Error
	if errors.As(err, &xe) {
		return true
	}
	return errors.Is(err, exec.ErrNotFound)
}

// CheckStatus is the outcome of a single baseline comparison.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckFail CheckStatus = "fail"
	CheckSkip CheckStatus = "skip"
)

// CheckResult is the output of a single comparison check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
}

// TargetResult records the outcome of processing one sequence target.
type TargetResult struct {
	Name    string
	SeqPath string

	ExitCode   int
	DurationMS int64
	TimedOut   bool

	Checks    []CheckResult
	Artifacts []string

	Error *RunError
}

// Status collapses a target result into a single status. A target fails when
// the runner errored or any check failed; it is skipped when every check was
// skipped (e.g. all baselines missing); otherwise it passed.
func (r TargetResult) Status() CheckStatus {
	if r.Error != nil {
		return CheckFail
	}

	anyPass := false
	for _, c := range r.Checks {
		switch c.Status {
		case CheckFail:
			return CheckFail
		case CheckPass:
			anyPass = true
		}
	}

	if !anyPass && len(r.Checks) > 0 {
		return CheckSkip
	}
	return CheckPass
}

// RunArtifact represents a persisted batch run for CI consumption.
type RunArtifact struct {
	ID string

	Kind      RunKind
	SuiteName string
	SuitePath string

	StartedAt  time.Time
	FinishedAt time.Time

	Results []TargetResult
}

// CountByStatus tallies target outcomes for summaries and exit codes.
func CountByStatus(results []TargetResult) (pass, fail, skip int) {
	for _, r := range results {
		switch r.Status() {
		case CheckFail:
			fail++
		case CheckSkip:
			skip++
		default:
			pass++
		}
	}
	return pass, fail, skip
}
