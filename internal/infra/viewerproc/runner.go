// Package viewerproc adapts the external SeqEyes viewer binary to the
// harness ports. Every invocation is synchronous, bounded by a context
// timeout, and observed only through its exit code, stdout/stderr, and the
// snapshot files it writes.
package viewerproc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

const defaultTimeout = 120 * time.Second

type Runner struct {
	exe       string
	timeout   time.Duration
	extraPath string
}

type Option func(*Runner)

// WithTimeout bounds each viewer invocation. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithExtraPath prepends a directory to the child's PATH.
func WithExtraPath(p string) Option {
	return func(r *Runner) { r.extraPath = p }
}

func New(exe string, opts ...Option) *Runner {
	r := &Runner{
		exe:     exe,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.SnapshotRunner = (*Runner)(nil)

// Capture runs the viewer headless so it renders snapshots into req.OutDir.
// A nonzero exit is not an error here: the viewer sometimes crashes on
// teardown after the snapshots were already written, and the caller decides
// by checking the files.
func (r *Runner) Capture(ctx context.Context, req domain.CaptureRequest) (domain.CaptureResult, error) {
	args := make([]string, 0, 6)
	if req.WholeSequence {
		args = append(args, "--Whole-sequence")
	}
	if strings.TrimSpace(req.TimeRangeMS) != "" {
		args = append(args, "--time-range", req.TimeRangeMS)
	}
	args = append(args, "--capture-snapshots", req.OutDir, req.SeqPath)

	return r.run(ctx, args)
}

func (r *Runner) run(ctx context.Context, args []string) (domain.CaptureResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.exe, args...)
	cmd.Env = qtEnvironment(r.extraPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := domain.CaptureResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}

	if err == nil {
		return res, nil
	}

	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		return res, fmt.Errorf("viewer timed out after %s: %w", r.timeout, context.DeadlineExceeded)
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		res.ExitCode = ee.ExitCode()
		return res, nil
	}

	// Could not start at all (missing binary, permission).
	return res, &domain.OpError{
		Op:   "viewerproc.run",
		Kind: domain.KindExecution,
		Path: r.exe,
		Err:  err,
	}
}
