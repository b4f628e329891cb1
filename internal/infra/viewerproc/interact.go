package viewerproc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/seqeyes/seqcheck/internal/ports"
)

// InteractRunner executes the zoom/pan behavior test binary once per
// sequence file. Output goes straight to the harness's stdio, as the
// original runner did.
type InteractRunner struct {
	exe       string
	timeout   time.Duration
	extraPath string
}

func NewInteractRunner(exe string, opts ...Option) *InteractRunner {
	r := &Runner{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return &InteractRunner{exe: exe, timeout: r.timeout, extraPath: r.extraPath}
}

var _ ports.InteractionRunner = (*InteractRunner)(nil)

func (r *InteractRunner) RunInteraction(ctx context.Context, seqPath string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.exe, "--file", seqPath)
	cmd.Env = qtEnvironment(r.extraPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctx.Err() == context.DeadlineExceeded {
		return -1, context.DeadlineExceeded
	}

	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode(), nil
	}
	return -1, execError(r.exe, err)
}
