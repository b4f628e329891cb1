package viewerproc

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

// Launcher opens the GUI viewer detached, mirroring the seqeyes() wrapper:
// options first, sequence file last, no waiting for exit.
type Launcher struct {
	exe       string
	extraPath string
}

func NewLauncher(exe string, opts ...Option) *Launcher {
	// Reuse Runner options for the shared extraPath knob.
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return &Launcher{exe: exe, extraPath: r.extraPath}
}

var _ ports.ViewerLauncher = (*Launcher)(nil)

func (l *Launcher) Launch(spec domain.LaunchSpec) error {
	args := append([]string{}, spec.Options...)

	if spec.SeqPath != "" {
		info, err := os.Stat(spec.SeqPath)
		if err != nil || info.IsDir() {
			return &domain.OpError{
				Op:   "viewerproc.launch",
				Kind: domain.KindNotFound,
				Path: spec.SeqPath,
				Err:  fmt.Errorf("seq file not found"),
			}
		}
		args = append(args, spec.SeqPath)
	}

	cmd := exec.Command(l.exe, args...)
	cmd.Env = qtEnvironment(l.extraPath)

	if err := cmd.Start(); err != nil {
		return &domain.OpError{
			Op:   "viewerproc.launch",
			Kind: domain.KindExecution,
			Path: l.exe,
			Err:  err,
		}
	}

	// The GUI outlives the harness.
	return cmd.Process.Release()
}
