// Package exelocate resolves external executables used by the harness.
//
// Preference order: candidate names under the configured bin dir (including
// the common "test" subfolder), then PATH. Windows candidates carry the .exe
// suffix.
package exelocate

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/ports"
)

// ViewerNames is the discovery order for the viewer binary: current name
// first, then the legacy spelling, then the standalone perf-test binary.
var ViewerNames = []string{"SeqEyes", "seqeyes", "SeqEye", "PerfZoomTest"}

type Finder struct {
	binDir string
	names  []string
	goos   string
}

type Option func(*Finder)

// WithBinDir points discovery at a directory of built executables.
func WithBinDir(dir string) Option {
	return func(f *Finder) { f.binDir = dir }
}

// WithNames overrides the candidate base names (e.g. the interaction test binary).
func WithNames(names ...string) Option {
	return func(f *Finder) { f.names = names }
}

// withGOOS is used by tests to exercise the Windows suffix logic.
func withGOOS(goos string) Option {
	return func(f *Finder) { f.goos = goos }
}

func New(opts ...Option) *Finder {
	f := &Finder{
		names: ViewerNames,
		goos:  runtime.GOOS,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.ExeLocator = (*Finder)(nil)

// Locate returns the first existing candidate. Candidates under the bin dir
// win over PATH so a freshly built binary is preferred over an installed one.
func (f *Finder) Locate() (string, error) {
	for _, c := range f.candidates() {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
	}

	for _, name := range f.names {
		if p, err := exec.LookPath(f.exeName(name)); err == nil {
			return p, nil
		}
	}

	return "", &domain.OpError{
		Op:   "exelocate.locate",
		Kind: domain.KindNotFound,
		Path: f.binDir,
		Err:  errors.New("no viewer executable found (bin dir candidates and PATH exhausted)"),
	}
}

func (f *Finder) candidates() []string {
	if f.binDir == "" {
		return nil
	}

	var out []string
	for _, name := range f.names {
		exe := f.exeName(name)
		out = append(out,
			filepath.Join(f.binDir, exe),
			filepath.Join(f.binDir, "test", exe),
		)
	}
	return out
}

func (f *Finder) exeName(base string) string {
	if f.goos == "windows" {
		return base + ".exe"
	}
	return base
}
