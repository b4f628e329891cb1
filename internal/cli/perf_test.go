package cli

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func ms(v float64) *float64 { return &v }

func TestFailedPerfTargets(t *testing.T) {
	report := domain.PerfReport{Entries: []domain.PerfEntry{
		{File: "ok.seq", ZoomMS: ms(12.5), Exit: 0},
		{File: "crash.seq", ZoomMS: nil, Exit: 1},
		{File: "silent.seq", ZoomMS: nil, Exit: 0},
	}}

	if got := failedPerfTargets(report); got != 2 {
		t.Fatalf("failed targets: %d, want 2", got)
	}

	ok := domain.PerfReport{Entries: []domain.PerfEntry{
		{File: "ok.seq", ZoomMS: ms(3), Exit: 0},
	}}
	if got := failedPerfTargets(ok); got != 0 {
		t.Fatalf("failed targets: %d, want 0", got)
	}
}

// perfWorkspace lays out a minimal workspace whose viewer is a shell script.
func perfWorkspace(t *testing.T, viewerScript string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake viewer scripts are POSIX shell")
	}
	root := t.TempDir()

	write := func(rel, content string, mode os.FileMode) {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(p, []byte(content), mode); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	write("seqcheck.yaml", "seqcheck:\n  defaults:\n    suite: smoke\n", 0o644)
	write("suites/smoke.yaml",
		"name: smoke\ntargets:\n  - seqname: gre.seq\n    seq_diagram_time_range_ms: 0~500\n",
		0o644)
	write("seq_files/gre.seq", "[VERSION]\n", 0o644)
	write("build/Release/SeqEyes", "#!/bin/sh\n"+viewerScript, 0o755)

	return root
}

func TestPerfCmd_FailsWhenTargetCrashes(t *testing.T) {
	root := perfWorkspace(t, "exit 1\n")

	c := perfCmd()
	c.SetArgs([]string{"-w", root, "--no-baseline"})
	if err := c.Execute(); err == nil {
		t.Fatalf("expected error when the only target crashed with no ZOOM_MS")
	}
}

func TestPerfCmd_FailsWhenMarkerMissing(t *testing.T) {
	root := perfWorkspace(t, "echo nothing measurable\n")

	c := perfCmd()
	c.SetArgs([]string{"-w", root, "--no-baseline"})
	if err := c.Execute(); err == nil {
		t.Fatalf("expected error when the viewer exits clean but emits no ZOOM_MS")
	}
}

func TestPerfCmd_SucceedsWhenMeasured(t *testing.T) {
	root := perfWorkspace(t, `echo "ZOOM_MS: 12.5"`+"\n")

	c := perfCmd()
	c.SetArgs([]string{"-w", root, "--no-baseline"})
	if err := c.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "runs", "perf_results.json")); err != nil {
		t.Fatalf("expected persisted results: %v", err)
	}
}
