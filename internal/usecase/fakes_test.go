package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/seqeyes/seqcheck/internal/domain"
)

type fakeSuiteLoader struct {
	suite domain.Suite
	err   error
}

func (f *fakeSuiteLoader) LoadSuite(string) (domain.Suite, error) {
	return f.suite, f.err
}

func (f *fakeSuiteLoader) ListSuites(string) ([]domain.SuiteRef, error) {
	return nil, nil
}

// fakeSnapshotRunner writes the requested snapshot files into OutDir, keyed by
// the sequence's base name. Missing entries simulate a viewer that produced
// nothing.
type fakeSnapshotRunner struct {
	content  map[string]string // snapshot file name -> content
	exitCode int
	err      error

	requests []domain.CaptureRequest
}

func (f *fakeSnapshotRunner) Capture(_ context.Context, req domain.CaptureRequest) (domain.CaptureResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return domain.CaptureResult{}, f.err
	}

	for name, content := range f.content {
		if err := os.WriteFile(filepath.Join(req.OutDir, name), []byte(content), 0o644); err != nil {
			return domain.CaptureResult{}, err
		}
	}
	return domain.CaptureResult{ExitCode: f.exitCode, DurationMS: 5}, nil
}

type fakeReportStore struct {
	saved []domain.RunArtifact
	err   error
}

func (f *fakeReportStore) SaveRun(run domain.RunArtifact) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, run)
	return "run-1", nil
}

type fakePerfRunner struct {
	samples []domain.PerfSample
	err     error

	calls int
}

func (f *fakePerfRunner) MeasureZoom(context.Context, string) (domain.PerfSample, error) {
	i := f.calls
	f.calls++
	if f.err != nil {
		return domain.PerfSample{}, f.err
	}
	if i >= len(f.samples) {
		i = len(f.samples) - 1
	}
	return f.samples[i], nil
}

type fakeInteractionRunner struct {
	exitCodes map[string]int
	err       error
}

func (f *fakeInteractionRunner) RunInteraction(_ context.Context, seqPath string) (int, error) {
	if f.err != nil {
		return -1, f.err
	}
	return f.exitCodes[filepath.Base(seqPath)], nil
}

func writeWorkspaceSeq(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, "seq_files")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("seq"), 0o644); err != nil {
		t.Fatalf("write seq: %v", err)
	}
	return p
}

func writeBaseline(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, "baselines")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write baseline: %v", err)
	}
	return p
}
