package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/seqeyes/seqcheck/internal/domain"
)

const svgContent = `<svg><path d="M 1.00 2.00"/></svg>`

func TestRunVisualSuite_PassAgainstMatchingBaselines(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceSeq(t, root, "gre.seq")
	writeBaseline(t, root, "gre_seq.svg", svgContent)
	writeBaseline(t, root, "gre_traj.svg", svgContent)

	loader := &fakeSuiteLoader{suite: domain.Suite{
		Name:    "visual_targets",
		Targets: []domain.TargetSpec{{Name: "gre.seq", TimeRangeMS: "0~1000"}},
	}}
	runner := &fakeSnapshotRunner{content: map[string]string{
		"gre_seq.svg":  svgContent,
		"gre_traj.svg": svgContent,
	}}
	store := &fakeReportStore{}

	uc := NewRunVisualSuite(loader, runner, store, root, domain.DefaultConfig())
	run, err := uc.Execute(context.Background(), "suites/visual_targets.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(run.Results) != 1 {
		t.Fatalf("results: %d", len(run.Results))
	}
	if got := run.Results[0].Status(); got != domain.CheckPass {
		t.Fatalf("expected pass, got %s: %+v", got, run.Results[0].Checks)
	}
	if run.ID != "run-1" || len(store.saved) != 1 {
		t.Fatalf("expected run persisted, id=%q saved=%d", run.ID, len(store.saved))
	}

	if len(runner.requests) != 1 {
		t.Fatalf("capture requests: %d", len(runner.requests))
	}
	req := runner.requests[0]
	if !req.WholeSequence || req.TimeRangeMS != "0~1000" {
		t.Fatalf("capture request: %+v", req)
	}
}

func TestRunVisualSuite_FailOnDivergingSnapshot(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceSeq(t, root, "gre.seq")
	writeBaseline(t, root, "gre_seq.svg", svgContent)
	writeBaseline(t, root, "gre_traj.svg", svgContent)

	loader := &fakeSuiteLoader{suite: domain.Suite{
		Name:    "visual_targets",
		Targets: []domain.TargetSpec{{Name: "gre.seq"}},
	}}
	runner := &fakeSnapshotRunner{content: map[string]string{
		"gre_seq.svg":  `<svg><path d="M 9.00 9.00"/></svg>`,
		"gre_traj.svg": svgContent,
	}}

	uc := NewRunVisualSuite(loader, runner, &fakeReportStore{}, root, domain.DefaultConfig())
	run, err := uc.Execute(context.Background(), "s.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := run.Results[0].Status(); got != domain.CheckFail {
		t.Fatalf("expected fail, got %s", got)
	}
}

func TestRunVisualSuite_SkipWhenAllBaselinesMissing(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceSeq(t, root, "gre.seq")

	loader := &fakeSuiteLoader{suite: domain.Suite{
		Targets: []domain.TargetSpec{{Name: "gre.seq"}},
	}}
	runner := &fakeSnapshotRunner{content: map[string]string{
		"gre_seq.svg":  svgContent,
		"gre_traj.svg": svgContent,
	}}

	uc := NewRunVisualSuite(loader, runner, &fakeReportStore{}, root, domain.DefaultConfig())
	run, err := uc.Execute(context.Background(), "s.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := run.Results[0].Status(); got != domain.CheckSkip {
		t.Fatalf("expected skip, got %s: %+v", got, run.Results[0].Checks)
	}
}

func TestRunVisualSuite_RunnerErrorDoesNotStopBatch(t *testing.T) {
	root := t.TempDir()
	writeWorkspaceSeq(t, root, "a.seq")
	writeWorkspaceSeq(t, root, "b.seq")

	loader := &fakeSuiteLoader{suite: domain.Suite{
		Targets: []domain.TargetSpec{{Name: "a.seq"}, {Name: "b.seq"}},
	}}
	runner := &fakeSnapshotRunner{err: errors.New("boom")}

	uc := NewRunVisualSuite(loader, runner, &fakeReportStore{}, root, domain.DefaultConfig())
	run, err := uc.Execute(context.Background(), "s.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(run.Results) != 2 {
		t.Fatalf("expected both targets processed, got %d", len(run.Results))
	}
	for _, r := range run.Results {
		if r.Error == nil {
			t.Fatalf("expected runner error recorded for %s", r.Name)
		}
	}
}

func TestRunVisualSuite_MissingSequenceFileFails(t *testing.T) {
	root := t.TempDir()

	loader := &fakeSuiteLoader{suite: domain.Suite{
		Targets: []domain.TargetSpec{{Name: "ghost.seq"}},
	}}
	runner := &fakeSnapshotRunner{}

	uc := NewRunVisualSuite(loader, runner, &fakeReportStore{}, root, domain.DefaultConfig())
	run, err := uc.Execute(context.Background(), "s.yaml")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	r := run.Results[0]
	if r.Error == nil || r.Error.Kind != domain.RunErrorLaunch {
		t.Fatalf("expected launch error, got %+v", r.Error)
	}
	if len(runner.requests) != 0 {
		t.Fatalf("viewer must not run for a missing sequence file")
	}
}

func TestRunVisualSuite_CanceledContext(t *testing.T) {
	root := t.TempDir()
	loader := &fakeSuiteLoader{suite: domain.Suite{
		Targets: []domain.TargetSpec{{Name: "a.seq"}},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := NewRunVisualSuite(loader, &fakeSnapshotRunner{}, &fakeReportStore{}, root, domain.DefaultConfig())
	if _, err := uc.Execute(ctx, "s.yaml"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
