package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/infra/exelocate"
	"github.com/seqeyes/seqcheck/internal/infra/reportstore"
	"github.com/seqeyes/seqcheck/internal/infra/viewerproc"
	"github.com/seqeyes/seqcheck/internal/infra/workspacefinder"
	"github.com/seqeyes/seqcheck/internal/infra/yamlsuite"
	"github.com/seqeyes/seqcheck/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, true)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadSuites(root string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := workspacefinder.LoadConfig(root)
		if err != nil {
			return suitesLoadedMsg{root: root, err: err}
		}

		loader := yamlsuite.NewLoader(
			yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir),
		)

		refs, err := loader.ListSuites(root)
		return suitesLoadedMsg{root: root, refs: refs, err: err}
	}
}

func listenRunner(ch <-chan runnerDoneMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return runnerDoneMsg{err: errors.New("runner channel closed")}
		}
		return msg
	}
}

// startRunAsync executes one batch kind against the workspace's default suite
// in a goroutine and reports completion through a channel the program listens
// on.
func startRunAsync(kind domain.RunKind, workspaceRoot string, log *slog.Logger, debug bool) (chan runnerDoneMsg, tea.Cmd) {
	ch := make(chan runnerDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("run.start", "kind", string(kind), "workspace", workspaceRoot, "debug", debug)

		summary, failed, err := executeBatch(kind, workspaceRoot, log)
		if err != nil {
			log.Error("run.failed", "kind", string(kind), "err", err)
		} else {
			log.Info("run.ok", "kind", string(kind), "failed", failed)
		}

		ch <- runnerDoneMsg{kind: kind, summary: summary, failed: failed, err: err}
	}()

	return ch, listenRunner(ch)
}

// allBatchKinds is the order the combined run executes.
var allBatchKinds = []domain.RunKind{domain.RunVisual, domain.RunPerf, domain.RunInteract}

// startRunAllAsync executes the visual, perf and interaction batches in
// sequence against the workspace default suite and aggregates their summaries.
func startRunAllAsync(workspaceRoot string, log *slog.Logger, debug bool) (chan runnerDoneMsg, tea.Cmd) {
	ch := make(chan runnerDoneMsg, 1)

	if log == nil {
		log = slog.Default()
	}

	go func() {
		defer close(ch)

		log.Info("run.start", "kind", "all", "workspace", workspaceRoot, "debug", debug)

		summary, failed, err := executeAllBatches(workspaceRoot, log)
		if err != nil {
			log.Error("run.failed", "kind", "all", "err", err)
		} else {
			log.Info("run.ok", "kind", "all", "failed", failed)
		}

		ch <- runnerDoneMsg{summary: summary, failed: failed, err: err}
	}()

	return ch, listenRunner(ch)
}

func executeAllBatches(root string, log *slog.Logger) (string, int, error) {
	parts := make([]string, 0, len(allBatchKinds))
	failed := 0

	for _, kind := range allBatchKinds {
		summary, n, err := executeBatch(kind, root, log)
		if err != nil {
			return "", failed, err
		}
		parts = append(parts, batchHeading(kind)+"\n"+summary)
		failed += n
	}

	return joinBatchSummaries(parts, failed), failed, nil
}

func batchHeading(kind domain.RunKind) string {
	switch kind {
	case domain.RunVisual:
		return "── Visual ──"
	case domain.RunPerf:
		return "── Perf ──"
	case domain.RunInteract:
		return "── Interact ──"
	case domain.RunBaselines:
		return "── Baselines ──"
	default:
		return "── " + string(kind) + " ──"
	}
}

func joinBatchSummaries(parts []string, failed int) string {
	s := strings.Join(parts, "\n\n")
	if failed > 0 {
		return s + fmt.Sprintf("\n\n%d target(s) failed across all batches", failed)
	}
	return s + "\n\nAll batches passed"
}

func executeBatch(kind domain.RunKind, root string, log *slog.Logger) (string, int, error) {
	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return "", 0, err
	}

	suites := yamlsuite.NewLoader(yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir))
	store := reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true))

	suitePath := filepath.Join(root, cfg.Paths.SuitesDir, cfg.Defaults.Suite+".yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	timeout := time.Duration(cfg.Capture.TimeoutSec) * time.Second

	locate := func(names ...string) (string, error) {
		opts := []exelocate.Option{
			exelocate.WithBinDir(filepath.Join(root, cfg.Paths.BinDir)),
		}
		if len(names) > 0 {
			opts = append(opts, exelocate.WithNames(names...))
		}
		return exelocate.New(opts...).Locate()
	}

	switch kind {
	case domain.RunVisual:
		exe, err := locate()
		if err != nil {
			return "", 0, err
		}
		runner := viewerproc.New(exe,
			viewerproc.WithTimeout(timeout),
			viewerproc.WithExtraPath(cfg.Capture.ExtraPath),
		)
		uc := usecase.NewRunVisualSuite(suites, runner, store, root, cfg)
		run, err := uc.Execute(ctx, suitePath)
		if err != nil {
			return "", 0, err
		}
		return summarizeRun(run), failCount(run), nil

	case domain.RunBaselines:
		exe, err := locate()
		if err != nil {
			return "", 0, err
		}
		runner := viewerproc.New(exe,
			viewerproc.WithTimeout(timeout),
			viewerproc.WithExtraPath(cfg.Capture.ExtraPath),
		)
		uc := usecase.NewGenerateBaselines(suites, runner, store, root, cfg)
		run, err := uc.Execute(ctx, suitePath)
		if err != nil {
			return "", 0, err
		}
		return summarizeRun(run), failCount(run), nil

	case domain.RunInteract:
		exe, err := locate(cfg.Interact.Exe)
		if err != nil {
			return "", 0, err
		}
		runner := viewerproc.NewInteractRunner(exe,
			viewerproc.WithTimeout(timeout),
			viewerproc.WithExtraPath(cfg.Capture.ExtraPath),
		)
		uc := usecase.NewRunInteraction(suites, runner, store, root, cfg)
		run, err := uc.Execute(ctx, suitePath)
		if err != nil {
			return "", 0, err
		}
		return summarizeRun(run), failCount(run), nil

	case domain.RunPerf:
		exe, err := locate()
		if err != nil {
			return "", 0, err
		}
		runner := viewerproc.New(exe,
			viewerproc.WithTimeout(timeout),
			viewerproc.WithExtraPath(cfg.Capture.ExtraPath),
		)
		uc := usecase.NewRunPerfZoom(suites, runner, root, cfg, exe)
		report, err := uc.Execute(ctx, suitePath)
		if err != nil {
			return "", 0, err
		}

		log.Info("perf.measured", "entries", len(report.Entries))
		return summarizePerf(report), perfFailCount(report), nil

	default:
		return "", 0, fmt.Errorf("unknown run kind %q", kind)
	}
}

func failCount(run domain.RunArtifact) int {
	_, fail, _ := domain.CountByStatus(run.Results)
	return fail
}

func perfFailCount(report domain.PerfReport) int {
	n := 0
	for _, e := range report.Entries {
		if e.ZoomMS == nil {
			n++
		}
	}
	return n
}
