package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/infra/exelocate"
	"github.com/seqeyes/seqcheck/internal/infra/reportstore"
	"github.com/seqeyes/seqcheck/internal/infra/viewerproc"
	"github.com/seqeyes/seqcheck/internal/infra/workspacefinder"
	"github.com/seqeyes/seqcheck/internal/infra/yamlsuite"
	"github.com/seqeyes/seqcheck/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	suites ports.SuiteLoader
	store  *reportstore.JSONStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	suiteLoader := yamlsuite.NewLoader(
		yamlsuite.WithSuitesDir(cfg.Paths.SuitesDir),
	)

	store := reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true))

	return &workspaceCtx{
		root:   root,
		cfg:    cfg,
		suites: suiteLoader,
		store:  store,
	}, nil
}

// locateViewer resolves the SeqEyes executable per the workspace's bin dir,
// then PATH.
func (ws *workspaceCtx) locateViewer() (string, error) {
	finder := exelocate.New(
		exelocate.WithBinDir(filepath.Join(ws.root, ws.cfg.Paths.BinDir)),
	)
	return finder.Locate()
}

// snapshotRunner builds the capture runner with the workspace's timeout and
// extra PATH entries.
func (ws *workspaceCtx) snapshotRunner(exe string) *viewerproc.Runner {
	return viewerproc.New(exe,
		viewerproc.WithTimeout(time.Duration(ws.cfg.Capture.TimeoutSec)*time.Second),
		viewerproc.WithExtraPath(ws.cfg.Capture.ExtraPath),
	)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	locator := workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `seqcheck init`): %w", wd, err)
	}
	return root, nil
}

func resolveSuitePath(ws *workspaceCtx, arg string) (string, error) {
	in := strings.TrimSpace(arg)
	if in == "" {
		in = ws.cfg.Defaults.Suite
	}
	if in == "" {
		return "", fmt.Errorf("suite is required (use --suite or -s)")
	}

	// If arg looks like a path (contains separators), resolve relative to workspace root.
	if looksLikePath(in) {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		return filepath.Clean(p), nil
	}

	suitesDir := filepath.Join(ws.root, ws.cfg.Paths.SuitesDir)

	// If user provided "visual_targets.yaml", treat it as file under suites dir.
	if hasYAMLExt(in) {
		p := filepath.Join(suitesDir, in)
		if fileExists(p) {
			return p, nil
		}
	}

	// If user provided "visual_targets", try .yaml / .yml in suites dir.
	p1 := filepath.Join(suitesDir, in+".yaml")
	if fileExists(p1) {
		return p1, nil
	}
	p2 := filepath.Join(suitesDir, in+".yml")
	if fileExists(p2) {
		return p2, nil
	}

	// As a last resort: match by suite "name" field.
	refs, err := ws.suites.ListSuites(ws.root)
	if err == nil {
		for _, r := range refs {
			if strings.EqualFold(r.Name, in) {
				return r.Path, nil
			}
		}
	}

	return "", fmt.Errorf("suite %q not found in %q", in, suitesDir)
}

func looksLikePath(s string) bool {
	return strings.Contains(s, "/") || strings.Contains(s, string(filepath.Separator))
}

func hasYAMLExt(s string) bool {
	ext := strings.ToLower(filepath.Ext(s))
	return ext == ".yaml" || ext == ".yml"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
