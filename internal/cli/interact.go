package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/seqeyes/seqcheck/internal/infra/exelocate"
	"github.com/seqeyes/seqcheck/internal/infra/viewerproc"
	"github.com/seqeyes/seqcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func interactCmd() *cobra.Command {
	var workspace string
	var suite string
	var format string

	c := &cobra.Command{
		Use:   "interact",
		Short: "Run the zoom/pan interaction test binary over a suite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			suitePath, err := resolveSuitePath(ws, suite)
			if err != nil {
				return err
			}

			// The interaction test ships as its own binary next to the viewer.
			finder := exelocate.New(
				exelocate.WithBinDir(filepath.Join(ws.root, ws.cfg.Paths.BinDir)),
				exelocate.WithNames(ws.cfg.Interact.Exe),
			)
			exe, err := finder.Locate()
			if err != nil {
				return err
			}

			runner := viewerproc.NewInteractRunner(exe,
				viewerproc.WithTimeout(time.Duration(ws.cfg.Capture.TimeoutSec)*time.Second),
				viewerproc.WithExtraPath(ws.cfg.Capture.ExtraPath),
			)

			uc := usecase.NewRunInteraction(ws.suites, runner, ws.store, ws.root, ws.cfg)
			run, err := uc.Execute(cmd.Context(), suitePath)
			if err != nil {
				return err
			}

			if err := printRun(os.Stdout, run, format); err != nil {
				return err
			}
			return failRunError(run)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&suite, "suite", "s", "", "Suite name or path (optional; defaults to workspace default suite)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
