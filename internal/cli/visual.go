package cli

import (
	"os"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func visualCmd() *cobra.Command {
	var workspace string
	var suite string
	var snapFormat string
	var format string

	c := &cobra.Command{
		Use:   "visual",
		Short: "Capture snapshots for a suite and compare them against baselines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			suitePath, err := resolveSuitePath(ws, suite)
			if err != nil {
				return err
			}

			exe, err := ws.locateViewer()
			if err != nil {
				return err
			}

			uc := usecase.NewRunVisualSuite(ws.suites, ws.snapshotRunner(exe), ws.store, ws.root, ws.cfg,
				usecase.WithFormat(domain.SnapshotFormat(snapFormat)))

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
	c.Flags().StringVar(&snapFormat, "snapshot-format", "", "Snapshot format: svg|png (optional; defaults to workspace config)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
