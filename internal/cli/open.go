package cli

import (
	"fmt"
	"path/filepath"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/infra/viewerproc"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var workspace string

	c := &cobra.Command{
		Use:   "open [seqfile] [-- viewer flags]",
		Short: "Launch the SeqEyes viewer, optionally on a sequence file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			exe, err := ws.locateViewer()
			if err != nil {
				return err
			}

			spec := domain.LaunchSpec{}

			// Everything after -- goes to the viewer untouched.
			if at := cmd.ArgsLenAtDash(); at >= 0 {
				spec.Options = args[at:]
				args = args[:at]
			}

			switch len(args) {
			case 0:
			case 1:
				p := args[0]
				if !filepath.IsAbs(p) {
					if fileExists(p) {
						p, _ = filepath.Abs(p)
					} else {
						p = filepath.Join(ws.root, ws.cfg.Paths.SeqDir, p)
					}
				}
				spec.SeqPath = p
			default:
				return fmt.Errorf("at most one sequence file, got %d", len(args))
			}

			launcher := viewerproc.NewLauncher(exe,
				viewerproc.WithExtraPath(ws.cfg.Capture.ExtraPath),
			)
			if err := launcher.Launch(spec); err != nil {
				return err
			}

			fmt.Printf("launched %s\n", exe)
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return c
}
