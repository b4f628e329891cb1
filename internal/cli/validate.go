package cli

import (
	"fmt"

	"github.com/seqeyes/seqcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func validateCmd() *cobra.Command {
	var workspace string
	var suite string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a suite and its sequence files (no viewer launch)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			suitePath, err := resolveSuitePath(ws, suite)
			if err != nil {
				return err
			}

			uc := usecase.NewValidateSuite(ws.suites, ws.root, ws.cfg)
			if err := uc.Execute(cmd.Context(), suitePath); err != nil {
				return err
			}

			fmt.Println("OK")
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&suite, "suite", "s", "", "Suite name or path (optional; defaults to workspace default suite)")
	return c
}
