package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved run artifacts",
	}

	c.AddCommand(runsListCmd(), runsQueryCmd())
	return c
}

func runsListCmd() *cobra.Command {
	var workspace string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			runs, err := ws.store.ListRuns()
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("(no runs yet)")
				return nil
			}

			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			for _, p := range runs {
				rel, _ := filepath.Rel(ws.root, p)
				fmt.Printf("- %s\n", rel)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n runs (0 = all)")
	return cmd
}

func runsQueryCmd() *cobra.Command {
	var workspace string
	var path string

	cmd := &cobra.Command{
		Use:   "query <run-id-or-path>",
		Short: "Extract a value from a saved run artifact with a JSONPath expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			artifactPath, err := ws.store.Resolve(args[0])
			if err != nil {
				return err
			}

			b, err := os.ReadFile(artifactPath)
			if err != nil {
				return err
			}

			var doc any
			if err := json.Unmarshal(b, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", artifactPath, err)
			}

			value, err := jsonpath.Get(path, doc)
			if err != nil {
				return fmt.Errorf("jsonpath %q: %w", path, err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(value)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&path, "path", "$", "JSONPath expression, e.g. $.Results[0].Checks")
	return cmd
}
