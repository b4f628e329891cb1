package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/seqeyes/seqcheck/internal/domain"
	"github.com/seqeyes/seqcheck/internal/infra/perfbaseline"
	"github.com/seqeyes/seqcheck/internal/usecase"
	"github.com/spf13/cobra"
)

func perfCmd() *cobra.Command {
	var workspace string
	var suite string
	var out string
	var benchmark string
	var updateBaseline bool
	var skipBaseline bool
	var format string

	c := &cobra.Command{
		Use:   "perf",
		Short: "Measure zoom timing for a suite and check it against the perf baseline",
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

			uc := usecase.NewRunPerfZoom(ws.suites, ws.snapshotRunner(exe), ws.root, ws.cfg, exe)
			report, err := uc.Execute(cmd.Context(), suitePath)
			if err != nil {
				return err
			}

			resultsPath := out
			if resultsPath == "" {
				resultsPath = filepath.Join(ws.root, ws.cfg.Paths.RunsDir, "perf_results.json")
			}
			if err := perfbaseline.Save(resultsPath, report); err != nil {
				return err
			}

			if benchmark != "" {
				if err := perfbaseline.SaveBenchmark(benchmark, report); err != nil {
					return err
				}
			}

			if err := printPerfReport(os.Stdout, report, format); err != nil {
				return err
			}

			// A target that crashed or never emitted ZOOM_MS fails the
			// command, independent of the baseline check.
			if n := failedPerfTargets(report); n > 0 {
				return fmt.Errorf("%d perf target(s) failed (crash or no ZOOM_MS)", n)
			}

			baselinePath := filepath.Join(ws.root, ws.cfg.Perf.BaselineFile)

			if updateBaseline {
				if err := perfbaseline.Save(baselinePath, report); err != nil {
					return err
				}
				fmt.Printf("baseline updated: %s\n", baselinePath)
				return nil
			}

			if skipBaseline {
				return nil
			}

			baseline, err := perfbaseline.Load(baselinePath)
			if err != nil {
				if domain.IsKind(err, domain.KindNotFound) {
					fmt.Printf("no baseline at %s (tip: run with --update-baseline)\n", baselinePath)
					return nil
				}
				return err
			}

			regressions := domain.ComparePerf(baseline, report, ws.cfg.Perf.ThresholdMS)
			if len(regressions) == 0 {
				fmt.Println("no perf regressions")
				return nil
			}

			for _, r := range regressions {
				fmt.Printf("REGRESSION %s\n", r)
			}
			return fmt.Errorf("%d perf regression(s)", len(regressions))
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&suite, "suite", "s", "", "Suite name or path (optional; defaults to workspace default suite)")
	c.Flags().StringVar(&out, "out", "", "Results JSON path (default: <runs dir>/perf_results.json)")
	c.Flags().StringVar(&benchmark, "benchmark", "", "Also export github-action-benchmark JSON to this path")
	c.Flags().BoolVar(&updateBaseline, "update-baseline", false, "Write the measured report as the new baseline")
	c.Flags().BoolVar(&skipBaseline, "no-baseline", false, "Skip the baseline regression check")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func failedPerfTargets(report domain.PerfReport) int {
	n := 0
	for _, e := range report.Entries {
		if e.ZoomMS == nil || e.Exit != 0 {
			n++
		}
	}
	return n
}

func printPerfReport(w io.Writer, report domain.PerfReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty", "":
		for _, e := range report.Entries {
			name := filepath.Base(e.File)
			switch {
			case e.ZoomMS != nil:
				fmt.Fprintf(w, "- %s: %.2f ms (%d run(s))\n", name, *e.ZoomMS, len(e.Runs))
			case e.ExitReason != "":
				fmt.Fprintf(w, "- %s: no measurement, exit %d %s (%s)\n", name, e.Exit, e.ExitHex, e.ExitReason)
			default:
				fmt.Fprintf(w, "- %s: no measurement, exit %d\n", name, e.Exit)
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
