package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func printRun(w io.Writer, run domain.RunArtifact, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case "pretty", "":
		printPrettyRun(w, run)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyRun(w io.Writer, run domain.RunArtifact) {
	total := run.FinishedAt.Sub(run.StartedAt)
	if run.StartedAt.IsZero() || run.FinishedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Suite:    %s\n", run.SuiteName)
	fmt.Fprintf(w, "Kind:     %s\n", run.Kind)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", total)
	if run.ID != "" {
		fmt.Fprintf(w, "Run ID:   %s\n", run.ID)
	}
	fmt.Fprintln(w)

	for _, r := range run.Results {
		status := r.Status()
		mark := map[domain.CheckStatus]string{
			domain.CheckPass: "PASS",
			domain.CheckFail: "FAIL",
			domain.CheckSkip: "SKIP",
		}[status]

		fmt.Fprintf(w, "- [%s] %s (%dms)\n", mark, r.Name, r.DurationMS)

		if r.Error != nil {
			fmt.Fprintf(w, "  error: %s (%s)\n", r.Error.Message, r.Error.Kind)
		}
		if r.TimedOut {
			fmt.Fprintf(w, "  timed out\n")
		}
		for _, c := range r.Checks {
			sym := "✓"
			switch c.Status {
			case domain.CheckFail:
				sym = "✗"
			case domain.CheckSkip:
				sym = "-"
			}
			if c.Message != "" {
				fmt.Fprintf(w, "    %s %s — %s\n", sym, c.Name, c.Message)
			} else {
				fmt.Fprintf(w, "    %s %s\n", sym, c.Name)
			}
		}
		fmt.Fprintln(w)
	}

	pass, fail, skip := domain.CountByStatus(run.Results)
	fmt.Fprintf(w, "%d passed, %d failed, %d skipped\n", pass, fail, skip)
}

// failRunError turns failed targets into a nonzero process exit.
func failRunError(run domain.RunArtifact) error {
	_, fail, _ := domain.CountByStatus(run.Results)
	if fail > 0 {
		return fmt.Errorf("run failed (%d failed target(s))", fail)
	}
	return nil
}
