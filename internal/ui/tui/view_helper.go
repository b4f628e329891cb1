package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func summarizeRun(run domain.RunArtifact) string {
	var b strings.Builder

	b.WriteString("Suite: ")
	b.WriteString(run.SuiteName)
	b.WriteString("\n\n")

	for _, r := range run.Results {
		status := "PASS"
		switch r.Status() {
		case domain.CheckFail:
			status = "FAIL"
		case domain.CheckSkip:
			status = "SKIP"
		}

		b.WriteString("  - [")
		b.WriteString(status)
		b.WriteString("] ")
		b.WriteString(r.Name)
		b.WriteString("\n")

		if r.Error != nil {
			b.WriteString("      ")
			b.WriteString(clampString(r.Error.Message, 70))
			b.WriteString("\n")
		}
		for _, c := range r.Checks {
			if c.Status == domain.CheckFail {
				b.WriteString("      ")
				b.WriteString(c.Name)
				b.WriteString(": ")
				b.WriteString(clampString(c.Message, 60))
				b.WriteString("\n")
			}
		}
	}

	pass, fail, skip := domain.CountByStatus(run.Results)
	b.WriteString(fmt.Sprintf("\n%d passed, %d failed, %d skipped", pass, fail, skip))

	if run.ID != "" {
		b.WriteString("\nSaved as ")
		b.WriteString(run.ID)
	}
	return b.String()
}

func summarizePerf(report domain.PerfReport) string {
	var b strings.Builder

	b.WriteString("Zoom timing:\n\n")
	for _, e := range report.Entries {
		name := filepath.Base(e.File)
		switch {
		case e.ZoomMS != nil:
			b.WriteString(fmt.Sprintf("  - %s: %.2f ms (%d run(s))\n", name, *e.ZoomMS, len(e.Runs)))
		case e.ExitReason != "":
			b.WriteString(fmt.Sprintf("  - %s: no measurement, exit %s (%s)\n", name, e.ExitHex, e.ExitReason))
		default:
			b.WriteString(fmt.Sprintf("  - %s: no measurement, exit %d\n", name, e.Exit))
		}
	}
	return b.String()
}
