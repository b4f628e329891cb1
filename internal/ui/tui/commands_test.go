package tui

import (
	"strings"
	"testing"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func TestJoinBatchSummaries(t *testing.T) {
	parts := []string{
		batchHeading(domain.RunVisual) + "\nSuite: smoke\n\n1 passed, 1 failed, 0 skipped",
		batchHeading(domain.RunPerf) + "\nZoom timing:\n\n  - gre.seq: 12.50 ms (1 run(s))",
	}

	out := joinBatchSummaries(parts, 1)
	for _, want := range []string{"── Visual ──", "── Perf ──", "1 target(s) failed across all batches"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}

	clean := joinBatchSummaries(parts, 0)
	if !strings.Contains(clean, "All batches passed") {
		t.Fatalf("expected clean summary, got:\n%s", clean)
	}
}

func TestBatchHeading(t *testing.T) {
	cases := map[domain.RunKind]string{
		domain.RunVisual:    "── Visual ──",
		domain.RunPerf:      "── Perf ──",
		domain.RunInteract:  "── Interact ──",
		domain.RunBaselines: "── Baselines ──",
	}
	for kind, want := range cases {
		if got := batchHeading(kind); got != want {
			t.Fatalf("batchHeading(%s) = %q, want %q", kind, got, want)
		}
	}
}

func TestMenuHasRunAllEntry(t *testing.T) {
	m := newModel(Deps{})

	found := false
	for _, it := range m.menu.Items() {
		mi, ok := it.(menuItem)
		if !ok {
			continue
		}
		if strings.EqualFold(mi.title, "Run all") {
			found = true
			if mi.kind != "" {
				t.Fatalf("run-all entry must dispatch the combined runner, not a single kind (got %q)", mi.kind)
			}
		}
	}
	if !found {
		t.Fatalf("expected a Run all menu entry")
	}
}
