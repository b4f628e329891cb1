package reportstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
}

func TestSaveRun_WritesTimestampedArtifact(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig(), WithNow(fixedNow))

	run := domain.RunArtifact{
		Kind:      domain.RunVisual,
		SuiteName: "Visual Targets",
		StartedAt: fixedNow(),
		Results: []domain.TargetResult{
			{Name: "epi", Checks: []domain.CheckResult{{Name: "seq svg", Status: domain.CheckPass}}},
		},
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if id != "20260829T103000Z_visual-visual-targets" {
		t.Fatalf("id: %s", id)
	}

	path := filepath.Join(root, "runs", id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}

	var got domain.RunArtifact
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != id {
		t.Fatalf("artifact ID: %s", got.ID)
	}
	if len(got.Results) != 1 || got.Results[0].Name != "epi" {
		t.Fatalf("results: %+v", got.Results)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind")
	}
}

func TestSaveRun_FallsBackToSuitePathForSlug(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig(), WithNow(fixedNow))

	id, err := store.SaveRun(domain.RunArtifact{
		Kind:      domain.RunPerf,
		SuitePath: "/ws/suites/nightly.yaml",
	})
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if !strings.HasSuffix(id, "_perf-nightly") {
		t.Fatalf("id: %s", id)
	}
}

func TestSaveRun_Index(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig(), WithNow(fixedNow), WithIndex(true))

	if _, err := store.SaveRun(domain.RunArtifact{Kind: domain.RunVisual, SuiteName: "a"}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if _, err := store.SaveRun(domain.RunArtifact{Kind: domain.RunInteract, SuiteName: "b"}); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(root, "runs", "index.jsonl"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("index lines: %d", len(lines))
	}

	var first struct {
		Kind  string `json:"kind"`
		Suite string `json:"suite"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("index line: %v", err)
	}
	if first.Kind != "visual" || first.Suite != "a" {
		t.Fatalf("index entry: %+v", first)
	}
}

func TestListRuns_NewestFirstAndSkipsIndex(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig(), WithIndex(true))

	old := domain.RunArtifact{Kind: domain.RunVisual, SuiteName: "x", StartedAt: fixedNow()}
	newer := domain.RunArtifact{Kind: domain.RunVisual, SuiteName: "x", StartedAt: fixedNow().Add(time.Hour)}

	if _, err := store.SaveRun(old); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.SaveRun(newer); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs: %d", len(runs))
	}
	if !strings.Contains(filepath.Base(runs[0]), "113000Z") {
		t.Fatalf("expected newest first, got %s", runs[0])
	}
}

func TestListRuns_EmptyWorkspace(t *testing.T) {
	store := NewJSONStore(t.TempDir(), domain.DefaultConfig())
	runs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if runs != nil {
		t.Fatalf("expected nil for missing runs dir")
	}
}

func TestResolve(t *testing.T) {
	root := t.TempDir()
	store := NewJSONStore(root, domain.DefaultConfig(), WithNow(fixedNow))

	id, err := store.SaveRun(domain.RunArtifact{Kind: domain.RunVisual, SuiteName: "x", StartedAt: fixedNow()})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	p, err := store.Resolve(id)
	if err != nil {
		t.Fatalf("Resolve by id: %v", err)
	}
	if filepath.Base(p) != id+".json" {
		t.Fatalf("resolved: %s", p)
	}

	if _, err := store.Resolve("does-not-exist"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}

	// Relative path input resolves against the workspace root.
	p, err = store.Resolve(filepath.Join("runs", id+".json"))
	if err != nil {
		t.Fatalf("Resolve by path: %v", err)
	}
	if _, err := os.Stat(p); err != nil {
		t.Fatalf("resolved path missing: %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Visual Targets":  "visual-targets",
		"  perf_zoom  ":   "perf-zoom",
		"a..b":            "a-b",
		"---":             "",
		"UPPER/lower\\x?": "upper-lower-x",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
