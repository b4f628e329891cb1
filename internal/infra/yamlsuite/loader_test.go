package yamlsuite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadSuite_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visual_targets.yaml")
	writeFile(t, path, `
name: visual
targets:
  - seqname: writeGradientEcho_label
    seq_diagram_time_range_ms: 0~10
  - seqname: epi
    seq_diagram_time_range_ms: 5~25
`)

	l := NewLoader()
	suite, err := l.LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}

	if suite.Name != "visual" {
		t.Fatalf("name: %s", suite.Name)
	}
	if len(suite.Targets) != 2 {
		t.Fatalf("targets: %d", len(suite.Targets))
	}
	if suite.Targets[0].Name != "writeGradientEcho_label" || suite.Targets[0].TimeRangeMS != "0~10" {
		t.Fatalf("target[0]: %+v", suite.Targets[0])
	}
}

func TestLoadSuite_NameDefaultsToFilename(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nightly.yaml")
	writeFile(t, path, `
targets:
  - seqname: epi
    seq_diagram_time_range_ms: 0~10
`)

	suite, err := NewLoader().LoadSuite(path)
	if err != nil {
		t.Fatalf("LoadSuite: %v", err)
	}
	if suite.Name != "nightly" {
		t.Fatalf("name: %s", suite.Name)
	}
}

func TestLoadSuite_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"no targets", "name: x\n"},
		{"missing seqname", "targets:\n  - seq_diagram_time_range_ms: 0~10\n"},
		{"missing range", "targets:\n  - seqname: epi\n"},
		{"bad range shape", "targets:\n  - seqname: epi\n    seq_diagram_time_range_ms: ten\n"},
		{"half range", "targets:\n  - seqname: epi\n    seq_diagram_time_range_ms: 5~\n"},
		{"not yaml", ":\n\t-"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "s.yaml")
			writeFile(t, path, tc.content)

			_, err := NewLoader().LoadSuite(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadSuite_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadSuite(filepath.Join(t.TempDir(), "nope.yaml"))
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestListSuites(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "suites", "b.yaml"), "name: beta\ntargets:\n  - seqname: x\n    seq_diagram_time_range_ms: 0~1\n")
	writeFile(t, filepath.Join(root, "suites", "a.yml"), "targets:\n  - seqname: y\n    seq_diagram_time_range_ms: 0~1\n")
	writeFile(t, filepath.Join(root, "suites", "ignored.txt"), "nope")

	refs, err := NewLoader().ListSuites(root)
	if err != nil {
		t.Fatalf("ListSuites: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("refs: %d", len(refs))
	}
	// Sorted by name: "a" (filename fallback) before "beta".
	if refs[0].Name != "a" || refs[1].Name != "beta" {
		t.Fatalf("order: %s, %s", refs[0].Name, refs[1].Name)
	}
}
