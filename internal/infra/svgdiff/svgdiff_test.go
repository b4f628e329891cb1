package svgdiff

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalize_RoundsFloats(t *testing.T) {
	in := `<path d="M 1.23456 -7.999 L 10 2.005"/>`
	want := `<path d="M 1.23 -8.00 L 10 2.00"/>`
	if got := Normalize(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalize_StripsDateMetadata(t *testing.T) {
	in := "<metadata><dc:date>2026-08-29T10:00:00\nZ</dc:date></metadata>"
	want := "<metadata></metadata>"
	if got := Normalize(in); got != want {
		t.Fatalf("got %q", got)
	}
}

func TestCompare_EqualAfterNormalization(t *testing.T) {
	a := Normalize(`<rect x="1.001" y="2.0"/>`)
	b := Normalize(`<rect x="1.004" y="2.0"/>`)
	res := Compare(a, b)
	if !res.Equal {
		t.Fatalf("expected equal, got %s", res)
	}
}

func TestCompare_CountsDifferingAndExtraLines(t *testing.T) {
	baseline := "a\nb\nc"
	snapshot := "a\nX\nc\nd\ne"

	res := Compare(baseline, snapshot)
	if res.Equal {
		t.Fatalf("expected difference")
	}
	// one changed line plus two extra lines, over max(3,5) lines
	if res.DiffLines != 3 {
		t.Fatalf("diff lines: %d", res.DiffLines)
	}
	if res.TotalLines != 5 {
		t.Fatalf("total lines: %d", res.TotalLines)
	}
	if res.DiffRatio != 3.0/5.0 {
		t.Fatalf("ratio: %v", res.DiffRatio)
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.svg")
	snap := filepath.Join(dir, "snap.svg")

	if err := os.WriteFile(base, []byte("<svg>\n<rect x=\"1.001\"/>\n</svg>\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(snap, []byte("<svg>\n<rect x=\"1.002\"/>\n</svg>\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := CompareFiles(base, snap)
	if err != nil {
		t.Fatalf("CompareFiles: %v", err)
	}
	if !res.Equal {
		t.Fatalf("expected equal within rounding, got %s", res)
	}

	if _, err := CompareFiles(filepath.Join(dir, "missing.svg"), snap); err == nil {
		t.Fatalf("expected error for missing baseline")
	}
}
