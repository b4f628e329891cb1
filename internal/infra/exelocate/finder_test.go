package exelocate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seqeyes/seqcheck/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLocate_PrefersCurrentNameOverLegacy(t *testing.T) {
	bin := t.TempDir()
	touch(t, filepath.Join(bin, "SeqEye"))
	touch(t, filepath.Join(bin, "SeqEyes"))

	f := New(WithBinDir(bin), withGOOS("linux"))
	got, err := f.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != filepath.Join(bin, "SeqEyes") {
		t.Fatalf("expected SeqEyes preferred, got %s", got)
	}
}

func TestLocate_FallsBackToTestSubdir(t *testing.T) {
	bin := t.TempDir()
	touch(t, filepath.Join(bin, "test", "SeqEyes"))

	f := New(WithBinDir(bin), withGOOS("linux"))
	got, err := f.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != filepath.Join(bin, "test", "SeqEyes") {
		t.Fatalf("got %s", got)
	}
}

func TestLocate_WindowsSuffix(t *testing.T) {
	bin := t.TempDir()
	touch(t, filepath.Join(bin, "PerfZoomTest.exe"))

	f := New(WithBinDir(bin), withGOOS("windows"))
	got, err := f.Locate()
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if filepath.Base(got) != "PerfZoomTest.exe" {
		t.Fatalf("got %s", got)
	}
}

func TestLocate_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir()) // keep the real PATH out of the lookup

	f := New(WithBinDir(t.TempDir()), withGOOS("linux"))
	_, err := f.Locate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLocate_DirectoryDoesNotCount(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	bin := t.TempDir()
	if err := os.MkdirAll(filepath.Join(bin, "SeqEyes"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	f := New(WithBinDir(bin), WithNames("SeqEyes"), withGOOS("linux"))
	if _, err := f.Locate(); err == nil {
		t.Fatalf("a directory named like the binary must not be located")
	}
}
