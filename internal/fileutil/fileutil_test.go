package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded, err := ExpandPath("~/frames")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if expanded != filepath.Join(home, "frames") {
		t.Fatalf("unexpected expansion: %s", expanded)
	}
}

func TestExpandPathEmpty(t *testing.T) {
	expanded, err := ExpandPath("")
	if err != nil {
		t.Fatalf("expand empty: %v", err)
	}
	if expanded != "" {
		t.Fatalf("expected empty result, got %q", expanded)
	}
}

func TestReplaceFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "out.webp.partial")
	dst := filepath.Join(dir, "out.webp")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatalf("write dst: %v", err)
	}

	if err := ReplaceFile(src, dst); err != nil {
		t.Fatalf("replace: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "new" {
		t.Fatalf("destination not replaced: %q", data)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err=%v", err)
	}
}

func TestTempSibling(t *testing.T) {
	got := TempSibling("/tmp/frames/out.webp")
	if filepath.Dir(got) != "/tmp/frames" {
		t.Fatalf("temp sibling left the directory: %s", got)
	}
	if !strings.Contains(filepath.Base(got), "out.webp") {
		t.Fatalf("temp sibling should reference the target name: %s", got)
	}
}
