package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flipbook/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Output directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for %s: %+v", dir, result)
	}

	missing := CheckDirectoryAccess("Output directory", filepath.Join(dir, "missing"))
	if missing.Passed {
		t.Fatal("expected failure for missing directory")
	}
	if !strings.Contains(missing.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %q", missing.Detail)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	notDir := CheckDirectoryAccess("Output directory", file)
	if notDir.Passed {
		t.Fatal("expected failure for regular file")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	result := CheckDiskSpace("Output disk space", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass on temp filesystem: %+v", result)
	}
	if !strings.Contains(result.Detail, "free") {
		t.Fatalf("detail should report free space: %q", result.Detail)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 1 {
		t.Fatalf("expected 1 status, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatalf("expected stubbed img2webp to be available: %+v", statuses[0])
	}

	cfg.Encoder.Img2WebPBinary = "definitely-not-installed-img2webp"
	statuses = CheckSystemDeps(cfg)
	if statuses[0].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
}

func TestCheckSystemDepsOptionalForAPNG(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithFormat("apng"))
	statuses := CheckSystemDeps(cfg)
	if !statuses[0].Optional {
		t.Fatal("img2webp should be optional when the default format is apng")
	}
}
