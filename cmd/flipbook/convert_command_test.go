package main

import (
	"os"
	"path/filepath"
	"testing"

	"flipbook/internal/testsupport"
)

func TestConvertCommandProducesAPNG(t *testing.T) {
	env := setupCLITestEnv(t)

	frames := filepath.Join(env.baseDir, "frames")
	testsupport.WriteFrameSequence(t, frames, 3, 4, 4)

	output := filepath.Join(env.baseDir, "anim.png")
	out, _, err := runCLI(t, []string{"convert", frames, "--format", "apng", "--output", output}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Wrote "+output)
	requireContains(t, out, "3 frames")

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestConvertCommandDefaultsOutputPath(t *testing.T) {
	env := setupCLITestEnv(t)

	frames := filepath.Join(env.baseDir, "sunrise")
	testsupport.WriteFrameSequence(t, frames, 2, 4, 4)

	out, _, err := runCLI(t, []string{"convert", frames, "--format", "apng"}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	want := filepath.Join(env.cfg.Paths.OutputDir, "sunrise.png")
	requireContains(t, out, want)
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected output at %s: %v", want, err)
	}
}

func TestConvertCommandRejectsBadParams(t *testing.T) {
	env := setupCLITestEnv(t)

	frames := filepath.Join(env.baseDir, "frames")
	testsupport.WriteFrameSequence(t, frames, 2, 4, 4)

	if _, _, err := runCLI(t, []string{"convert", frames, "--quality", "150"}, env.configPath); err == nil {
		t.Fatal("expected error for out-of-range quality")
	}

	output := filepath.Join(env.baseDir, "anim.gif")
	if _, _, err := runCLI(t, []string{"convert", frames, "--output", output}, env.configPath); err == nil {
		t.Fatal("expected error for mismatched extension")
	}
}

func TestConvertCommandFailsWithoutFrames(t *testing.T) {
	env := setupCLITestEnv(t)

	empty := filepath.Join(env.baseDir, "empty")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if _, _, err := runCLI(t, []string{"convert", empty, "--format", "apng"}, env.configPath); err == nil {
		t.Fatal("expected error for directory without frames")
	}
}
