package assembly

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestScanFramesNumericOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame10.png", "frame2.png", "frame1.png"} {
		writeTestPNG(t, filepath.Join(dir, name), 2, 2)
	}

	paths, err := ScanFrames(dir)
	if err != nil {
		t.Fatalf("ScanFrames failed: %v", err)
	}
	want := []string{"frame1.png", "frame2.png", "frame10.png"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(paths))
	}
	for i, path := range paths {
		if filepath.Base(path) != want[i] {
			t.Fatalf("position %d: got %s want %s", i, filepath.Base(path), want[i])
		}
	}
}

func TestScanFramesIgnoresNonPNG(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "frame1.png"), 2, 2)
	writeTestPNG(t, filepath.Join(dir, "FRAME2.PNG"), 2, 2)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := ScanFrames(dir)
	if err != nil {
		t.Fatalf("ScanFrames failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 frames, got %d: %v", len(paths), paths)
	}
}

func TestScanFramesEmptyDir(t *testing.T) {
	dir := t.TempDir()
	_, err := ScanFrames(dir)
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("expected ErrNoFrames, got: %v", err)
	}
}

func TestScanFramesMissingDir(t *testing.T) {
	_, err := ScanFrames(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if errors.Is(err, ErrNoFrames) {
		t.Fatalf("missing directory must not report ErrNoFrames: %v", err)
	}
}

func TestScout(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a1.png"), 8, 6)
	writeTestPNG(t, filepath.Join(dir, "a2.png"), 8, 6)

	preview, err := Scout(dir)
	if err != nil {
		t.Fatalf("Scout failed: %v", err)
	}
	if preview.FrameCount != 2 {
		t.Fatalf("expected 2 frames, got %d", preview.FrameCount)
	}
	if preview.Width != 8 || preview.Height != 6 {
		t.Fatalf("unexpected dimensions: %dx%d", preview.Width, preview.Height)
	}
	if filepath.Base(preview.FirstFrame) != "a1.png" {
		t.Fatalf("unexpected first frame: %s", preview.FirstFrame)
	}

	bounds := preview.Bounds(Params{})
	if bounds.Dx() != 8 || bounds.Dy() != 6 {
		t.Fatalf("unexpected native bounds: %v", bounds)
	}
	scaled := preview.Bounds(Params{Width: 4, Height: 3})
	if scaled.Dx() != 4 || scaled.Dy() != 3 {
		t.Fatalf("unexpected scaled bounds: %v", scaled)
	}
}
