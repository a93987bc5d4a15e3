package testsupport

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFrameSequence writes count small PNG frames named frame1.png,
// frame2.png, ... into dir and returns dir.
func WriteFrameSequence(t testing.TB, dir string, count, width, height int) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for i := 1; i <= count; i++ {
		img := image.NewNRGBA(image.Rect(0, 0, width, height))
		for p := range img.Pix {
			img.Pix[p] = byte(i*40 + p)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame%d.png", i))
		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("create %s: %v", path, err)
		}
		if err := png.Encode(file, img); err != nil {
			file.Close()
			t.Fatalf("encode %s: %v", path, err)
		}
		if err := file.Close(); err != nil {
			t.Fatalf("close %s: %v", path, err)
		}
	}
	return dir
}
