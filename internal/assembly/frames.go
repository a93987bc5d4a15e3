package assembly

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// LoadFrames decodes the PNG files at paths and normalizes every frame to
// NRGBA on a shared canvas. The first frame fixes the canvas size unless the
// params request explicit scaling; later frames with different geometry are
// resampled to fit.
//
// Decoding runs in parallel bounded by GOMAXPROCS; the returned slice keeps
// the input order.
func LoadFrames(ctx context.Context, paths []string, params Params) ([]*image.NRGBA, error) {
	if len(paths) == 0 {
		return nil, ErrNoFrames
	}

	decoded := make([]image.Image, len(paths))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			img, err := decodePNG(path)
			if err != nil {
				return err
			}
			decoded[i] = img
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	if params.Width > 0 && params.Height > 0 {
		for i, img := range decoded {
			decoded[i] = transform.Resize(img, params.Width, params.Height, transform.Linear)
		}
	}

	canvas := decoded[0].Bounds()
	frames := make([]*image.NRGBA, len(decoded))
	for i, img := range decoded {
		frames[i] = normalize(img, canvas)
	}
	return frames, nil
}

// WriteFrames encodes normalized frames back to numbered PNG files inside
// dir, for encoders that consume files rather than images. Returns the
// written paths in frame order.
func WriteFrames(ctx context.Context, frames []*image.NRGBA, dir string) ([]string, error) {
	paths := make([]string, len(frames))
	for i, frame := range frames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", i))
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create frame file: %w", err)
		}
		if err := png.Encode(file, frame); err != nil {
			file.Close()
			return nil, fmt.Errorf("encode frame %d: %w", i, err)
		}
		if err := file.Close(); err != nil {
			return nil, err
		}
		paths[i] = path
	}
	return paths, nil
}

func decodePNG(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open frame: %w", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

func normalize(img image.Image, canvas image.Rectangle) *image.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Bounds() == canvas {
		return nrgba
	}
	out := image.NewNRGBA(canvas)
	if img.Bounds().Dx() == canvas.Dx() && img.Bounds().Dy() == canvas.Dy() {
		draw.Draw(out, canvas, img, img.Bounds().Min, draw.Src)
		return out
	}
	draw.CatmullRom.Scale(out, canvas, img, img.Bounds(), draw.Src, nil)
	return out
}
