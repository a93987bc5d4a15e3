package assembly

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrNoFrames indicates the input directory holds no PNG files.
var ErrNoFrames = errors.New("no PNG files found")

// ScanFrames lists the PNG files in dir sorted in numeric-aware filename
// order, so frame_2.png precedes frame_10.png. Non-PNG entries are ignored.
func ScanFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".png") {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, dir)
	}

	coll := collate.New(language.Und, collate.Numeric)
	sort.Slice(names, func(i, j int) bool {
		return coll.CompareString(names[i], names[j]) < 0
	})

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

// Preview summarizes an input directory for display surfaces.
type Preview struct {
	Dir        string
	FrameCount int
	FirstFrame string
	Width      int
	Height     int
}

// Scout inspects dir without decoding pixel data: frame count plus the
// dimensions of the first frame.
func Scout(dir string) (Preview, error) {
	paths, err := ScanFrames(dir)
	if err != nil {
		return Preview{Dir: dir}, err
	}

	preview := Preview{
		Dir:        dir,
		FrameCount: len(paths),
		FirstFrame: paths[0],
	}

	file, err := os.Open(paths[0])
	if err != nil {
		return preview, fmt.Errorf("open first frame: %w", err)
	}
	defer file.Close()

	cfg, err := png.DecodeConfig(file)
	if err != nil {
		return preview, fmt.Errorf("decode %s: %w", filepath.Base(paths[0]), err)
	}
	preview.Width = cfg.Width
	preview.Height = cfg.Height
	return preview, nil
}

// Bounds returns the canvas rectangle for a preview, accounting for the
// scaling parameters.
func (p Preview) Bounds(params Params) image.Rectangle {
	if params.Width > 0 && params.Height > 0 {
		return image.Rect(0, 0, params.Width, params.Height)
	}
	return image.Rect(0, 0, p.Width, p.Height)
}
