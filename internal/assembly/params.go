package assembly

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the animation container being produced.
type Format string

const (
	FormatWebP Format = "webp"
	FormatAPNG Format = "apng"
)

// ParseFormat converts a string into a known Format.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "webp":
		return FormatWebP, nil
	case "apng", "png":
		return FormatAPNG, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected webp or apng)", value)
	}
}

// Extension returns the required output file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatAPNG {
		return ".png"
	}
	return ".webp"
}

// DefaultOutputName returns the conventional output filename for a format.
func (f Format) DefaultOutputName() string {
	return "output" + f.Extension()
}

// Params holds the fixed encoding parameters for one conversion.
type Params struct {
	Format   Format
	FPS      int
	Quality  int
	Lossless bool
	// Width and Height scale frames before encoding; zero keeps the source
	// size.
	Width  int
	Height int
}

// DelayMS returns the per-frame delay in milliseconds derived from FPS.
// The division truncates, so 24 fps yields 41 ms.
func (p Params) DelayMS() int {
	if p.FPS <= 0 {
		return 0
	}
	return 1000 / p.FPS
}

// EffectiveQuality returns the quality the encoder reports: lossless mode
// always pins it to 100.
func (p Params) EffectiveQuality() int {
	if p.Lossless {
		return 100
	}
	return p.Quality
}

// Normalize folds dependent fields into their canonical values.
func (p *Params) Normalize() {
	if p.Lossless {
		p.Quality = 100
	}
	if p.Width < 0 {
		p.Width = 0
	}
	if p.Height < 0 {
		p.Height = 0
	}
}

// Validate checks the parameter ranges and that the output filename carries
// the extension the chosen format requires.
func (p Params) Validate(outputPath string) error {
	switch p.Format {
	case FormatWebP, FormatAPNG:
	default:
		return fmt.Errorf("unknown format %q", string(p.Format))
	}
	if p.FPS <= 0 {
		return fmt.Errorf("frame rate must be a positive integer, got %d", p.FPS)
	}
	if !p.Lossless && (p.Quality < 0 || p.Quality > 100) {
		return fmt.Errorf("quality must be an integer between 0 and 100, got %d", p.Quality)
	}
	if (p.Width == 0) != (p.Height == 0) {
		return fmt.Errorf("width and height must be set together")
	}

	name := strings.ToLower(filepath.Base(outputPath))
	if strings.TrimSuffix(name, p.Format.Extension()) == name {
		return fmt.Errorf("output file name must end with %s for %s", p.Format.Extension(), string(p.Format))
	}
	return nil
}
