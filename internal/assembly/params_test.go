package assembly

import (
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		input string
		want  Format
		ok    bool
	}{
		{"webp", FormatWebP, true},
		{"WebP", FormatWebP, true},
		{"apng", FormatAPNG, true},
		{"png", FormatAPNG, true},
		{" apng ", FormatAPNG, true},
		{"gif", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.input)
		if tc.ok && err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", tc.input, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseFormat(%q) expected error", tc.input)
		}
		if got != tc.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatExtensionAndDefaultName(t *testing.T) {
	if FormatWebP.Extension() != ".webp" {
		t.Fatalf("unexpected webp extension: %q", FormatWebP.Extension())
	}
	if FormatAPNG.Extension() != ".png" {
		t.Fatalf("unexpected apng extension: %q", FormatAPNG.Extension())
	}
	if FormatWebP.DefaultOutputName() != "output.webp" {
		t.Fatalf("unexpected default name: %q", FormatWebP.DefaultOutputName())
	}
	if FormatAPNG.DefaultOutputName() != "output.png" {
		t.Fatalf("unexpected default name: %q", FormatAPNG.DefaultOutputName())
	}
}

func TestDelayMS(t *testing.T) {
	cases := []struct {
		fps  int
		want int
	}{
		{24, 41},
		{25, 40},
		{12, 83},
		{1, 1000},
		{0, 0},
	}
	for _, tc := range cases {
		p := Params{FPS: tc.fps}
		if got := p.DelayMS(); got != tc.want {
			t.Fatalf("DelayMS with fps=%d: got %d want %d", tc.fps, got, tc.want)
		}
	}
}

func TestLosslessPinsQuality(t *testing.T) {
	p := Params{Format: FormatWebP, FPS: 24, Quality: 55, Lossless: true}
	if p.EffectiveQuality() != 100 {
		t.Fatalf("expected effective quality 100, got %d", p.EffectiveQuality())
	}
	p.Normalize()
	if p.Quality != 100 {
		t.Fatalf("expected Normalize to pin quality, got %d", p.Quality)
	}
}

func TestValidateRejectsOutOfRangeQuality(t *testing.T) {
	p := Params{Format: FormatWebP, FPS: 24, Quality: 150}
	err := p.Validate("output.webp")
	if err == nil {
		t.Fatal("expected error for quality 150")
	}
	if !strings.Contains(err.Error(), "quality") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateIgnoresQualityWhenLossless(t *testing.T) {
	p := Params{Format: FormatWebP, FPS: 24, Quality: 150, Lossless: true}
	if err := p.Validate("output.webp"); err != nil {
		t.Fatalf("expected lossless to skip quality check, got: %v", err)
	}
}

func TestValidateRequiresMatchingExtension(t *testing.T) {
	p := Params{Format: FormatWebP, FPS: 24, Quality: 90}
	if err := p.Validate("animation.png"); err == nil {
		t.Fatal("expected extension mismatch error for webp output named .png")
	}
	if err := p.Validate("Animation.WEBP"); err != nil {
		t.Fatalf("extension check should be case-insensitive: %v", err)
	}

	p.Format = FormatAPNG
	if err := p.Validate("animation.webp"); err == nil {
		t.Fatal("expected extension mismatch error for apng output named .webp")
	}
	if err := p.Validate("animation.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsNonPositiveFPS(t *testing.T) {
	p := Params{Format: FormatWebP, FPS: 0, Quality: 90}
	if err := p.Validate("output.webp"); err == nil {
		t.Fatal("expected error for fps 0")
	}
	p.FPS = -5
	if err := p.Validate("output.webp"); err == nil {
		t.Fatal("expected error for negative fps")
	}
}

func TestValidateRequiresPairedDimensions(t *testing.T) {
	p := Params{Format: FormatWebP, FPS: 24, Quality: 90, Width: 640}
	if err := p.Validate("output.webp"); err == nil {
		t.Fatal("expected error when only width is set")
	}
	p.Height = 360
	if err := p.Validate("output.webp"); err != nil {
		t.Fatalf("unexpected error with both dimensions: %v", err)
	}
}
