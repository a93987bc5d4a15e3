package encode

import (
	"context"
	"fmt"
	"image"

	"flipbook/internal/assembly"
	"flipbook/internal/config"
)

// Encoder produces one animated output file from a normalized frame
// sequence.
type Encoder interface {
	// Format reports the container this encoder produces.
	Format() assembly.Format
	// Available verifies the encoder can run on this host.
	Available() error
	// Encode writes frames to outputPath using the given parameters.
	Encode(ctx context.Context, frames []*image.NRGBA, params assembly.Params, outputPath string) error
}

// ForFormat returns the encoder for a format.
func ForFormat(cfg *config.Config, format assembly.Format) (Encoder, error) {
	switch format {
	case assembly.FormatWebP:
		return NewWebPEncoder(cfg), nil
	case assembly.FormatAPNG:
		return NewAPNGEncoder(), nil
	default:
		return nil, fmt.Errorf("no encoder for format %q", string(format))
	}
}
