package encode

import (
	"context"
	"image"
	"os"

	"github.com/kettek/apng"

	"flipbook/internal/assembly"
	"flipbook/internal/fileutil"
	"flipbook/internal/services"
)

type apngEncoder struct{}

// NewAPNGEncoder returns the in-process animated PNG encoder.
func NewAPNGEncoder() Encoder {
	return apngEncoder{}
}

func (apngEncoder) Format() assembly.Format { return assembly.FormatAPNG }

func (apngEncoder) Available() error { return nil }

func (apngEncoder) Encode(ctx context.Context, frames []*image.NRGBA, params assembly.Params, outputPath string) error {
	if len(frames) == 0 {
		return services.Wrap(services.ErrValidation, "encode", "apng", "no frames to encode", nil)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	animation := apng.APNG{
		Frames:    make([]apng.Frame, len(frames)),
		LoopCount: 0,
	}
	delay := params.DelayMS()
	for i, frame := range frames {
		animation.Frames[i] = apng.Frame{
			Image:            frame,
			DelayNumerator:   uint16(delay),
			DelayDenominator: 1000,
		}
	}

	partial := fileutil.TempSibling(outputPath)
	file, err := os.Create(partial)
	if err != nil {
		return services.Wrap(services.ErrTransient, "encode", "apng", "create output file", err)
	}
	if err := apng.Encode(file, animation); err != nil {
		file.Close()
		os.Remove(partial)
		return services.Wrap(services.ErrTransient, "encode", "apng", "write animation", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(partial)
		return services.Wrap(services.ErrTransient, "encode", "apng", "close output file", err)
	}
	if err := fileutil.ReplaceFile(partial, outputPath); err != nil {
		os.Remove(partial)
		return services.Wrap(services.ErrTransient, "encode", "apng", "finalize output file", err)
	}
	return nil
}
