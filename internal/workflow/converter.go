package workflow

import (
	"context"
	"errors"
	"log/slog"

	"flipbook/internal/assembly"
	"flipbook/internal/config"
	"flipbook/internal/encode"
	"flipbook/internal/logging"
	"flipbook/internal/services"
)

// ProgressFunc receives conversion progress updates.
type ProgressFunc func(stage, message string, percent float64)

// ConversionResult summarizes a finished conversion.
type ConversionResult struct {
	OutputPath string
	FrameCount int
}

// Convert runs one conversion synchronously: scan, decode, normalize,
// encode. It is the single code path shared by the CLI, the queue worker,
// and the interactive UI.
func Convert(ctx context.Context, cfg *config.Config, logger *slog.Logger, inputDir, outputPath string, params assembly.Params, progress ProgressFunc) (ConversionResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if progress == nil {
		progress = func(string, string, float64) {}
	}
	result := ConversionResult{OutputPath: outputPath}

	params.Normalize()
	if err := params.Validate(outputPath); err != nil {
		return result, services.Wrap(services.ErrValidation, "convert", "parameters", err.Error(), nil)
	}

	progress("Scanning", "discovering frames", 0)
	framePaths, err := assembly.ScanFrames(inputDir)
	if err != nil {
		if errors.Is(err, assembly.ErrNoFrames) {
			return result, services.Wrap(services.ErrNotFound, "convert", "scan", "no PNG files in input directory", err)
		}
		return result, services.Wrap(services.ErrValidation, "convert", "scan", "input directory is not readable", err)
	}
	result.FrameCount = len(framePaths)
	logger.Info("frames discovered",
		logging.Int("frame_count", len(framePaths)),
		logging.String("input_dir", inputDir),
	)

	encoder, err := encode.ForFormat(cfg, params.Format)
	if err != nil {
		return result, services.Wrap(services.ErrConfiguration, "convert", "encoder", err.Error(), nil)
	}
	if err := encoder.Available(); err != nil {
		return result, err
	}

	progress("Decoding", "loading frames", 20)
	frames, err := assembly.LoadFrames(ctx, framePaths, params)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "convert", "decode", "frame could not be decoded", err)
	}

	progress("Encoding", "assembling animation", 60)
	logger.Info("encoding animation",
		logging.String("format", string(params.Format)),
		logging.Int("delay_ms", params.DelayMS()),
		logging.Int("quality", params.EffectiveQuality()),
		logging.Bool("lossless", params.Lossless),
		logging.String("output", outputPath),
	)
	if err := encoder.Encode(ctx, frames, params, outputPath); err != nil {
		return result, err
	}

	progress("Completed", "conversion finished", 100)
	return result, nil
}
