package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flipbook/internal/assembly"
	"flipbook/internal/config"
	"flipbook/internal/notifications"
	"flipbook/internal/queue"
	"flipbook/internal/workflow"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputFlag string
	var formatFlag string
	var fpsFlag int
	var qualityFlag int
	var losslessFlag bool
	var widthFlag int
	var heightFlag int
	var quietFlag bool

	cmd := &cobra.Command{
		Use:   "convert <input-dir>",
		Short: "Convert a directory of numbered PNG frames to an animation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *queue.Store) error {
				inputDir, err := config.ExpandPath(args[0])
				if err != nil {
					return err
				}

				params, err := buildParams(cfg, formatFlag, fpsFlag, qualityFlag, losslessFlag, widthFlag, heightFlag, cmd.Flags().Changed("quality"), cmd.Flags().Changed("lossless"))
				if err != nil {
					return err
				}

				outputPath := strings.TrimSpace(outputFlag)
				if outputPath == "" {
					outputPath = filepath.Join(cfg.Paths.OutputDir, filepath.Base(inputDir)+params.Format.Extension())
				} else {
					outputPath, err = config.ExpandPath(outputPath)
					if err != nil {
						return err
					}
				}

				job, err := store.NewJob(cmd.Context(), inputDir, outputPath, params)
				if err != nil {
					return err
				}
				job.Status = queue.StatusConverting
				if err := store.Update(cmd.Context(), job); err != nil {
					return err
				}

				progress := func(stage, message string, percent float64) {
					if !quietFlag {
						fmt.Fprintf(cmd.OutOrStdout(), "%3.0f%% %-10s %s\n", percent, stage, message)
					}
					job.SetProgress(stage, message, percent)
					_ = store.UpdateProgress(cmd.Context(), job)
				}

				notifier := notifications.NewService(cfg)
				label := filepath.Base(outputPath)

				result, err := workflow.Convert(cmd.Context(), cfg, newLogger(cfg), inputDir, outputPath, params, progress)
				if err != nil {
					job.SetFailed(err.Error())
					_ = store.Update(cmd.Context(), job)
					_ = notifier.NotifyConversionFailed(cmd.Context(), label, err)
					return err
				}

				job.FrameCount = result.FrameCount
				job.SetCompleted()
				if err := store.Update(cmd.Context(), job); err != nil {
					return err
				}
				_ = notifier.NotifyConversionCompleted(cmd.Context(), label, result.OutputPath)

				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d frames)\n", result.OutputPath, result.FrameCount)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path (default: <output_dir>/<input-dir name>.<ext>)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: webp or apng (default: configured format)")
	cmd.Flags().IntVar(&fpsFlag, "fps", 0, "Frames per second (default: configured fps)")
	cmd.Flags().IntVarP(&qualityFlag, "quality", "q", 0, "WebP quality 0-100 (default: configured quality)")
	cmd.Flags().BoolVar(&losslessFlag, "lossless", false, "Use lossless WebP compression")
	cmd.Flags().IntVar(&widthFlag, "width", 0, "Scale frames to this width (requires --height)")
	cmd.Flags().IntVar(&heightFlag, "height", 0, "Scale frames to this height (requires --width)")
	cmd.Flags().BoolVar(&quietFlag, "quiet", false, "Suppress progress output")

	return cmd
}

// buildParams layers the convert flags over the configured conversion
// defaults. Flags that were not set on the command line fall back to config.
func buildParams(cfg *config.Config, formatFlag string, fps, quality int, lossless bool, width, height int, qualitySet, losslessSet bool) (assembly.Params, error) {
	formatValue := strings.TrimSpace(formatFlag)
	if formatValue == "" {
		formatValue = cfg.Conversion.Format
	}
	format, err := assembly.ParseFormat(formatValue)
	if err != nil {
		return assembly.Params{}, err
	}

	params := assembly.Params{
		Format:   format,
		FPS:      cfg.Conversion.FPS,
		Quality:  cfg.Conversion.Quality,
		Lossless: cfg.Conversion.Lossless,
		Width:    cfg.Conversion.Width,
		Height:   cfg.Conversion.Height,
	}
	if fps > 0 {
		params.FPS = fps
	}
	if qualitySet {
		params.Quality = quality
	}
	if losslessSet {
		params.Lossless = lossless
	}
	if width > 0 || height > 0 {
		params.Width = width
		params.Height = height
	}
	params.Normalize()
	return params, nil
}
