package encode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"flipbook/internal/assembly"
	"flipbook/internal/config"
	"flipbook/internal/fileutil"
	"flipbook/internal/services"
)

const defaultEncodeTimeout = 10 * time.Minute

type webpEncoder struct {
	binary  string
	timeout time.Duration
}

// NewWebPEncoder returns the animated WebP encoder backed by the img2webp
// tool from libwebp.
func NewWebPEncoder(cfg *config.Config) Encoder {
	enc := &webpEncoder{binary: "img2webp", timeout: defaultEncodeTimeout}
	if cfg != nil {
		enc.binary = cfg.Img2WebPBinary()
		if cfg.Encoder.TimeoutSeconds > 0 {
			enc.timeout = time.Duration(cfg.Encoder.TimeoutSeconds) * time.Second
		}
	}
	return enc
}

func (e *webpEncoder) Format() assembly.Format { return assembly.FormatWebP }

func (e *webpEncoder) Available() error {
	if _, err := exec.LookPath(e.binary); err != nil {
		return services.Wrap(
			services.ErrConfiguration,
			"encode",
			"img2webp",
			fmt.Sprintf("%s not found on PATH; install the libwebp tools or set encoder.img2webp_binary", e.binary),
			err,
		)
	}
	return nil
}

func (e *webpEncoder) Encode(ctx context.Context, frames []*image.NRGBA, params assembly.Params, outputPath string) error {
	if len(frames) == 0 {
		return services.Wrap(services.ErrValidation, "encode", "img2webp", "no frames to encode", nil)
	}
	if err := e.Available(); err != nil {
		return err
	}

	frameDir, err := os.MkdirTemp("", "flipbook-frames-")
	if err != nil {
		return services.Wrap(services.ErrTransient, "encode", "img2webp", "create frame staging directory", err)
	}
	defer os.RemoveAll(frameDir)

	framePaths, err := assembly.WriteFrames(ctx, frames, frameDir)
	if err != nil {
		return services.Wrap(services.ErrTransient, "encode", "img2webp", "stage frames", err)
	}

	partial := fileutil.TempSibling(outputPath)
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.binary, BuildArgs(params, framePaths, partial)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		os.Remove(partial)
		if runCtx.Err() == context.DeadlineExceeded {
			return services.Wrap(services.ErrTimeout, "encode", "img2webp", fmt.Sprintf("encoder exceeded %s", e.timeout), err)
		}
		return services.Wrap(services.ErrExternalTool, "encode", "img2webp", stderrTail(stderr.String()), err)
	}

	if err := fileutil.ReplaceFile(partial, outputPath); err != nil {
		os.Remove(partial)
		return services.Wrap(services.ErrTransient, "encode", "img2webp", "finalize output file", err)
	}
	return nil
}

// BuildArgs assembles the img2webp argument list. Frame options precede the
// frame files they apply to; the loop count of zero repeats forever.
func BuildArgs(params assembly.Params, framePaths []string, outputPath string) []string {
	args := []string{"-loop", "0", "-d", strconv.Itoa(params.DelayMS())}
	if params.Lossless {
		args = append(args, "-lossless")
	} else {
		args = append(args, "-lossy", "-q", strconv.Itoa(params.Quality))
	}
	args = append(args, framePaths...)
	args = append(args, "-o", outputPath)
	return args
}

func stderrTail(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 5 {
		lines = lines[len(lines)-5:]
	}
	tail := strings.TrimSpace(strings.Join(lines, " | "))
	if tail == "" {
		return "encoder exited with an error"
	}
	return tail
}
