package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/zaironnya/KrugoBot/internal/domain"
)

// noteFilter crops the largest centered square and scales it to the
// fixed note resolution.
const noteFilter = "crop='min(iw,ih)':'min(iw,ih)',scale=512:512"

// Transcoder invokes ffprobe/ffmpeg with bounded timeouts so a hung
// external process cannot hold the worker loop.
type Transcoder struct {
	probeTimeout     time.Duration
	transcodeTimeout time.Duration
}

// NewTranscoder creates a transcoder with the given process timeouts.
func NewTranscoder(probeTimeout, transcodeTimeout time.Duration) *Transcoder {
	return &Transcoder{
		probeTimeout:     probeTimeout,
		transcodeTimeout: transcodeTimeout,
	}
}

// Probe returns the duration of a media file in seconds. Output that
// does not parse as a duration is an error.
func (t *Transcoder) Probe(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries",
		"format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseDuration(output)
}

// Transcode produces the square 512x512 note file. A non-zero exit is a
// failure; a timeout maps to the dedicated error so the caller can tell
// a hung process from a broken source.
func (t *Transcoder) Transcode(ctx context.Context, inputPath, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, t.transcodeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", inputPath,
		"-vf", noteFilter,
		"-c:v", "libx264",
		"-c:a", "aac",
		outputPath,
	)
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: after %s", domain.ErrTranscodeTimeout, t.transcodeTimeout)
		}
		return fmt.Errorf("%w: %v", domain.ErrTranscodeFailed, err)
	}
	return nil
}

// Check verifies ffmpeg is installed.
func Check() error {
	return exec.Command("ffmpeg", "-version").Run()
}

func parseDuration(output []byte) (float64, error) {
	text := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", text, err)
	}
	return duration, nil
}
