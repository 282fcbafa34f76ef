package crop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-cropper/internal/logging"
	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/platform"
)

// FFmpeg constants for subclip extraction
const (
	// Stream copy, no re-encode
	CopyCodec = "copy"

	// Shift timestamps so the clip starts at zero
	AvoidNegativeTS = "make_zero"

	// Keep stderr down to errors plus the final stats
	FFmpegLogLevel = "error"
)

// Service extracts subclips with ffmpeg
type Service struct {
	ffmpegPath string
	log        zerolog.Logger
}

// NewService creates a crop service running the ffmpeg binary at ffmpegPath
func NewService(ffmpegPath string) *Service {
	if ffmpegPath == "" {
		ffmpegPath = platform.FFmpegTool
	}
	return &Service{
		ffmpegPath: ffmpegPath,
		log:        logging.Get("crop"),
	}
}

// Locate resolves ffmpeg (override, PATH, next to the executable) and
// creates a service for it
func Locate(override string) (*Service, error) {
	path, err := platform.LookupTool(platform.FFmpegTool, override)
	if err != nil {
		return nil, err
	}
	return NewService(path), nil
}

// CropVideo writes the [startSeconds, endSeconds] subclip of sourcePath to
// outputPath, overwriting it. Failures are returned as *model.CropError; a
// partially written output is left in place.
func (s *Service) CropVideo(ctx context.Context, sourcePath string, startSeconds, endSeconds float64, outputPath string) error {
	if _, err := os.Stat(sourcePath); err != nil {
		return &model.CropError{Err: fmt.Errorf("input file does not exist: %s", sourcePath)}
	}

	started := time.Now()
	s.log.Info().
		Str("source", sourcePath).
		Float64("start", startSeconds).
		Float64("end", endSeconds).
		Str("output", outputPath).
		Msg("Crop started")

	args := BuildFFmpegArgs(sourcePath, startSeconds, endSeconds, outputPath)
	cmd := exec.CommandContext(ctx, s.ffmpegPath, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &model.CropError{Err: fmt.Errorf("failed to create stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		return &model.CropError{Err: fmt.Errorf("failed to start ffmpeg: %w", err)}
	}

	tail := s.monitorOutput(stderr)

	if err := cmd.Wait(); err != nil {
		cropErr := &model.CropError{Err: ffmpegError(tail, err)}
		s.log.Error().Err(cropErr).Str("output", outputPath).Msg("Crop failed")
		return cropErr
	}

	s.log.Info().Str("output", outputPath).Dur("took", time.Since(started)).Msg("Crop completed")
	return nil
}

// BuildFFmpegArgs builds the ffmpeg command arguments
func BuildFFmpegArgs(sourcePath string, startSeconds, endSeconds float64, outputPath string) []string {
	return []string{
		"-y", // Overwrite output file
		"-hide_banner",
		"-loglevel", FFmpegLogLevel,
		"-ss", formatSeconds(startSeconds), // Clip start
		"-to", formatSeconds(endSeconds), // Clip end
		"-i", sourcePath, // Input file
		"-c", CopyCodec, // No re-encode
		"-avoid_negative_ts", AvoidNegativeTS,
		outputPath, // Output file
	}
}

// monitorOutput logs ffmpeg stderr and returns its last non-empty line
func (s *Service) monitorOutput(stderr io.Reader) string {
	var last string
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.log.Debug().Str("ffmpeg", line).Send()
		last = line
	}
	return last
}

func ffmpegError(tail string, err error) error {
	var exitErr *exec.ExitError
	if tail != "" && errors.As(err, &exitErr) {
		return fmt.Errorf("ffmpeg exited with code %d: %s", exitErr.ExitCode(), tail)
	}
	if tail != "" {
		return fmt.Errorf("ffmpeg failed: %s: %w", tail, err)
	}
	return fmt.Errorf("ffmpeg failed: %w", err)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
