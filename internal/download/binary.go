package download

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/ytget/yt-cropper/internal/model"
)

// yt-dlp invocation constants
const (
	ProgressMarker   = "ytcrop-progress"
	ProgressTemplate = "download:" + ProgressMarker + " %(progress.downloaded_bytes)s %(progress.total_bytes)s %(progress.total_bytes_estimate)s"
	ErrorLinePrefix  = "ERROR:"
	NoneCodec        = "none"
	NotAvailable     = "NA"
)

// Format is one encoding reported by yt-dlp -J
type Format struct {
	ID             string  `json:"format_id"`
	Ext            string  `json:"ext"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	VideoCodec     string  `json:"vcodec"`
	AudioCodec     string  `json:"acodec"`
	FileSize       float64 `json:"filesize"`
	FileSizeApprox float64 `json:"filesize_approx"`
}

// IsProgressive reports whether the encoding carries both video and audio
func (f Format) IsProgressive() bool {
	return f.VideoCodec != "" && f.VideoCodec != NoneCodec &&
		f.AudioCodec != "" && f.AudioCodec != NoneCodec
}

// Size returns the exact size when known, else the approximation
func (f Format) Size() int64 {
	if f.FileSize > 0 {
		return int64(f.FileSize)
	}
	return int64(f.FileSizeApprox)
}

// Resolution returns "WxH", or "Hp" when the width is unknown
func (f Format) Resolution() string {
	if f.Width > 0 {
		return fmt.Sprintf("%dx%d", f.Width, f.Height)
	}
	return fmt.Sprintf("%dp", f.Height)
}

// VideoInfo is the subset of yt-dlp -J output used for format selection
type VideoInfo struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Formats []Format `json:"formats"`
}

// SelectHighestResolution picks the progressive encoding with the largest
// height. Ties prefer MP4, then the larger file.
func SelectHighestResolution(formats []Format) (Format, bool) {
	var best Format
	found := false
	for _, f := range formats {
		if !f.IsProgressive() {
			continue
		}
		if !found || betterFormat(f, best) {
			best = f
			found = true
		}
	}
	return best, found
}

func betterFormat(candidate, current Format) bool {
	if candidate.Height != current.Height {
		return candidate.Height > current.Height
	}
	candMP4 := candidate.Ext == DefaultExtension
	currMP4 := current.Ext == DefaultExtension
	if candMP4 != currMP4 {
		return candMP4
	}
	return candidate.Size() > current.Size()
}

// ParseProgressLine parses a line printed with ProgressTemplate.
// total falls back to the estimate when yt-dlp does not know the exact size.
func ParseProgressLine(line string) (downloaded, total int64, ok bool) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) != 4 || fields[0] != ProgressMarker {
		return 0, 0, false
	}

	downloaded, ok = parseBytes(fields[1])
	if !ok {
		return 0, 0, false
	}
	if total, ok = parseBytes(fields[2]); !ok {
		total, _ = parseBytes(fields[3])
	}
	return downloaded, total, true
}

func parseBytes(s string) (int64, bool) {
	if s == NotAvailable || s == "None" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return int64(v), true
}

// BinaryFetcher downloads by running the yt-dlp executable
type BinaryFetcher struct {
	path string
}

// NewBinaryFetcher creates a fetcher running the yt-dlp binary at path
func NewBinaryFetcher(path string) *BinaryFetcher {
	return &BinaryFetcher{path: path}
}

// Name returns the backend name
func (f *BinaryFetcher) Name() string { return BackendBinary }

// Fetch resolves the encodings of stream.URL, selects the highest progressive
// resolution and downloads it, reporting each progress line to onChunk.
func (f *BinaryFetcher) Fetch(ctx context.Context, stream *Stream, destinationDir string, onChunk ProgressFunc) (string, error) {
	info, err := f.Resolve(ctx, stream.URL)
	if err != nil {
		return "", err
	}

	format, ok := SelectHighestResolution(info.Formats)
	if !ok {
		return "", fmt.Errorf("no progressive encoding available for %s", stream.URL)
	}
	stream.SetFormat(format.ID, format.Resolution(), format.Ext)
	stream.SetTotalSize(format.Size())

	outputPath := filepath.Join(destinationDir, stream.FileName())
	cmd := exec.CommandContext(ctx, f.path, BuildDownloadArgs(format.ID, outputPath, stream.URL)...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start yt-dlp: %w", err)
	}

	var wg sync.WaitGroup
	var errLine string
	wg.Add(1)
	go func() {
		defer wg.Done()
		errLine = lastErrorLine(stderr)
	}()

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		downloaded, total, ok := ParseProgressLine(scanner.Text())
		if !ok {
			continue
		}
		if total <= 0 {
			total = stream.TotalSize()
		}
		onChunk(total-downloaded, total)
	}

	wg.Wait()
	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", commandError(stream.URL, errLine, err)
	}
	return outputPath, nil
}

// Resolve runs yt-dlp -J and decodes the video metadata
func (f *BinaryFetcher) Resolve(ctx context.Context, url string) (*VideoInfo, error) {
	cmd := exec.CommandContext(ctx, f.path, "-J", "--no-playlist", "--no-warnings", url)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		line := ""
		if errors.As(err, &exitErr) {
			line = lastErrorLine(strings.NewReader(string(exitErr.Stderr)))
		}
		return nil, commandError(url, line, err)
	}

	var info VideoInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp metadata: %w", err)
	}
	return &info, nil
}

// BuildDownloadArgs builds the yt-dlp download command arguments
func BuildDownloadArgs(formatID, outputPath, url string) []string {
	return []string{
		"-f", formatID,
		"--newline",
		"--no-playlist",
		"--no-warnings",
		"--no-part",
		"--progress-template", ProgressTemplate,
		"-o", strings.ReplaceAll(outputPath, "%", "%%"), // output templates treat % specially
		url,
	}
}

// lastErrorLine returns the last "ERROR:" line of r, or its last non-empty line
func lastErrorLine(r io.Reader) string {
	var last, lastErr string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		last = line
		if strings.HasPrefix(line, ErrorLinePrefix) {
			lastErr = strings.TrimSpace(strings.TrimPrefix(line, ErrorLinePrefix))
		}
	}
	if lastErr != "" {
		return lastErr
	}
	return last
}

func commandError(url, line string, err error) error {
	if line == "" {
		return fmt.Errorf("yt-dlp failed: %w", err)
	}
	if isURLRejection(line) {
		return &model.InvalidURLError{URL: url, Err: errors.New(line)}
	}
	return fmt.Errorf("yt-dlp failed: %s: %w", line, err)
}
