package download

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-cropper/internal/logging"
	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/platform"
)

// Fetcher backends
const (
	BackendLibrary = "library"
	BackendBinary  = "binary"
)

// Messages from the fetchers that mean the URL itself was rejected
var urlRejectionMarkers = []string{
	"is not a valid url",
	"unsupported url",
	"invalid url",
	"invalid youtube url",
	"extract video id failed",
	"invalid video id",
	"invalid characters in video id",
	"could not extract video id",
}

// Service handles download operations
type Service struct {
	fetcher Fetcher
	log     zerolog.Logger
}

// NewService creates a new download service on top of fetcher
func NewService(fetcher Fetcher) *Service {
	return &Service{
		fetcher: fetcher,
		log:     logging.Get("download").With().Str("backend", fetcher.Name()).Logger(),
	}
}

// NewFetcher builds the backend named by backend. ytdlpPath overrides the
// yt-dlp binary location for the binary backend.
func NewFetcher(backend, ytdlpPath string) (Fetcher, error) {
	switch backend {
	case "", BackendLibrary:
		return NewLibraryFetcher(), nil
	case BackendBinary:
		path, err := platform.LookupTool(platform.YtDlpTool, ytdlpPath)
		if err != nil {
			return nil, err
		}
		return NewBinaryFetcher(path), nil
	default:
		return nil, fmt.Errorf("unknown fetcher backend: %s", backend)
	}
}

// DownloadStream fetches the highest-resolution encoding of url into
// destinationDir, calling onProgress after every chunk.
func (s *Service) DownloadStream(ctx context.Context, url, destinationDir string, onProgress ProgressFunc) (string, error) {
	return s.Download(ctx, NewStream(url), destinationDir, onProgress)
}

// Download streams the encoding referenced by stream into destinationDir.
// Failures are returned as *model.InvalidURLError or *model.DownloadError.
func (s *Service) Download(ctx context.Context, stream *Stream, destinationDir string, onProgress ProgressFunc) (string, error) {
	if destinationDir == "" {
		destinationDir = "."
	}
	if err := platform.CreateDirectoryIfNotExists(destinationDir); err != nil {
		return "", &model.DownloadError{Err: fmt.Errorf("failed to create download directory: %w", err)}
	}

	started := time.Now()
	s.log.Info().Str("url", stream.URL).Str("dir", destinationDir).Msg("Download started")

	path, err := s.fetcher.Fetch(ctx, stream, destinationDir, func(bytesRemaining, totalSize int64) {
		stream.SetTotalSize(totalSize)
		if onProgress != nil {
			onProgress(bytesRemaining, totalSize)
		}
	})
	if err != nil {
		err = classifyError(stream.URL, err)
		s.log.Error().Err(err).Str("url", stream.URL).Str("kind", string(model.KindOf(err))).Msg("Download failed")
		return "", err
	}

	s.log.Info().
		Str("path", path).
		Str("format", stream.FormatID()).
		Str("resolution", stream.Resolution()).
		Int64("bytes", stream.TotalSize()).
		Dur("took", time.Since(started)).
		Msg("Download completed")
	return path, nil
}

// classifyError maps a fetcher failure onto the download error kinds
func classifyError(url string, err error) error {
	var invalid *model.InvalidURLError
	var failed *model.DownloadError
	if errors.As(err, &invalid) || errors.As(err, &failed) {
		return err
	}
	if isURLRejection(err.Error()) {
		return &model.InvalidURLError{URL: url, Err: err}
	}
	return &model.DownloadError{Err: err}
}

// isURLRejection checks fetcher output for a URL pattern rejection
func isURLRejection(message string) bool {
	msg := strings.ToLower(message)
	for _, marker := range urlRejectionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
