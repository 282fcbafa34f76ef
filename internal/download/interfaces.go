package download

import (
	"context"
)

// ProgressFunc is invoked after each received chunk
type ProgressFunc func(bytesRemaining, totalSize int64)

// Fetcher resolves the highest-resolution encoding of a video and streams it
// into destinationDir, returning the local file path.
type Fetcher interface {
	Fetch(ctx context.Context, stream *Stream, destinationDir string, onChunk ProgressFunc) (string, error)
	Name() string
}

// Downloader defines the interface for the download service.
type Downloader interface {
	// Download streams the encoding referenced by stream into destinationDir.
	Download(ctx context.Context, stream *Stream, destinationDir string, onProgress ProgressFunc) (string, error)
}
