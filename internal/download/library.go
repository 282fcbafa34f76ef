package download

import (
	"context"
	"path/filepath"

	"github.com/ytget/ytdlp/v2"
)

// Library format selection: best progressive encoding in an MP4 container
const (
	LibraryQuality   = "best"
	LibraryExtension = "mp4"
)

// LibraryFetcher downloads through the in-process ytdlp library
type LibraryFetcher struct{}

// NewLibraryFetcher creates a library-backed fetcher
func NewLibraryFetcher() *LibraryFetcher {
	return &LibraryFetcher{}
}

// Name returns the backend name
func (f *LibraryFetcher) Name() string { return BackendLibrary }

// Fetch downloads the best progressive MP4 encoding of stream.URL
func (f *LibraryFetcher) Fetch(ctx context.Context, stream *Stream, destinationDir string, onChunk ProgressFunc) (string, error) {
	stream.SetFormat(LibraryQuality, LibraryQuality, LibraryExtension)
	outputPath := filepath.Join(destinationDir, stream.FileName())

	d := ytdlp.New().
		WithFormat(LibraryQuality, LibraryExtension).
		WithOutputPath(outputPath).
		WithProgress(func(p ytdlp.Progress) {
			onChunk(p.TotalSize-p.DownloadedSize, p.TotalSize)
		})

	if _, err := d.Download(ctx, stream.URL); err != nil {
		return "", err
	}
	return outputPath, nil
}
