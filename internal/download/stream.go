package download

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ytget/yt-cropper/internal/platform"
)

// Intermediate file naming
const (
	SourceFilePrefix = "source-"
	DefaultExtension = "mp4"
)

// Stream is the handle to the encoding selected for one download. The total
// size may only become known with the first chunk, so it is stored atomically
// and read by the progress poller from the foreground.
type Stream struct {
	URL string

	totalSize atomic.Int64

	mu         sync.RWMutex
	formatID   string
	resolution string
	extension  string
}

// NewStream creates a handle for url
func NewStream(url string) *Stream {
	return &Stream{URL: url, extension: DefaultExtension}
}

// TotalSize returns the encoding size in bytes, 0 while unknown
func (s *Stream) TotalSize() int64 {
	if s == nil {
		return 0
	}
	return s.totalSize.Load()
}

// SetTotalSize records the encoding size
func (s *Stream) SetTotalSize(n int64) {
	if n > 0 {
		s.totalSize.Store(n)
	}
}

// SetFormat records the selected encoding
func (s *Stream) SetFormat(id, resolution, extension string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formatID = id
	s.resolution = resolution
	if extension != "" {
		s.extension = extension
	}
}

// FormatID returns the selected encoding id
func (s *Stream) FormatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formatID
}

// Resolution returns a human readable resolution, e.g. "1280x720"
func (s *Stream) Resolution() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolution
}

// Extension returns the container extension without the dot
func (s *Stream) Extension() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extension
}

// FileName returns the intermediate file name: source-<videoID>.<ext>, with a
// time-ordered UUID standing in when the URL carries no recognizable id.
func (s *Stream) FileName() string {
	id := platform.ExtractVideoID(s.URL)
	if id == "" {
		id = generateSourceID()
	}
	return fmt.Sprintf("%s%s.%s", SourceFilePrefix, id, s.Extension())
}

// generateSourceID generates a unique id using UUID v7 for time ordering
func generateSourceID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
