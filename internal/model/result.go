package model

import (
	"path/filepath"
	"strings"
	"time"
)

// Result records the outcome of one download-and-crop session
type Result struct {
	ID         string
	Request    DownloadRequest
	State      State
	SourcePath string    // intermediate downloaded file, kept after completion
	OutputPath string    // cropped clip
	LastError  string    // last error message if any
	StartedAt  time.Time // when the download started
	FinishedAt time.Time // when the session reached a terminal state
}

// Duration returns wall time between start and finish, or 0 if unfinished
func (r Result) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// GetDisplayTitle returns the output file name, or the URL if nothing was written
func (r Result) GetDisplayTitle() string {
	if r.OutputPath != "" {
		// support both / and \ separators
		name := filepath.Base(strings.ReplaceAll(r.OutputPath, "\\", "/"))
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}
	return r.Request.URL
}
