package model

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Default values
const (
	DefaultOutputBaseName = "output"
	OutputExtensionMP4    = ".mp4"
)

// Input holds the raw text fields as typed by the user
type Input struct {
	URL       string
	Start     string // seconds, integer
	End       string // seconds, integer
	Name      string // output base name, optional
	Directory string // output directory
}

// DownloadRequest is a validated, immutable download-and-crop request
type DownloadRequest struct {
	URL             string
	StartSeconds    int
	EndSeconds      int
	OutputBaseName  string
	OutputDirectory string
}

// ParseRequest normalizes input fields into a DownloadRequest.
// URL validation is done by the caller; only times and defaults are handled here.
// EndSeconds > StartSeconds is not enforced.
func ParseRequest(in Input) (DownloadRequest, error) {
	start, err := strconv.Atoi(strings.TrimSpace(in.Start))
	if err != nil {
		return DownloadRequest{}, NewInvalidTimeInput(err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(in.End))
	if err != nil {
		return DownloadRequest{}, NewInvalidTimeInput(err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultOutputBaseName
	}

	return DownloadRequest{
		URL:             strings.TrimSpace(in.URL),
		StartSeconds:    start,
		EndSeconds:      end,
		OutputBaseName:  name,
		OutputDirectory: strings.TrimSpace(in.Directory),
	}, nil
}

// OutputPath returns {OutputDirectory}/{OutputBaseName}.mp4
func (r DownloadRequest) OutputPath() string {
	return filepath.Join(r.OutputDirectory, r.OutputBaseName+OutputExtensionMP4)
}
