package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced to the user
type ErrorKind string

const (
	KindInvalidURLInput  ErrorKind = "InvalidUrlInput"
	KindInvalidTimeInput ErrorKind = "InvalidTimeInput"
	KindInvalidURL       ErrorKind = "InvalidUrlError"
	KindDownload         ErrorKind = "DownloadError"
	KindCrop             ErrorKind = "CropError"
	KindUnknown          ErrorKind = "Unknown"
)

// User-facing messages
const (
	MsgInvalidURLInput  = "Please enter a valid YouTube URL."
	MsgInvalidTimeInput = "Please enter valid start and end times."
	MsgInvalidURL       = "The provided URL is not a valid YouTube URL"
	MsgDownloadPrefix   = "An error occurred while downloading: "
	MsgCropPrefix       = "An error occurred while cropping: "
)

// InputError is a local validation failure raised before any background work
type InputError struct {
	kind ErrorKind
	Err  error
}

// NewInvalidURLInput returns the error for a URL rejected by local validation
func NewInvalidURLInput(url string) *InputError {
	return &InputError{kind: KindInvalidURLInput, Err: fmt.Errorf("url %q does not match a known video host", url)}
}

// NewInvalidTimeInput returns the error for non-integer start or end times
func NewInvalidTimeInput(err error) *InputError {
	return &InputError{kind: KindInvalidTimeInput, Err: err}
}

func (e *InputError) Error() string {
	if e.kind == KindInvalidTimeInput {
		return MsgInvalidTimeInput
	}
	return MsgInvalidURLInput
}

func (e *InputError) Unwrap() error { return e.Err }

// Kind returns the error classification
func (e *InputError) Kind() ErrorKind { return e.kind }

// InvalidURLError means the stream fetcher rejected the URL pattern
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string { return MsgInvalidURL }

func (e *InvalidURLError) Unwrap() error { return e.Err }

// Kind returns the error classification
func (e *InvalidURLError) Kind() ErrorKind { return KindInvalidURL }

// DownloadError wraps any non-URL failure of the stream fetcher
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return MsgDownloadPrefix + causeText(e.Err) }

func (e *DownloadError) Unwrap() error { return e.Err }

// Kind returns the error classification
func (e *DownloadError) Kind() ErrorKind { return KindDownload }

// CropError wraps any failure of the subclip extraction tool
type CropError struct {
	Err error
}

func (e *CropError) Error() string { return MsgCropPrefix + causeText(e.Err) }

func (e *CropError) Unwrap() error { return e.Err }

// Kind returns the error classification
func (e *CropError) Kind() ErrorKind { return KindCrop }

// KindOf returns the classification of the first classified error in err's chain
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
