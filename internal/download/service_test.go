package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/platform"
)

// stubFetcher writes a fixed payload and replays the given chunk sizes
type stubFetcher struct {
	payload []byte
	chunks  []int
	err     error
	calls   int
}

func (f *stubFetcher) Name() string { return "stub" }

func (f *stubFetcher) Fetch(ctx context.Context, stream *Stream, dir string, onChunk ProgressFunc) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	total := int64(len(f.payload))
	var done int64
	for _, n := range f.chunks {
		done += int64(n)
		onChunk(total-done, total)
	}
	path := filepath.Join(dir, stream.FileName())
	if err := os.WriteFile(path, f.payload, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func TestService_DownloadReportsProgress(t *testing.T) {
	fetcher := &stubFetcher{payload: []byte("0123456789"), chunks: []int{2, 3, 5}}
	service := NewService(fetcher)
	dir := filepath.Join(t.TempDir(), "nested")
	stream := NewStream("https://www.youtube.com/watch?v=dQw4w9WgXcQ")

	var remaining []int64
	path, err := service.Download(context.Background(), stream, dir, func(bytesRemaining, totalSize int64) {
		if totalSize != 10 {
			t.Errorf("Expected total size 10, got %d", totalSize)
		}
		remaining = append(remaining, bytesRemaining)
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []int64{8, 5, 0}
	if len(remaining) != len(expected) {
		t.Fatalf("Expected %d progress calls, got %d", len(expected), len(remaining))
	}
	for i := range expected {
		if remaining[i] != expected[i] {
			t.Errorf("Call %d: expected %d bytes remaining, got %d", i, expected[i], remaining[i])
		}
	}

	if stream.TotalSize() != 10 {
		t.Errorf("Expected stream total size 10, got %d", stream.TotalSize())
	}
	if filepath.Base(path) != "source-dQw4w9WgXcQ.mp4" {
		t.Errorf("Unexpected file name %s", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected downloaded file to exist: %v", err)
	}
}

func TestService_DownloadStream(t *testing.T) {
	fetcher := &stubFetcher{payload: []byte("abc"), chunks: []int{3}}
	service := NewService(fetcher)

	path, err := service.DownloadStream(context.Background(), "https://youtu.be/dQw4w9WgXcQ", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read downloaded file: %v", err)
	}
	if string(data) != "abc" {
		t.Errorf("Expected payload 'abc', got %q", string(data))
	}
}

func TestService_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind model.ErrorKind
	}{
		{"url rejected", errors.New("ERROR: 'foo' is not a valid URL"), model.KindInvalidURL},
		{"unsupported", errors.New("Unsupported URL: https://youtube.com/feed"), model.KindInvalidURL},
		{"bad id", errors.New("invalid video id"), model.KindInvalidURL},
		{"library rejects url", errors.New("extract video id failed: invalid youtube url"), model.KindInvalidURL},
		{"network", errors.New("connection reset by peer"), model.KindDownload},
		{"already classified", &model.InvalidURLError{URL: "x", Err: errors.New("boom")}, model.KindInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(&stubFetcher{err: tt.err})
			_, err := service.DownloadStream(context.Background(), "https://youtube.com/watch?v=abcdefgh", t.TempDir(), nil)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if kind := model.KindOf(err); kind != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, kind)
			}
		})
	}
}

func TestService_SchemelessURLRejectedByLibrary(t *testing.T) {
	url := "youtube.com/watch?v=abc123"
	if !platform.IsValidURL(url) {
		t.Fatalf("Expected %q to pass input validation", url)
	}

	service := NewService(&stubFetcher{err: errors.New("extract video id failed: invalid youtube url")})
	_, err := service.Download(context.Background(), NewStream(url), t.TempDir(), nil)

	var invalid *model.InvalidURLError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected *model.InvalidURLError, got %T: %v", err, err)
	}
	if invalid.URL != url {
		t.Errorf("Expected URL %q, got %q", url, invalid.URL)
	}
	if err.Error() != model.MsgInvalidURL {
		t.Errorf("Expected %q, got %q", model.MsgInvalidURL, err.Error())
	}
}

func TestService_DownloadErrorMessage(t *testing.T) {
	service := NewService(&stubFetcher{err: errors.New("HTTP Error 403: Forbidden")})
	_, err := service.DownloadStream(context.Background(), "https://youtube.com/watch?v=abcdefgh", t.TempDir(), nil)

	want := model.MsgDownloadPrefix + "HTTP Error 403: Forbidden"
	if err == nil || err.Error() != want {
		t.Errorf("Expected %q, got %v", want, err)
	}
}

func TestService_DirectoryCreationFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	fetcher := &stubFetcher{}
	service := NewService(fetcher)

	_, err := service.DownloadStream(context.Background(), "https://youtube.com/watch?v=abcdefgh", filepath.Join(file, "sub"), nil)
	if model.KindOf(err) != model.KindDownload {
		t.Errorf("Expected download error, got %v", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("Expected fetcher not to be called, got %d calls", fetcher.calls)
	}
}

func TestNewFetcher(t *testing.T) {
	f, err := NewFetcher("", "")
	if err != nil || f.Name() != BackendLibrary {
		t.Errorf("Expected library fetcher by default, got %v, %v", f, err)
	}

	if _, err := NewFetcher("carrier-pigeon", ""); err == nil || !strings.Contains(err.Error(), "unknown fetcher backend") {
		t.Errorf("Expected unknown backend error, got %v", err)
	}

	if _, err := NewFetcher(BackendBinary, filepath.Join(t.TempDir(), "missing-yt-dlp")); err == nil {
		t.Error("Expected error for missing yt-dlp override")
	}
}

func TestStream_FileName(t *testing.T) {
	s := NewStream("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if got := s.FileName(); got != "source-dQw4w9WgXcQ.mp4" {
		t.Errorf("Expected source-dQw4w9WgXcQ.mp4, got %s", got)
	}

	s.SetFormat("43", "640x360", "webm")
	if got := s.FileName(); got != "source-dQw4w9WgXcQ.webm" {
		t.Errorf("Expected webm extension, got %s", got)
	}

	anon := NewStream("https://youtube.com/")
	name := anon.FileName()
	if !strings.HasPrefix(name, SourceFilePrefix) || !strings.HasSuffix(name, ".mp4") {
		t.Errorf("Unexpected fallback name %s", name)
	}
}

func TestStream_TotalSize(t *testing.T) {
	var nilStream *Stream
	if nilStream.TotalSize() != 0 {
		t.Error("Expected nil stream to report 0")
	}

	s := NewStream("u")
	s.SetTotalSize(0)
	s.SetTotalSize(-5)
	if s.TotalSize() != 0 {
		t.Errorf("Expected unknown size, got %d", s.TotalSize())
	}
	s.SetTotalSize(42)
	if s.TotalSize() != 42 {
		t.Errorf("Expected 42, got %d", s.TotalSize())
	}
}
