package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/yt-cropper/internal/download"
	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyOutputName         = "output_name"
	KeyFetcherBackend     = "fetcher_backend"
	KeyFFmpegPath         = "ffmpeg_path"
	KeyYtDlpPath          = "ytdlp_path"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyDebugLogging       = "debug_logging"
)

// Default values
const (
	DefaultOutputName         = model.DefaultOutputBaseName
	DefaultFetcherBackend     = download.BackendLibrary
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	DefaultDebugLogging       = false
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = platform.FallbackDownloadsDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetOutputName returns the last used output base name
func (s *Settings) GetOutputName() string {
	return s.app.Preferences().StringWithFallback(KeyOutputName, DefaultOutputName)
}

// SetOutputName remembers the output base name
func (s *Settings) SetOutputName(name string) {
	if name == "" {
		name = DefaultOutputName
	}
	s.app.Preferences().SetString(KeyOutputName, name)
}

// GetFetcherBackend returns the stream fetcher backend
func (s *Settings) GetFetcherBackend() string {
	backend := s.app.Preferences().String(KeyFetcherBackend)
	switch backend {
	case download.BackendLibrary, download.BackendBinary:
		return backend
	default:
		return DefaultFetcherBackend
	}
}

// SetFetcherBackend sets the stream fetcher backend
func (s *Settings) SetFetcherBackend(backend string) {
	if backend != download.BackendBinary {
		backend = download.BackendLibrary
	}
	s.app.Preferences().SetString(KeyFetcherBackend, backend)
}

// GetFetcherBackendOptions returns the available backends
func (s *Settings) GetFetcherBackendOptions() []string {
	return []string{download.BackendLibrary, download.BackendBinary}
}

// GetFFmpegPath returns the ffmpeg override path, empty to search PATH
func (s *Settings) GetFFmpegPath() string {
	return s.app.Preferences().String(KeyFFmpegPath)
}

// SetFFmpegPath sets the ffmpeg override path
func (s *Settings) SetFFmpegPath(path string) {
	s.app.Preferences().SetString(KeyFFmpegPath, path)
}

// GetYtDlpPath returns the yt-dlp override path, empty to search PATH
func (s *Settings) GetYtDlpPath() string {
	return s.app.Preferences().String(KeyYtDlpPath)
}

// SetYtDlpPath sets the yt-dlp override path
func (s *Settings) SetYtDlpPath(path string) {
	s.app.Preferences().SetString(KeyYtDlpPath, path)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal the clip after cropping
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the clip after cropping
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetDebugLogging returns whether debug logs are written
func (s *Settings) GetDebugLogging() bool {
	return s.app.Preferences().BoolWithFallback(KeyDebugLogging, DefaultDebugLogging)
}

// SetDebugLogging toggles debug logs
func (s *Settings) SetDebugLogging(debug bool) {
	s.app.Preferences().SetBool(KeyDebugLogging, debug)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
