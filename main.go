package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-cropper/internal/config"
	"github.com/ytget/yt-cropper/internal/crop"
	"github.com/ytget/yt-cropper/internal/download"
	"github.com/ytget/yt-cropper/internal/logging"
	"github.com/ytget/yt-cropper/internal/platform"
	"github.com/ytget/yt-cropper/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-cropper"
	AppName = "YT Cropper"

	WindowWidth  = 560
	WindowHeight = 420
)

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp)
	logging.Init(logging.Options{
		Debug: settings.GetDebugLogging(),
		File:  logging.DefaultFile(),
	})
	defer logging.Close()

	log := logging.Get("main")
	log.Info().Str("version", version).Msg("YT Cropper starting")

	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.Warn().Err(err).Msg("Failed to ensure download directory")
	}

	fetcher, err := download.NewFetcher(settings.GetFetcherBackend(), settings.GetYtDlpPath())
	if err != nil {
		log.Warn().Err(err).Str("fallback", download.BackendLibrary).Msg("Invalid fetcher backend")
		fetcher, _ = download.NewFetcher(download.BackendLibrary, "")
	}

	// A missing ffmpeg is reported when the first crop runs
	cropper, err := crop.Locate(settings.GetFFmpegPath())
	if err != nil {
		log.Warn().Err(err).Msg("ffmpeg not found")
		cropper = crop.NewService("")
	}

	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	root := ui.NewRootUI(myWindow, myApp, ui.Services{
		Downloader: download.NewService(fetcher),
		Cropper:    cropper,
	})
	myApp.Lifecycle().SetOnStopped(root.Stop)

	myWindow.ShowAndRun()
}
