package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-cropper/internal/config"
	"github.com/ytget/yt-cropper/internal/crop"
	"github.com/ytget/yt-cropper/internal/download"
	"github.com/ytget/yt-cropper/internal/logging"
	"github.com/ytget/yt-cropper/internal/model"
	"github.com/ytget/yt-cropper/internal/platform"
	"github.com/ytget/yt-cropper/internal/progress"
	"github.com/ytget/yt-cropper/internal/session"
)

// Services bundles the backends the root UI drives
type Services struct {
	Downloader download.Downloader
	Cropper    crop.Cropper

	// Dispatch marshals work onto the Fyne main loop, fyne.Do when nil.
	Dispatch progress.Dispatcher
	// Clock drives the progress poller and the remaining-time estimate.
	Clock clockwork.Clock
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	log          zerolog.Logger

	urlLabel   *widget.Label
	startLabel *widget.Label
	endLabel   *widget.Label
	nameLabel  *widget.Label
	dirLabel   *widget.Label

	urlEntry   *widget.Entry
	startEntry *widget.Entry
	endEntry   *widget.Entry
	nameEntry  *widget.Entry
	dirEntry   *widget.Entry
	dirBtn     *widget.Button
	cropBtn    *widget.Button

	progressBar *widget.ProgressBar
	statusLabel *widget.Label

	session     *session.Session
	stopPolling context.CancelFunc
}

// NewRootUI creates and initializes the main UI and starts the progress poller
func NewRootUI(window fyne.Window, app fyne.App, svc Services) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		log:          logging.Get("ui"),
	}

	dispatch := svc.Dispatch
	if dispatch == nil {
		dispatch = fyne.Do
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.stopPolling = cancel

	ui.session = session.New(session.Options{
		Downloader: svc.Downloader,
		Cropper:    svc.Cropper,
		Display:    ui,
		Control:    ui,
		Notifier:   ui,
		Dispatch:   dispatch,
		Clock:      svc.Clock,
		Context:    ctx,
	})

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()

	// The poller runs for the lifetime of the window, idle between requests
	go ui.session.NewPoller().Run(ctx, progress.DefaultPollInterval)

	return ui
}

// Stop cancels the root context when the app exits, which ends the progress poller
func (ui *RootUI) Stop() {
	if ui.stopPolling != nil {
		ui.stopPolling()
	}
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel("")
	ui.startLabel = widget.NewLabel("")
	ui.endLabel = widget.NewLabel("")
	ui.nameLabel = widget.NewLabel("")
	ui.dirLabel = widget.NewLabel("")

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.Validator = validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onCropClick() }

	ui.startEntry = widget.NewEntry()
	ui.startEntry.Validator = validateSeconds
	ui.endEntry = widget.NewEntry()
	ui.endEntry.Validator = validateSeconds

	ui.nameEntry = widget.NewEntry()
	ui.nameEntry.SetText(ui.settings.GetOutputName())

	downloadsDir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		ui.log.Warn().Err(err).Str("dir", downloadsDir).Msg("Failed to ensure downloads dir")
	}
	ui.dirEntry = widget.NewEntry()
	ui.dirEntry.SetText(downloadsDir)

	ui.dirBtn = widget.NewButton("", ui.onSetDirectory)
	ui.cropBtn = widget.NewButton("", ui.onCropClick)
	ui.cropBtn.Importance = widget.HighImportance

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.Max = ProgressMax
	ui.progressBar.TextFormatter = func() string {
		return fmt.Sprintf(ProgressLabelFormat, ui.progressBar.Value)
	}

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewHBox(layout.NewSpacer(), settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewHBox(logoImage, layout.NewSpacer(), settingsBtn)
	}

	form := container.New(layout.NewFormLayout(),
		ui.urlLabel, ui.urlEntry,
		ui.startLabel, ui.startEntry,
		ui.endLabel, ui.endEntry,
		ui.nameLabel, ui.nameEntry,
		ui.dirLabel, container.NewBorder(nil, nil, nil, ui.dirBtn, ui.dirEntry),
	)

	content := container.NewVBox(
		header,
		form,
		ui.cropBtn,
		ui.progressBar,
		ui.statusLabel,
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewPadded(content))
	ui.log.Debug().Msg("UI setup completed")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.urlLabel.SetText(l.GetText(KeyURL))
	ui.startLabel.SetText(l.GetText(KeyStartTime))
	ui.endLabel.SetText(l.GetText(KeyEndTime))
	ui.nameLabel.SetText(l.GetText(KeyOutputName))
	ui.dirLabel.SetText(l.GetText(KeyOutputDirectory))

	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.startEntry.SetPlaceHolder(l.GetText(KeySecondsHint))
	ui.endEntry.SetPlaceHolder(l.GetText(KeySecondsHint))
	ui.nameEntry.SetPlaceHolder(model.DefaultOutputBaseName)

	ui.dirBtn.SetText(IconFolder + " " + l.GetText(KeySetDownloadDirectory))
	ui.cropBtn.SetText(IconScissors + " " + l.GetText(KeyDownloadAndCrop))
}

// currentInput collects the raw form fields
func (ui *RootUI) currentInput() model.Input {
	return model.Input{
		URL:       ui.urlEntry.Text,
		Start:     ui.startEntry.Text,
		End:       ui.endEntry.Text,
		Name:      ui.nameEntry.Text,
		Directory: ui.dirEntry.Text,
	}
}

// onCropClick handles the "Download and Crop" button
func (ui *RootUI) onCropClick() {
	in := ui.currentInput()

	err := ui.session.Start(in)
	switch {
	case errors.Is(err, session.ErrBusy):
		ui.log.Debug().Msg("Ignoring click while a request is in flight")
		return
	case err != nil:
		// Already shown to the user by NotifyError
		return
	}

	ui.settings.SetOutputName(strings.TrimSpace(in.Name))
	if dir := strings.TrimSpace(in.Directory); dir != "" {
		ui.settings.SetDownloadDirectory(dir)
	}
}

// onSetDirectory opens the folder chooser for the output directory
func (ui *RootUI) onSetDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if uri == nil {
			return
		}
		ui.setDirectory(uri.Path())
	}, ui.window)
}

// setDirectory fills the output directory field and remembers it
func (ui *RootUI) setDirectory(dir string) {
	ui.dirEntry.SetText(dir)
	ui.settings.SetDownloadDirectory(dir)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		if dir := ui.settings.GetDownloadDirectory(); dir != "" {
			ui.dirEntry.SetText(dir)
		}
	})
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}

	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.log.Error().Err(err).Str("path", filePath).Msg("Error revealing file")
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// SetProgress implements progress.Display
func (ui *RootUI) SetProgress(percent float64) {
	ui.progressBar.SetValue(percent)
}

// SetStatus implements progress.Display
func (ui *RootUI) SetStatus(text string) {
	ui.statusLabel.SetText(text)
}

// SetEnabled implements session.Control
func (ui *RootUI) SetEnabled(enabled bool) {
	if enabled {
		ui.cropBtn.Enable()
	} else {
		ui.cropBtn.Disable()
	}
}

// NotifySuccess implements session.Notifier
func (ui *RootUI) NotifySuccess(message string, result model.Result) {
	ui.app.SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyClipReady),
		Content: result.GetDisplayTitle(),
	})

	revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
		ui.onRevealFile(result.OutputPath)
	})
	content := container.NewVBox(widget.NewLabel(message), revealBtn)
	dialog.ShowCustom(ui.localization.GetText(KeySuccess), ui.localization.GetText(KeyOK), content, ui.window)

	if ui.settings.GetAutoRevealOnComplete() {
		ui.onRevealFile(result.OutputPath)
	}
}

// NotifyError implements session.Notifier
func (ui *RootUI) NotifyError(err error) {
	dialog.ShowError(err, ui.window)
}

// validateURL validates the entered URL
func validateURL(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil // Empty is allowed
	}
	if !platform.IsValidURL(input) {
		return errors.New(model.MsgInvalidURLInput)
	}
	return nil
}

// validateSeconds validates a whole-second time field
func validateSeconds(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if _, err := strconv.Atoi(input); err != nil {
		return errors.New(model.MsgInvalidTimeInput)
	}
	return nil
}
