package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyURL                  = "url"
	KeyEnterURL             = "enter_url"
	KeyStartTime            = "start_time"
	KeyEndTime              = "end_time"
	KeySecondsHint          = "seconds_hint"
	KeyOutputName           = "output_name"
	KeyOutputDirectory      = "output_directory"
	KeySetDownloadDirectory = "set_download_directory"
	KeyDownloadAndCrop      = "download_and_crop"
	KeySettings             = "settings"
	KeyFile                 = "file"
	KeyLanguage             = "language"
	KeySave                 = "save"
	KeyCancel               = "cancel"
	KeyBrowse               = "browse"
	KeyOK                   = "ok"
	KeyReveal               = "reveal"
	KeySuccess              = "success"
	KeyError                = "error"
	KeySettingsSaved        = "settings_saved"
	KeyClipReady            = "clip_ready"
	KeyErrorOpeningFile     = "error_opening_file"
	KeyFetcherBackend       = "fetcher_backend"
	KeyFFmpegPath           = "ffmpeg_path"
	KeyYtDlpPath            = "ytdlp_path"
	KeyAutoReveal           = "auto_reveal"
	KeyDebugLogging         = "debug_logging"
	KeyDownloadSettings     = "download_settings"
	KeyToolSettings         = "tool_settings"
	KeyInterfaceSettings    = "interface_settings"
	KeyRestartRequired      = "restart_required"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "YT Cropper",
		KeyURL:                  "YouTube URL",
		KeyEnterURL:             "https://www.youtube.com/watch?v=...",
		KeyStartTime:            "Start time",
		KeyEndTime:              "End time",
		KeySecondsHint:          "seconds",
		KeyOutputName:           "Output name",
		KeyOutputDirectory:      "Output directory",
		KeySetDownloadDirectory: "Set Download Directory",
		KeyDownloadAndCrop:      "Download and Crop",
		KeySettings:             "Settings",
		KeyFile:                 "File",
		KeyLanguage:             "Language",
		KeySave:                 "Save",
		KeyCancel:               "Cancel",
		KeyBrowse:               "Browse",
		KeyOK:                   "OK",
		KeyReveal:               "Show in Folder",
		KeySuccess:              "Success",
		KeyError:                "Error",
		KeySettingsSaved:        "Settings saved successfully!",
		KeyClipReady:            "Clip ready",
		KeyErrorOpeningFile:     "Error opening file",
		KeyFetcherBackend:       "Download backend",
		KeyFFmpegPath:           "ffmpeg path",
		KeyYtDlpPath:            "yt-dlp path",
		KeyAutoReveal:           "Show clip in folder when done",
		KeyDebugLogging:         "Debug logging",
		KeyDownloadSettings:     "Download Settings",
		KeyToolSettings:         "External Tools",
		KeyInterfaceSettings:    "Interface Settings",
		KeyRestartRequired:      "Some changes take effect after restart.",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:             "YT Обрезка",
		KeyURL:                  "URL YouTube",
		KeyStartTime:            "Начало",
		KeyEndTime:              "Конец",
		KeySecondsHint:          "секунды",
		KeyOutputName:           "Имя файла",
		KeyOutputDirectory:      "Папка сохранения",
		KeySetDownloadDirectory: "Выбрать папку загрузки",
		KeyDownloadAndCrop:      "Скачать и обрезать",
		KeySettings:             "Настройки",
		KeyFile:                 "Файл",
		KeyLanguage:             "Язык",
		KeySave:                 "Сохранить",
		KeyCancel:               "Отмена",
		KeyBrowse:               "Обзор",
		KeyOK:                   "ОК",
		KeyReveal:               "Показать в папке",
		KeySuccess:              "Готово",
		KeyError:                "Ошибка",
		KeySettingsSaved:        "Настройки успешно сохранены!",
		KeyClipReady:            "Фрагмент готов",
		KeyErrorOpeningFile:     "Ошибка открытия файла",
		KeyFetcherBackend:       "Способ загрузки",
		KeyFFmpegPath:           "Путь к ffmpeg",
		KeyYtDlpPath:            "Путь к yt-dlp",
		KeyAutoReveal:           "Показывать фрагмент в папке",
		KeyDebugLogging:         "Отладочный журнал",
		KeyDownloadSettings:     "Настройки загрузки",
		KeyToolSettings:         "Внешние программы",
		KeyInterfaceSettings:    "Настройки интерфейса",
		KeyRestartRequired:      "Некоторые изменения вступят в силу после перезапуска.",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:             "YT Cropper",
		KeyURL:                  "URL do YouTube",
		KeyStartTime:            "Início",
		KeyEndTime:              "Fim",
		KeySecondsHint:          "segundos",
		KeyOutputName:           "Nome do arquivo",
		KeyOutputDirectory:      "Diretório de saída",
		KeySetDownloadDirectory: "Definir Diretório de Download",
		KeyDownloadAndCrop:      "Baixar e Cortar",
		KeySettings:             "Configurações",
		KeyFile:                 "Arquivo",
		KeyLanguage:             "Idioma",
		KeySave:                 "Salvar",
		KeyCancel:               "Cancelar",
		KeyBrowse:               "Navegar",
		KeyOK:                   "OK",
		KeyReveal:               "Mostrar na Pasta",
		KeySuccess:              "Sucesso",
		KeyError:                "Erro",
		KeySettingsSaved:        "Configurações salvas com sucesso!",
		KeyClipReady:            "Clipe pronto",
		KeyErrorOpeningFile:     "Erro ao abrir arquivo",
		KeyFetcherBackend:       "Método de download",
		KeyFFmpegPath:           "Caminho do ffmpeg",
		KeyYtDlpPath:            "Caminho do yt-dlp",
		KeyAutoReveal:           "Mostrar clipe na pasta ao terminar",
		KeyDebugLogging:         "Log de depuração",
		KeyDownloadSettings:     "Configurações de Download",
		KeyToolSettings:         "Ferramentas Externas",
		KeyInterfaceSettings:    "Configurações de Interface",
		KeyRestartRequired:      "Algumas alterações entram em vigor após reiniciar.",
	}
}
