package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconScissors = "✂"
)

// Layout sizing
const (
	FormMinWidth    float32 = 520
	TimeEntryWidth  float32 = 120
	SettingsDialogW float32 = 520
	SettingsDialogH float32 = 440
	LogoSize        float32 = 32
)

// Progress bar
const (
	ProgressMax         = 100.0
	ProgressLabelFormat = "%.0f%%"
)
