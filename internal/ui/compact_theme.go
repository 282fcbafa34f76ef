package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Crop form palette
var (
	clipRed     = color.RGBA{R: 204, G: 32, B: 32, A: 255}
	failRed     = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	doneGreen   = color.RGBA{R: 46, G: 125, B: 50, A: 255}
	progressBed = color.RGBA{R: 224, G: 224, B: 224, A: 255}
)

// CompactTheme keeps the five-field crop form and its progress bar inside a
// small fixed window
type CompactTheme struct {
	base fyne.Theme
}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{base: theme.DefaultTheme()}
}

func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return clipRed
	case theme.ColorNameError:
		return failRed
	case theme.ColorNameSuccess:
		return doneGreen
	case theme.ColorNameInputBackground:
		// Unfilled part of the progress bar in light mode
		if variant == theme.VariantLight {
			return progressBed
		}
	}
	return t.base.Color(name, variant)
}

func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size shrinks the spacing between form rows and the text inside entries
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	}
	return t.base.Size(name)
}
