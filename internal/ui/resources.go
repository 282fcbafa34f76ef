package ui

import (
	"fyne.io/fyne/v2"
)

const (
	AppIcon = "yt-cropper.png"
)

// LoadLogoResource loads the logo from the working directory. A missing file
// leaves the header without a logo.
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}
