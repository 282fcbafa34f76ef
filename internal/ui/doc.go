package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// RootUI is the single download-and-crop form: it feeds user input into a
// session, renders progress and remaining time, and shows the outcome in a
// dialog. All UI strings are localized via Localization.
