package model

// Package model defines domain data structures used across the app: the
// download-and-crop request, session states, results, and the error kinds
// surfaced to the user. Values are plain data with explicit transitions.
