package model

// State represents the current state of a download-and-crop session
type State string

const (
	// StateIdle means no request is being processed
	StateIdle State = "Idle"

	// StateValidating means user input is being checked
	StateValidating State = "Validating"

	// StateDownloading means the source stream is being fetched
	StateDownloading State = "Downloading"

	// StateCropping means the downloaded file is being trimmed
	StateCropping State = "Cropping"

	// StateSucceeded means the clip was written to the output path
	StateSucceeded State = "Succeeded"

	// StateFailed means validation, download or crop failed
	StateFailed State = "Failed"
)

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// IsActive returns true if a request is in flight
func (s State) IsActive() bool {
	return s == StateValidating || s == StateDownloading || s == StateCropping
}

// IsFinished returns true if the session reached a terminal state (succeeded or failed)
func (s State) IsFinished() bool {
	return s == StateSucceeded || s == StateFailed
}

// CanTransition reports whether moving from s to next is a legal step of the
// Idle -> Validating -> Downloading -> Cropping -> Succeeded/Failed machine.
// Terminal states implicitly return to Idle, so a new Validating step is allowed.
func (s State) CanTransition(next State) bool {
	switch s {
	case StateIdle, StateSucceeded, StateFailed:
		return next == StateValidating || next == StateIdle
	case StateValidating:
		return next == StateDownloading || next == StateFailed
	case StateDownloading:
		return next == StateCropping || next == StateFailed
	case StateCropping:
		return next == StateSucceeded || next == StateFailed
	default:
		return false
	}
}
