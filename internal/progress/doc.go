// Package progress carries download percentages from the background download
// goroutine to the foreground display. Relay is the only channel between the
// two; Poller drains it on a fixed schedule and derives a remaining-time
// estimate from the session clock.
package progress
