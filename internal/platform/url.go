package platform

import (
	"regexp"
)

// videoURLPattern matches an optional scheme, optional "www.", one of the known
// hosts and a known top-level domain, anchored at the start of the string.
var videoURLPattern = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/`)

// videoIDPattern extracts the video id from watch, short-link, embed and shorts URLs
var videoIDPattern = regexp.MustCompile(`(?:[?&]v=|youtu\.be/|/embed/|/shorts/|/v/)([A-Za-z0-9_-]{6,})`)

// IsValidURL reports whether candidate looks like a supported video URL.
// It never panics and returns false for empty or malformed input.
func IsValidURL(candidate string) bool {
	return videoURLPattern.MatchString(candidate)
}

// ExtractVideoID returns the video id embedded in url, or "" if none is found
func ExtractVideoID(url string) string {
	m := videoIDPattern.FindStringSubmatch(url)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
