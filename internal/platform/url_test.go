package platform

import "testing"

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "https www watch", url: "https://www.youtube.com/watch?v=abc123", expected: true},
		{name: "http www watch", url: "http://www.youtube.com/watch?v=abc123", expected: true},
		{name: "no www", url: "https://youtube.com/watch?v=abc123", expected: true},
		{name: "no scheme", url: "www.youtube.com/watch?v=abc123", expected: true},
		{name: "bare host", url: "youtube.com/watch?v=abc123", expected: true},
		{name: "short link", url: "https://youtu.be/abc123", expected: true},
		{name: "short link no scheme", url: "youtu.be/abc123", expected: true},
		{name: "short link www", url: "http://www.youtu.be/abc123", expected: true},
		{name: "nocookie", url: "https://www.youtube-nocookie.com/embed/abc123", expected: true},
		{name: "nocookie no scheme", url: "youtube-nocookie.com/embed/abc123", expected: true},
		{name: "uppercase", url: "HTTPS://WWW.YOUTUBE.COM/watch?v=abc123", expected: true},
		{name: "empty", url: "", expected: false},
		{name: "not a url", url: "not-a-url", expected: false},
		{name: "other host", url: "https://vimeo.com/12345", expected: false},
		{name: "unknown tld", url: "https://www.youtube.org/watch?v=abc", expected: false},
		{name: "missing trailing slash", url: "https://www.youtube.com", expected: false},
		{name: "host as path", url: "https://example.com/youtube.com/watch", expected: false},
		{name: "leading space", url: " https://www.youtube.com/watch?v=abc", expected: false},
		{name: "ftp scheme", url: "ftp://youtube.com/watch?v=abc", expected: false},
		{name: "garbage", url: "://\x00\xff", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidURL(tt.url)
			if result != tt.expected {
				t.Errorf("IsValidURL(%q) = %v, expected %v", tt.url, result, tt.expected)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://www.youtube.com/watch?v=abc123", "abc123"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=30", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := ExtractVideoID(test.url); got != test.expected {
			t.Errorf("ExtractVideoID(%q) = %q, expected %q", test.url, got, test.expected)
		}
	}
}
