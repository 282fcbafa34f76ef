package platform

// Package platform contains OS/platform integration and external tooling glue:
// video URL recognition, filesystem helpers, tool lookup, and OS reveal/open.
