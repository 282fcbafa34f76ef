// Package download implements the stream-fetching step of the pipeline. A
// Fetcher backend (the ytdlp library or the yt-dlp binary) selects the
// highest-resolution encoding and streams it to disk; Service classifies
// failures and reports per-chunk progress to the caller.
package download
