package sources

// YouTube lookups outside the transcript cascade are split by responsibility:
//   youtube.go: video ID extraction and thumbnail URLs
//   oembed.go:  title and channel via the public oEmbed endpoint

import (
	"errors"
	"regexp"
)

// ErrInvalidURL is returned when no video ID can be found in a URL.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// videoIDRE matches an 11-char ID after a "v=" query marker or a "/" path separator.
var videoIDRE = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`)

// ExtractVideoID pulls the 11-char video ID from a YouTube URL.
func ExtractVideoID(rawURL string) (string, error) {
	m := videoIDRE.FindStringSubmatch(rawURL)
	if len(m) < 2 {
		return "", ErrInvalidURL
	}
	return m[1], nil
}

// ThumbnailURL is the medium-quality thumbnail, derived from the ID alone.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/mqdefault.jpg"
}

// WatchURL is the canonical watch page URL for videoID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
