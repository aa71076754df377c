// Package media parses video and music links and resolves stored image
// references into URLs a browser can display.
package media

import (
	"fmt"
	"regexp"
	"strings"
)

// youtubePatterns are tried in order; the first capture group is the video id.
// The trailing group rejects ids longer than eleven characters.
var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.|music\.)?youtube\.com/watch\?(?:[^#]*&)?v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`^(?:https?://)?youtu\.be/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/(?:shorts|live|v)/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`),
}

const youtubeThumbnailTemplate = "https://img.youtube.com/vi/%s/hqdefault.jpg"

// ExtractVideoID returns the YouTube video id in rawURL. ok is false when no
// known URL shape matches.
func ExtractVideoID(rawURL string) (id string, ok bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}
	for _, pattern := range youtubePatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1], true
		}
	}
	return "", false
}

// ThumbnailURL derives the hqdefault thumbnail for a video id
func ThumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf(youtubeThumbnailTemplate, videoID)
}
