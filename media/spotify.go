package media

import (
	"fmt"
	"regexp"
	"strings"
)

// SpotifyRef identifies an embeddable Spotify object
type SpotifyRef struct {
	Type string
	ID   string
}

var spotifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?open\.spotify\.com/(?:intl-[a-z]{2}(?:-[a-zA-Z]{2})?/)?(?:embed/)?(playlist|album|track|episode|show|artist)/([A-Za-z0-9]{22})(?:[^A-Za-z0-9]|$)`),
	regexp.MustCompile(`^spotify:(playlist|album|track|episode|show|artist):([A-Za-z0-9]{22})$`),
}

// ParseSpotifyURL extracts the object type and id from a Spotify share link or URI
func ParseSpotifyURL(rawURL string) (SpotifyRef, bool) {
	rawURL = strings.TrimSpace(rawURL)
	for _, pattern := range spotifyPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return SpotifyRef{Type: match[1], ID: match[2]}, true
		}
	}
	return SpotifyRef{}, false
}

// EmbedURL is the iframe source for the referenced object
func (r SpotifyRef) EmbedURL() string {
	if r.ID == "" {
		return ""
	}
	return fmt.Sprintf("https://open.spotify.com/embed/%s/%s", r.Type, r.ID)
}
