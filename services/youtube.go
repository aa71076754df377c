package services

import (
	"strings"

	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
)

// deriveYouTube extracts the video id from rawURL and fills in the derived
// thumbnail unless an explicit one is given.
func deriveYouTube(rawURL, thumbnail string) (videoID, thumbnailURL string, err error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", "", errs.NewMissingRequiredFieldError("youtube_url")
	}
	videoID, ok := media.ExtractVideoID(rawURL)
	if !ok {
		return "", "", errs.NewInvalidURLError("YouTube", "youtube_url", rawURL)
	}

	thumbnailURL = strings.TrimSpace(thumbnail)
	if thumbnailURL == "" {
		thumbnailURL = media.ThumbnailURL(videoID)
	}
	return videoID, thumbnailURL, nil
}

// rederiveYouTube recomputes id and thumbnail after an update. A thumbnail that
// was derived from the old id follows the new id; an explicit one is kept.
func rederiveYouTube(oldID, oldThumbnail, newURL, newThumbnail string, thumbnailPatched bool) (string, string, error) {
	if !thumbnailPatched && oldThumbnail == media.ThumbnailURL(oldID) {
		newThumbnail = ""
	}
	return deriveYouTube(newURL, newThumbnail)
}
