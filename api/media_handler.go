package api

import (
	"net/http"

	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rs/zerolog/log"
)

type mediaHandler struct {
	responder Responder
	resolver  *media.Resolver
}

func newMediaHandler(resolver *media.Resolver) mediaHandler {
	logger := log.With().Str("handlerName", "mediaHandler").Logger()
	return mediaHandler{
		responder: NewResponder(logger),
		resolver:  resolver,
	}
}

// resolve turns ?thumbnail=&youtube_id= into a displayable URL
func (h mediaHandler) resolve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		var thumbnail *string
		if raw := query.Get("thumbnail"); raw != "" {
			thumbnail = &raw
		}
		url := h.resolver.Resolve(r.Context(), thumbnail, query.Get("youtube_id"))
		h.responder.WriteJSON(w, map[string]string{"url": url})
	}
}
