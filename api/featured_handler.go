package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rs/zerolog/log"
)

type featuredService[T any] interface {
	SetFeatured(ctx context.Context, id uuid.UUID) (*T, error)
	Featured(ctx context.Context) (*T, bool, error)
	RemoveFeatured(ctx context.Context) error
}

// featuredHandler serves /api/<resource>/featured. With nothing featured the
// envelope holds null.
type featuredHandler[T any] struct {
	responder Responder
	service   featuredService[T]
	singular  string
}

type featuredRequest struct {
	ID uuid.UUID `json:"id"`
}

func newFeaturedHandler[T any](singular string, service featuredService[T]) featuredHandler[T] {
	logger := log.With().Str("handlerName", "featuredHandler").Str("resource", singular).Logger()
	return featuredHandler[T]{
		responder: NewResponder(logger),
		service:   service,
		singular:  singular,
	}
}

func (h featuredHandler[T]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		featured, found, err := h.service.Featured(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !found {
			h.responder.WriteJSON(w, map[string]any{h.singular: nil})
			return
		}
		h.responder.WriteJSON(w, map[string]any{h.singular: featured})
	}
}

func (h featuredHandler[T]) set() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req featuredRequest
		if err := decodeBody(w, r, "featured", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if req.ID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("id"))
			return
		}

		featured, err := h.service.SetFeatured(r.Context(), req.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{h.singular: featured})
	}
}

func (h featuredHandler[T]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.RemoveFeatured(r.Context()); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "featured " + h.singular + " removed",
		})
	}
}
