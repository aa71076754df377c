package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// resourceService is the CRUD surface every domain service exposes
type resourceService[T, P any] interface {
	GetAll(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Add(ctx context.Context, entity T) (*T, error)
	Update(ctx context.Context, id uuid.UUID, patch P) (*T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// resourceHandler serves /api/<resource> for one domain service. Responses are
// enveloped as {"<singular>": T} and {"<plural>": [T]}.
type resourceHandler[T, P any] struct {
	responder Responder
	logger    zerolog.Logger
	service   resourceService[T, P]
	singular  string
	plural    string
	defaults  func() T
	list      func(r *http.Request) ([]T, error)
}

type resourceOption[T, P any] func(*resourceHandler[T, P])

// withDefaults sets the template a create request body is decoded over
func withDefaults[T, P any](defaults func() T) resourceOption[T, P] {
	return func(h *resourceHandler[T, P]) {
		h.defaults = defaults
	}
}

// withListFilter replaces GetAll for list requests, usually to honour query filters
func withListFilter[T, P any](list func(r *http.Request) ([]T, error)) resourceOption[T, P] {
	return func(h *resourceHandler[T, P]) {
		h.list = list
	}
}

func newResourceHandler[T, P any](singular, plural string, service resourceService[T, P], opts ...resourceOption[T, P]) resourceHandler[T, P] {
	logger := log.With().Str("handlerName", "resourceHandler").Str("resource", plural).Logger()

	h := resourceHandler[T, P]{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
		singular:  singular,
		plural:    plural,
		defaults:  func() T { var zero T; return zero },
	}
	h.list = func(r *http.Request) ([]T, error) { return service.GetAll(r.Context()) }
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

func (h resourceHandler[T, P]) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.list(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{h.plural: rows})
	}
}

func (h resourceHandler[T, P]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		row, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{h.singular: row})
	}
}

func (h resourceHandler[T, P]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := h.defaults()
		if err := decodeBody(w, r, h.singular, &entity); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode create request body")
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.service.Add(r.Context(), entity)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{h.singular: created})
	}
}

func (h resourceHandler[T, P]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch P
		if err := decodeBody(w, r, h.singular, &patch); err != nil {
			h.logger.Warn().Err(err).Str("id", id.String()).Msg("Failed to decode update request body")
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.service.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{h.singular: updated})
	}
}

func (h resourceHandler[T, P]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: fmt.Sprintf("%s deleted successfully", h.singular),
		})
	}
}
