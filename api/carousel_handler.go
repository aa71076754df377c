package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rpupo63/lifestyle-cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type carouselHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.CarouselService
}

func newCarouselHandler(service *services.CarouselService) carouselHandler {
	logger := log.With().Str("handlerName", "carouselHandler").Logger()

	return carouselHandler{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

type reorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// listCarousels returns the carousel at ?page=&slug= (null when the slot is
// empty), or every carousel of ?page=, or every carousel.
func (h carouselHandler) listCarousels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		slotSlug := r.URL.Query().Get("slug")

		if page != "" && slotSlug != "" {
			carousel, found, err := h.service.Find(r.Context(), page, slotSlug)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if !found {
				h.responder.WriteJSON(w, map[string]any{"carousel": nil})
				return
			}
			h.responder.WriteJSON(w, map[string]any{"carousel": carousel})
			return
		}

		carousels, err := h.service.List(r.Context(), page)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"carousels": carousels})
	}
}

// createCarousel creates a carousel; ?ensure=true returns the existing one instead of a conflict
func (h carouselHandler) createCarousel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ensure, err := queryBool(r, "ensure")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.CarouselInput
		if err := decodeBody(w, r, "carousel", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if ensure {
			carousel, err := h.service.Ensure(r.Context(), input)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			h.responder.WriteJSON(w, map[string]any{"carousel": carousel})
			return
		}

		carousel, err := h.service.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"carousel": carousel})
	}
}

// getCarousel returns the carousel with its items in display order
func (h carouselHandler) getCarousel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		carousel, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if carousel.Items, err = h.service.Items(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"carousel": carousel})
	}
}

func (h carouselHandler) updateCarousel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.CarouselPatch
		if err := decodeBody(w, r, "carousel", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		carousel, err := h.service.Update(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"carousel": carousel})
	}
}

// listItems returns the items of a carousel in display order; ?active=true drops inactive ones
func (h carouselHandler) listItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		activeOnly, err := queryBool(r, "active")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		items, err := h.service.Items(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if activeOnly {
			items = services.ActiveItems(items)
		}
		h.responder.WriteJSON(w, map[string]any{"carousel_items": items})
	}
}

func (h carouselHandler) addItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input models.CarouselItemInput
		if err := decodeBody(w, r, "carousel_item", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.service.AddItem(r.Context(), id, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, map[string]any{"carousel_item": item})
	}
}

// reorderItems rewrites the order of a carousel from {"ids": [...]}
func (h carouselHandler) reorderItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req reorderRequest
		if err := decodeBody(w, r, "order", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		items, err := h.service.Reorder(r.Context(), id, req.IDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.logger.Info().Str("carouselID", id.String()).Int("items", len(items)).Msg("Carousel reordered")
		h.responder.WriteJSON(w, map[string]any{"carousel_items": items})
	}
}

func (h carouselHandler) updateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.CarouselItemPatch
		if err := decodeBody(w, r, "carousel_item", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.service.UpdateItem(r.Context(), id, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"carousel_item": item})
	}
}

func (h carouselHandler) deleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.DeleteItem(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, StatusResponse{
			Status:  "success",
			Message: "carousel item deleted successfully",
		})
	}
}
