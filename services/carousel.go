package services

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rpupo63/lifestyle-cms-backend/slug"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type CarouselService struct {
	db     database.Database
	logger zerolog.Logger
}

func NewCarouselService(db database.Database) *CarouselService {
	return &CarouselService{
		db:     db,
		logger: log.With().Str("service", "carousel").Logger(),
	}
}

// Find looks a carousel up by slot. A missing carousel is reported through found.
func (s *CarouselService) Find(ctx context.Context, page, slotSlug string) (*models.Carousel, bool, error) {
	return s.db.CarouselRepo().FindByPageSlug(ctx, slug.From(page), slug.From(slotSlug))
}

// List returns every carousel, or only those of page when page is set
func (s *CarouselService) List(ctx context.Context, page string) ([]models.Carousel, error) {
	carousels, err := s.db.CarouselRepo().FindAll(ctx)
	if err != nil || page == "" {
		return carousels, err
	}
	page = slug.From(page)
	filtered := make([]models.Carousel, 0, len(carousels))
	for _, c := range carousels {
		if c.Page == page {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *CarouselService) Get(ctx context.Context, id uuid.UUID) (*models.Carousel, error) {
	return s.db.CarouselRepo().FindByID(ctx, id)
}

// Create adds a carousel; an occupied slot fails with errs.ErrAlreadyExists
func (s *CarouselService) Create(ctx context.Context, input models.CarouselInput) (*models.Carousel, error) {
	input, err := normalizeCarouselInput(input)
	if err != nil {
		return nil, err
	}
	carousel := input.ToCarousel()
	if err := s.db.CarouselRepo().Create(ctx, &carousel); err != nil {
		return nil, err
	}
	s.logger.Info().Str("page", carousel.Page).Str("slug", carousel.Slug).Msg("Carousel created")
	return &carousel, nil
}

// Ensure returns the carousel for the slot, creating it when absent
func (s *CarouselService) Ensure(ctx context.Context, input models.CarouselInput) (*models.Carousel, error) {
	input, err := normalizeCarouselInput(input)
	if err != nil {
		return nil, err
	}
	return s.db.CarouselRepo().Ensure(ctx, input)
}

func (s *CarouselService) Update(ctx context.Context, id uuid.UUID, patch models.CarouselPatch) (*models.Carousel, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, errs.NewInvalidFieldError("title", "must not be empty")
	}
	return s.db.CarouselRepo().Update(ctx, id, patch)
}

// Items returns the items of a carousel in display order
func (s *CarouselService) Items(ctx context.Context, carouselID uuid.UUID) ([]models.CarouselItem, error) {
	if _, err := s.db.CarouselRepo().FindByID(ctx, carouselID); err != nil {
		return nil, err
	}
	items, err := s.db.CarouselItemRepo().ListItems(ctx, carouselID)
	if err != nil {
		return nil, err
	}
	return SortItems(items), nil
}

// AddItem validates and attaches an item. Without an order_index it goes last.
func (s *CarouselService) AddItem(ctx context.Context, carouselID uuid.UUID, input models.CarouselItemInput) (*models.CarouselItem, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	var item *models.CarouselItem
	err := s.db.Transaction(ctx, "add carousel item", func(tx database.Database) error {
		var err error
		item, err = appendItem(ctx, tx, carouselID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CarouselService) UpdateItem(ctx context.Context, id uuid.UUID, patch models.CarouselItemPatch) (*models.CarouselItem, error) {
	return s.db.CarouselItemRepo().UpdateItem(ctx, id, patch)
}

// DeleteItem removes an item; deleting a missing item succeeds
func (s *CarouselService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.db.CarouselItemRepo().DeleteItem(ctx, id)
}

// Reorder rewrites the order of a carousel to follow ids, which must list every item exactly once
func (s *CarouselService) Reorder(ctx context.Context, carouselID uuid.UUID, ids []uuid.UUID) ([]models.CarouselItem, error) {
	reordered := make([]models.CarouselItem, 0, len(ids))
	err := s.db.Transaction(ctx, "reorder carousel", func(tx database.Database) error {
		if _, err := tx.CarouselRepo().FindByIDForUpdate(ctx, carouselID); err != nil {
			return err
		}
		items, err := tx.CarouselItemRepo().ListItems(ctx, carouselID)
		if err != nil {
			return err
		}
		if len(ids) != len(items) {
			return errs.NewInvalidFieldError("ids", "must list every item of the carousel exactly once")
		}

		known := make(map[uuid.UUID]bool, len(items))
		for _, item := range items {
			known[item.ID] = true
		}
		for i, id := range ids {
			if !known[id] {
				return errs.NewInvalidFieldError("ids", "unknown or repeated item "+id.String())
			}
			delete(known, id)

			index := i
			updated, err := tx.CarouselItemRepo().UpdateItem(ctx, id, models.CarouselItemPatch{OrderIndex: &index})
			if err != nil {
				return err
			}
			reordered = append(reordered, *updated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reordered, nil
}

// SetFeatured replaces whatever the featured carousel at slot holds with one active item
func (s *CarouselService) SetFeatured(ctx context.Context, slot Slot, input models.CarouselItemInput) (*models.CarouselItem, error) {
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	var item *models.CarouselItem
	err := s.db.Transaction(ctx, "set featured", func(tx database.Database) error {
		var err error
		item, err = setFeatured(ctx, tx, slot, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("slot", slot.String()).Str("itemID", item.ID.String()).Msg("Featured item set")
	return item, nil
}

// Featured returns the item held by the featured carousel at slot, if any
func (s *CarouselService) Featured(ctx context.Context, slot Slot) (*models.CarouselItem, bool, error) {
	items, err := slotItems(ctx, s.db, slot)
	if err != nil {
		return nil, false, err
	}
	if len(items) == 0 {
		return nil, false, nil
	}
	return &items[0], true, nil
}

// RemoveFeatured empties the featured carousel at slot. It is idempotent.
func (s *CarouselService) RemoveFeatured(ctx context.Context, slot Slot) error {
	return removeFeatured(ctx, s.db, slot)
}

func normalizeCarouselInput(input models.CarouselInput) (models.CarouselInput, error) {
	input.Page = slug.From(input.Page)
	input.Slug = slug.From(input.Slug)
	input.Title = strings.TrimSpace(input.Title)

	if input.Page == "" {
		return input, errs.NewMissingRequiredFieldError("page")
	}
	if input.Slug == "" {
		return input, errs.NewMissingRequiredFieldError("slug")
	}
	if input.Title == "" {
		return input, errs.NewMissingRequiredFieldError("title")
	}
	return input, nil
}

func validateItemInput(input models.CarouselItemInput) error {
	if input.Kind == "" {
		return errs.NewMissingRequiredFieldError("kind")
	}
	if !input.Kind.Valid() {
		return errs.NewInvalidFieldError("kind", "must be one of video, album, tiktok, recipe")
	}

	switch input.Kind {
	case models.ItemKindVideo:
		if isBlank(input.YoutubeID) {
			return errs.NewMissingRequiredFieldError("youtube_id")
		}
	case models.ItemKindTikTok:
		if isBlank(input.LinkURL) {
			return errs.NewMissingRequiredFieldError("link_url")
		}
	case models.ItemKindAlbum, models.ItemKindRecipe:
		if input.RefID == nil || *input.RefID == uuid.Nil {
			return errs.NewMissingRequiredFieldError("ref_id")
		}
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// SortItems returns items ordered by order_index, ties kept in insertion order
func SortItems(items []models.CarouselItem) []models.CarouselItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b models.CarouselItem) int {
		if c := cmp.Compare(a.OrderIndex, b.OrderIndex); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return sorted
}

// ActiveItems drops inactive items
func ActiveItems(items []models.CarouselItem) []models.CarouselItem {
	active := make([]models.CarouselItem, 0, len(items))
	for _, item := range items {
		if item.IsActive {
			active = append(active, item)
		}
	}
	return active
}

// Limit truncates items to n; n <= 0 keeps everything
func Limit[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
