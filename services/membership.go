package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/models"
)

// The helpers below take the Database they run against so that callers can
// make them part of a larger transaction.

// attach appends an item to the carousel at slot, creating the carousel on demand
func attach(ctx context.Context, d database.Database, slot Slot, input models.CarouselItemInput) (*models.CarouselItem, error) {
	carousel, err := d.CarouselRepo().Ensure(ctx, slot.Input())
	if err != nil {
		return nil, err
	}
	return appendItem(ctx, d, carousel.ID, input)
}

// appendItem locks the carousel and inserts input, at the end unless an index is given
func appendItem(ctx context.Context, d database.Database, carouselID uuid.UUID, input models.CarouselItemInput) (*models.CarouselItem, error) {
	if _, err := d.CarouselRepo().FindByIDForUpdate(ctx, carouselID); err != nil {
		return nil, err
	}

	orderIndex := 0
	if input.OrderIndex != nil {
		orderIndex = *input.OrderIndex
	} else {
		maxIndex, found, err := d.CarouselItemRepo().MaxOrderIndex(ctx, carouselID)
		if err != nil {
			return nil, err
		}
		if found {
			orderIndex = maxIndex + 1
		}
	}

	item := input.ToItem(carouselID, orderIndex)
	if err := d.CarouselItemRepo().CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// detach removes the membership of refID in the carousel at slot. Missing carousels or items are fine.
func detach(ctx context.Context, d database.Database, slot Slot, kind models.ItemKind, refID uuid.UUID) error {
	carousel, found, err := d.CarouselRepo().FindByPageSlug(ctx, slot.Page, slot.Slug)
	if err != nil || !found {
		return err
	}
	item, found, err := d.CarouselItemRepo().FindItemInCarousel(ctx, carousel.ID, kind, refID)
	if err != nil || !found {
		return err
	}
	return d.CarouselItemRepo().DeleteItem(ctx, item.ID)
}

// membership returns the item tying refID to the carousel at slot, if any, active or not
func membership(ctx context.Context, d database.Database, slot Slot, kind models.ItemKind, refID uuid.UUID) (*models.CarouselItem, bool, error) {
	carousel, found, err := d.CarouselRepo().FindByPageSlug(ctx, slot.Page, slot.Slug)
	if err != nil || !found {
		return nil, false, err
	}
	return d.CarouselItemRepo().FindItemInCarousel(ctx, carousel.ID, kind, refID)
}

// slotItems returns the active items at slot in display order; a missing carousel is empty
func slotItems(ctx context.Context, d database.Database, slot Slot) ([]models.CarouselItem, error) {
	items, err := slotMembers(ctx, d, slot)
	if err != nil {
		return nil, err
	}
	return ActiveItems(items), nil
}

// slotMembers returns every item at slot in display order, inactive ones
// included. Membership flags such as IsBeginner are read from these.
func slotMembers(ctx context.Context, d database.Database, slot Slot) ([]models.CarouselItem, error) {
	carousel, found, err := d.CarouselRepo().FindByPageSlug(ctx, slot.Page, slot.Slug)
	if err != nil || !found {
		return []models.CarouselItem{}, err
	}
	items, err := d.CarouselItemRepo().ListItems(ctx, carousel.ID)
	if err != nil {
		return nil, err
	}
	return SortItems(items), nil
}

// setFeatured leaves exactly one active item in the carousel at slot.
// The carousel row lock serializes concurrent callers.
func setFeatured(ctx context.Context, d database.Database, slot Slot, input models.CarouselItemInput) (*models.CarouselItem, error) {
	carousel, err := d.CarouselRepo().Ensure(ctx, slot.Input())
	if err != nil {
		return nil, err
	}
	if _, err := d.CarouselRepo().FindByIDForUpdate(ctx, carousel.ID); err != nil {
		return nil, err
	}
	if _, err := d.CarouselItemRepo().DeleteItemsByCarousel(ctx, carousel.ID); err != nil {
		return nil, err
	}

	active := true
	input.IsActive = &active
	item := input.ToItem(carousel.ID, 0)
	if err := d.CarouselItemRepo().CreateItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// featuredRef returns the entity id held by the featured carousel at slot
func featuredRef(ctx context.Context, d database.Database, slot Slot) (uuid.UUID, bool, error) {
	items, err := slotItems(ctx, d, slot)
	if err != nil {
		return uuid.Nil, false, err
	}
	if len(items) == 0 || items[0].RefID == nil {
		return uuid.Nil, false, nil
	}
	return *items[0].RefID, true, nil
}

// removeFeatured empties the featured carousel at slot. Calling it on an empty or missing carousel is not an error.
func removeFeatured(ctx context.Context, d database.Database, slot Slot) error {
	carousel, found, err := d.CarouselRepo().FindByPageSlug(ctx, slot.Page, slot.Slug)
	if err != nil || !found {
		return err
	}
	_, err = d.CarouselItemRepo().DeleteItemsByCarousel(ctx, carousel.ID)
	return err
}
