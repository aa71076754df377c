package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"gorm.io/gorm"
)

type CarouselItemRepo struct {
	db *gorm.DB
}

func NewCarouselItemRepo(db *gorm.DB) *CarouselItemRepo {
	return &CarouselItemRepo{db}
}

// ListItems returns the items of a carousel in storage order. Callers sort by order_index.
func (r *CarouselItemRepo) ListItems(ctx context.Context, carouselID uuid.UUID) ([]models.CarouselItem, error) {
	items := []models.CarouselItem{}
	if err := r.db.WithContext(ctx).Where("carousel_id = ?", carouselID).Find(&items).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "carousel item", err)
	}
	return items, nil
}

// CreateItem inserts one item. Duplicate order indices are allowed.
func (r *CarouselItemRepo) CreateItem(ctx context.Context, item *models.CarouselItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return errs.NewDatabaseError("create", "carousel item", err)
	}
	return nil
}

func (r *CarouselItemRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*models.CarouselItem, error) {
	var item models.CarouselItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("carousel item")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "carousel item", err)
	}
	return &item, nil
}

// UpdateItem applies the mutable fields set on patch
func (r *CarouselItemRepo) UpdateItem(ctx context.Context, id uuid.UUID, patch models.CarouselItemPatch) (*models.CarouselItem, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		return r.FindItemByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&models.CarouselItem{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errs.NewDatabaseError("update", "carousel item", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("carousel item")
	}
	return r.FindItemByID(ctx, id)
}

// DeleteItem hard deletes an item. Deleting a missing id is not an error.
func (r *CarouselItemRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CarouselItem{}).Error; err != nil {
		return errs.NewDatabaseError("delete", "carousel item", err)
	}
	return nil
}

// DeleteItemsByCarousel empties a carousel and reports how many items went
func (r *CarouselItemRepo) DeleteItemsByCarousel(ctx context.Context, carouselID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("carousel_id = ?", carouselID).Delete(&models.CarouselItem{})
	if result.Error != nil {
		return 0, errs.NewDatabaseError("delete", "carousel item", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteItemsByRef removes every membership of a domain entity, in any carousel
func (r *CarouselItemRepo) DeleteItemsByRef(ctx context.Context, kind models.ItemKind, refID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("kind = ? AND ref_id = ?", kind, refID).Delete(&models.CarouselItem{})
	if result.Error != nil {
		return 0, errs.NewDatabaseError("delete", "carousel item", result.Error)
	}
	return result.RowsAffected, nil
}

// FindItemsByRef returns every membership of a domain entity, in any carousel
func (r *CarouselItemRepo) FindItemsByRef(ctx context.Context, kind models.ItemKind, refID uuid.UUID) ([]models.CarouselItem, error) {
	items := []models.CarouselItem{}
	err := r.db.WithContext(ctx).Where("kind = ? AND ref_id = ?", kind, refID).Find(&items).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", "carousel item", err)
	}
	return items, nil
}

// FindItemInCarousel looks up the membership of one entity in one carousel
func (r *CarouselItemRepo) FindItemInCarousel(ctx context.Context, carouselID uuid.UUID, kind models.ItemKind, refID uuid.UUID) (*models.CarouselItem, bool, error) {
	var item models.CarouselItem
	err := r.db.WithContext(ctx).
		Where("carousel_id = ? AND kind = ? AND ref_id = ?", carouselID, kind, refID).
		Order("created_at ASC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewDatabaseError("find", "carousel item", err)
	}
	return &item, true, nil
}

// MaxOrderIndex returns the highest order_index in a carousel; found is false when it is empty
func (r *CarouselItemRepo) MaxOrderIndex(ctx context.Context, carouselID uuid.UUID) (int, bool, error) {
	var maxIndex sql.NullInt64
	row := r.db.WithContext(ctx).
		Model(&models.CarouselItem{}).
		Where("carousel_id = ?", carouselID).
		Select("MAX(order_index)").
		Row()
	if err := row.Scan(&maxIndex); err != nil {
		return 0, false, errs.NewDatabaseError("query", "carousel item", err)
	}
	if !maxIndex.Valid {
		return 0, false, nil
	}
	return int(maxIndex.Int64), true, nil
}

// FindAll returns every item of every carousel, in insertion order
func (r *CarouselItemRepo) FindAll(ctx context.Context) ([]models.CarouselItem, error) {
	items := []models.CarouselItem{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "carousel item", err)
	}
	return items, nil
}

// ReplaceAll swaps every item row for items. Run it inside a transaction.
func (r *CarouselItemRepo) ReplaceAll(ctx context.Context, items []models.CarouselItem) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&models.CarouselItem{}).Error; err != nil {
		return errs.NewDatabaseError("clear", "carousel item", err)
	}
	if len(items) == 0 {
		return nil
	}
	if err := db.CreateInBatches(items, 100).Error; err != nil {
		return errs.NewDatabaseError("restore", "carousel item", err)
	}
	return nil
}
