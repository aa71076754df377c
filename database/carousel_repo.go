package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CarouselRepo struct {
	db *gorm.DB
}

func NewCarouselRepo(db *gorm.DB) *CarouselRepo {
	return &CarouselRepo{db}
}

// FindByPageSlug looks a carousel up by its slot. Absence is reported through found, not err.
func (r *CarouselRepo) FindByPageSlug(ctx context.Context, page, slug string) (*models.Carousel, bool, error) {
	var carousel models.Carousel
	err := r.db.WithContext(ctx).Where("page = ? AND slug = ?", page, slug).First(&carousel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewDatabaseError("find", "carousel", err)
	}
	return &carousel, true, nil
}

// Create inserts a carousel and fails with errs.ErrAlreadyExists when the slot is taken
func (r *CarouselRepo) Create(ctx context.Context, carousel *models.Carousel) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(carousel).Error
	if errs.IsUniqueViolation(err) {
		return errs.NewAlreadyExists("carousel")
	}
	if err != nil {
		return errs.NewDatabaseError("create", "carousel", err)
	}
	return nil
}

// Ensure returns the carousel for the slot, creating it from input when absent.
// Concurrent callers converge on the same row.
func (r *CarouselRepo) Ensure(ctx context.Context, input models.CarouselInput) (*models.Carousel, error) {
	carousel := input.ToCarousel()
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "page"}, {Name: "slug"}},
			DoNothing: true,
		}).
		Create(&carousel).Error
	if err != nil {
		return nil, errs.NewDatabaseError("create", "carousel", err)
	}

	existing, found, err := r.FindByPageSlug(ctx, input.Page, input.Slug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewInternalError("carousel vanished after create")
	}
	return existing, nil
}

// FindByID returns the carousel or errs.ErrNotFound
func (r *CarouselRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Carousel, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

// FindByIDForUpdate locks the carousel row until the surrounding transaction ends
func (r *CarouselRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Carousel, error) {
	return r.findByID(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *CarouselRepo) findByID(db *gorm.DB, id uuid.UUID) (*models.Carousel, error) {
	var carousel models.Carousel
	err := db.First(&carousel, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("carousel")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "carousel", err)
	}
	return &carousel, nil
}

// Update applies the header fields set on patch
func (r *CarouselRepo) Update(ctx context.Context, id uuid.UUID, patch models.CarouselPatch) (*models.Carousel, error) {
	updates := patch.Updates()
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&models.Carousel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errs.NewDatabaseError("update", "carousel", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound("carousel")
	}
	return r.FindByID(ctx, id)
}

// FindAll returns every carousel without items, in insertion order
func (r *CarouselRepo) FindAll(ctx context.Context) ([]models.Carousel, error) {
	carousels := []models.Carousel{}
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&carousels).Error; err != nil {
		return nil, errs.NewDatabaseError("list", "carousel", err)
	}
	return carousels, nil
}

// ReplaceAll swaps every carousel row for carousels. Items must already be cleared.
func (r *CarouselRepo) ReplaceAll(ctx context.Context, carousels []models.Carousel) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("1 = 1").Delete(&models.Carousel{}).Error; err != nil {
		return errs.NewDatabaseError("clear", "carousel", err)
	}
	if len(carousels) == 0 {
		return nil
	}
	if err := db.Omit(clause.Associations).CreateInBatches(carousels, 100).Error; err != nil {
		return errs.NewDatabaseError("restore", "carousel", err)
	}
	return nil
}
