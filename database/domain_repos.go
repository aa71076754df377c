package database

import (
	"context"

	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"gorm.io/gorm"
)

type VlogRepo struct {
	entityRepo[models.VlogVideo]
}

func NewVlogRepo(db *gorm.DB) *VlogRepo {
	return &VlogRepo{newEntityRepo[models.VlogVideo](db, "vlog")}
}

// FindByCarousel returns the vlogs tagged with the given vlog carousel
func (r *VlogRepo) FindByCarousel(ctx context.Context, carousel string) ([]models.VlogVideo, error) {
	vlogs := []models.VlogVideo{}
	err := r.db.WithContext(ctx).Where("carousel = ?", carousel).Order("created_at ASC, id ASC").Find(&vlogs).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", r.entity, err)
	}
	return vlogs, nil
}

type HealingVideoRepo struct {
	entityRepo[models.HealingVideo]
}

func NewHealingVideoRepo(db *gorm.DB) *HealingVideoRepo {
	return &HealingVideoRepo{newEntityRepo[models.HealingVideo](db, "healing video")}
}

type HealingProductRepo struct {
	entityRepo[models.HealingProduct]
}

func NewHealingProductRepo(db *gorm.DB) *HealingProductRepo {
	return &HealingProductRepo{newEntityRepo[models.HealingProduct](db, "healing product")}
}

type StorefrontProductRepo struct {
	entityRepo[models.StorefrontProduct]
}

func NewStorefrontProductRepo(db *gorm.DB) *StorefrontProductRepo {
	return &StorefrontProductRepo{newEntityRepo[models.StorefrontProduct](db, "storefront product")}
}

type PlaylistRepo struct {
	entityRepo[models.SpotifyPlaylist]
}

func NewPlaylistRepo(db *gorm.DB) *PlaylistRepo {
	return &PlaylistRepo{newEntityRepo[models.SpotifyPlaylist](db, "playlist")}
}

type AlbumRepo struct {
	entityRepo[models.PhotoAlbum]
}

func NewAlbumRepo(db *gorm.DB) *AlbumRepo {
	return &AlbumRepo{newEntityRepo[models.PhotoAlbum](db, "album")}
}

type RecipeRepo struct {
	entityRepo[models.Recipe]
}

func NewRecipeRepo(db *gorm.DB) *RecipeRepo {
	return &RecipeRepo{newEntityRepo[models.Recipe](db, "recipe")}
}
