package database

import (
	"context"
	"errors"

	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	carouselRepo          *CarouselRepo
	carouselItemRepo      *CarouselItemRepo
	vlogRepo              *VlogRepo
	healingVideoRepo      *HealingVideoRepo
	healingProductRepo    *HealingProductRepo
	storefrontProductRepo *StorefrontProductRepo
	playlistRepo          *PlaylistRepo
	albumRepo             *AlbumRepo
	recipeRepo            *RecipeRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		carouselRepo:          NewCarouselRepo(db),
		carouselItemRepo:      NewCarouselItemRepo(db),
		vlogRepo:              NewVlogRepo(db),
		healingVideoRepo:      NewHealingVideoRepo(db),
		healingProductRepo:    NewHealingProductRepo(db),
		storefrontProductRepo: NewStorefrontProductRepo(db),
		playlistRepo:          NewPlaylistRepo(db),
		albumRepo:             NewAlbumRepo(db),
		recipeRepo:            NewRecipeRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CarouselRepo() *CarouselRepo {
	return d.carouselRepo
}

func (d Database) CarouselItemRepo() *CarouselItemRepo {
	return d.carouselItemRepo
}

func (d Database) VlogRepo() *VlogRepo {
	return d.vlogRepo
}

func (d Database) HealingVideoRepo() *HealingVideoRepo {
	return d.healingVideoRepo
}

func (d Database) HealingProductRepo() *HealingProductRepo {
	return d.healingProductRepo
}

func (d Database) StorefrontProductRepo() *StorefrontProductRepo {
	return d.storefrontProductRepo
}

func (d Database) PlaylistRepo() *PlaylistRepo {
	return d.playlistRepo
}

func (d Database) AlbumRepo() *AlbumRepo {
	return d.albumRepo
}

func (d Database) RecipeRepo() *RecipeRepo {
	return d.recipeRepo
}

// GetDB returns the underlying database connection
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Transaction runs fn with every repository bound to a single transaction.
// Any error returned by fn rolls the transaction back.
func (d Database) Transaction(ctx context.Context, operation string, fn func(tx Database) error) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
	if err == nil {
		return nil
	}

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return err
	}
	return errs.NewTransactionFailedError(operation, err)
}

// Ping checks that the database answers queries
func (d Database) Ping(ctx context.Context) error {
	var result int
	if err := d.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return errs.NewDatabaseError("ping", "database", err)
	}
	return nil
}

// Migrate creates or updates the tables for every model
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}
