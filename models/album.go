package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PhotoAlbum groups photo paths under a cover image
type PhotoAlbum struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text;not null;default:''"`
	CoverPath   *string        `json:"cover_path,omitempty" gorm:"type:text"`
	Photos      datatypes.JSON `json:"photos,omitempty"`
	OrderIndex  int            `json:"order_index" gorm:"type:integer;not null;default:0"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	CoverURL string `json:"cover_url,omitempty" gorm:"-"`
}

func (a *PhotoAlbum) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type PhotoAlbumPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	CoverPath   *string         `json:"cover_path,omitempty"`
	Photos      *datatypes.JSON `json:"photos,omitempty"`
	OrderIndex  *int            `json:"order_index,omitempty"`
}

func (p PhotoAlbumPatch) Apply(a *PhotoAlbum) {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.CoverPath != nil {
		a.CoverPath = p.CoverPath
	}
	if p.Photos != nil {
		a.Photos = *p.Photos
	}
	if p.OrderIndex != nil {
		a.OrderIndex = *p.OrderIndex
	}
}
