package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealingVideo is a video on the healing page. Its display order lives on the
// carousel item that attaches it to its part's carousel.
type HealingVideo struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string    `json:"title" gorm:"type:text;not null"`
	Description  string    `json:"description" gorm:"type:text;not null;default:''"`
	YoutubeURL   string    `json:"youtube_url" gorm:"type:text;not null"`
	YoutubeID    string    `json:"youtube_id" gorm:"type:text;not null"`
	ThumbnailURL string    `json:"thumbnail_url" gorm:"type:text;not null"`
	Part         int       `json:"part" gorm:"type:integer;not null;default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	OrderIndex          int    `json:"order_index" gorm:"-"`
	DisplayThumbnailURL string `json:"display_thumbnail_url,omitempty" gorm:"-"`
}

func (v *HealingVideo) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

type HealingVideoPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	YoutubeURL   *string `json:"youtube_url,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Part         *int    `json:"part,omitempty"`
}

func (p HealingVideoPatch) Apply(v *HealingVideo) {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.Description != nil {
		v.Description = *p.Description
	}
	if p.YoutubeURL != nil {
		v.YoutubeURL = *p.YoutubeURL
	}
	if p.ThumbnailURL != nil {
		v.ThumbnailURL = *p.ThumbnailURL
	}
	if p.Part != nil {
		v.Part = *p.Part
	}
}

// HealingProduct is an affiliate product recommended on the healing page
type HealingProduct struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string    `json:"title" gorm:"type:text;not null"`
	Description  string    `json:"description" gorm:"type:text;not null;default:''"`
	ImagePath    *string   `json:"image_path,omitempty" gorm:"type:text"`
	AffiliateURL string    `json:"affiliate_url" gorm:"type:text;not null;default:''"`
	Price        string    `json:"price" gorm:"type:text;not null;default:''"`
	OrderIndex   int       `json:"order_index" gorm:"type:integer;not null;default:0"`
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	ImageURL string `json:"image_url,omitempty" gorm:"-"`
}

func (p *HealingProduct) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type HealingProductPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	ImagePath    *string `json:"image_path,omitempty"`
	AffiliateURL *string `json:"affiliate_url,omitempty"`
	Price        *string `json:"price,omitempty"`
	OrderIndex   *int    `json:"order_index,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (p HealingProductPatch) Apply(hp *HealingProduct) {
	if p.Title != nil {
		hp.Title = *p.Title
	}
	if p.Description != nil {
		hp.Description = *p.Description
	}
	if p.ImagePath != nil {
		hp.ImagePath = p.ImagePath
	}
	if p.AffiliateURL != nil {
		hp.AffiliateURL = *p.AffiliateURL
	}
	if p.Price != nil {
		hp.Price = *p.Price
	}
	if p.OrderIndex != nil {
		hp.OrderIndex = *p.OrderIndex
	}
	if p.IsActive != nil {
		hp.IsActive = *p.IsActive
	}
}
