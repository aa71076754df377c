package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vlog carousels are a discriminant on the vlog row, not carousel items
const (
	VlogCarouselMain           = "main-channel"
	VlogCarouselBehindTheScene = "behind-the-scenes"
)

// VlogVideo is a YouTube vlog shown on the vlogs page
type VlogVideo struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string     `json:"title" gorm:"type:text;not null"`
	Description  string     `json:"description" gorm:"type:text;not null;default:''"`
	YoutubeURL   string     `json:"youtube_url" gorm:"type:text;not null"`
	YoutubeID    string     `json:"youtube_id" gorm:"type:text;not null"`
	ThumbnailURL string     `json:"thumbnail_url" gorm:"type:text;not null"`
	Carousel     string     `json:"carousel" gorm:"type:text;not null;index:idx_vlog_carousel"`
	OrderIndex   int        `json:"order_index" gorm:"type:integer;not null;default:0"`
	PublishedAt  *time.Time `json:"published_at,omitempty" gorm:"type:timestamp"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	DisplayThumbnailURL string `json:"display_thumbnail_url,omitempty" gorm:"-"`
}

func (v *VlogVideo) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VlogPatch lists the fields an update may change
type VlogPatch struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	YoutubeURL   *string    `json:"youtube_url,omitempty"`
	ThumbnailURL *string    `json:"thumbnail_url,omitempty"`
	Carousel     *string    `json:"carousel,omitempty"`
	OrderIndex   *int       `json:"order_index,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

// Apply merges the patch into v. Derived fields are left to the caller.
func (p VlogPatch) Apply(v *VlogVideo) {
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
	if p.Carousel != nil {
		v.Carousel = *p.Carousel
	}
	if p.OrderIndex != nil {
		v.OrderIndex = *p.OrderIndex
	}
	if p.PublishedAt != nil {
		v.PublishedAt = p.PublishedAt
	}
}
