package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StorefrontProduct is an affiliate product listed in the storefront
type StorefrontProduct struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Title        string        `json:"title" gorm:"type:text;not null"`
	Description  string        `json:"description" gorm:"type:text;not null;default:''"`
	Category     string        `json:"category" gorm:"type:text;not null;default:'';index:idx_storefront_category"`
	ImagePath    *string       `json:"image_path,omitempty" gorm:"type:text"`
	AffiliateURL string        `json:"affiliate_url" gorm:"type:text;not null;default:''"`
	Price        string        `json:"price" gorm:"type:text;not null;default:''"`
	Badge        *string       `json:"badge,omitempty" gorm:"type:text"`
	OrderIndex   int           `json:"order_index" gorm:"type:integer;not null;default:0"`
	Status       ContentStatus `json:"status" gorm:"type:text;not null;default:'draft'"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	ImageURL string `json:"image_url,omitempty" gorm:"-"`
}

func (p *StorefrontProduct) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type StorefrontProductPatch struct {
	Title        *string        `json:"title,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Category     *string        `json:"category,omitempty"`
	ImagePath    *string        `json:"image_path,omitempty"`
	AffiliateURL *string        `json:"affiliate_url,omitempty"`
	Price        *string        `json:"price,omitempty"`
	Badge        *string        `json:"badge,omitempty"`
	OrderIndex   *int           `json:"order_index,omitempty"`
	Status       *ContentStatus `json:"status,omitempty"`
}

func (p StorefrontProductPatch) Apply(sp *StorefrontProduct) {
	if p.Title != nil {
		sp.Title = *p.Title
	}
	if p.Description != nil {
		sp.Description = *p.Description
	}
	if p.Category != nil {
		sp.Category = *p.Category
	}
	if p.ImagePath != nil {
		sp.ImagePath = p.ImagePath
	}
	if p.AffiliateURL != nil {
		sp.AffiliateURL = *p.AffiliateURL
	}
	if p.Price != nil {
		sp.Price = *p.Price
	}
	if p.Badge != nil {
		sp.Badge = p.Badge
	}
	if p.OrderIndex != nil {
		sp.OrderIndex = *p.OrderIndex
	}
	if p.Status != nil {
		sp.Status = *p.Status
	}
}
