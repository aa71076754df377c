package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemKind tags what a carousel item points at. The set is closed.
type ItemKind string

const (
	ItemKindVideo  ItemKind = "video"
	ItemKindAlbum  ItemKind = "album"
	ItemKindTikTok ItemKind = "tiktok"
	ItemKindRecipe ItemKind = "recipe"
)

// Valid reports whether k is one of the known item kinds
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindVideo, ItemKindAlbum, ItemKindTikTok, ItemKindRecipe:
		return true
	}
	return false
}

// Carousel is a named, ordered slot of items attached to one page
type Carousel struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Page        string         `json:"page" gorm:"type:text;not null;uniqueIndex:idx_carousel_page_slug"`
	Slug        string         `json:"slug" gorm:"type:text;not null;uniqueIndex:idx_carousel_page_slug"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description *string        `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool           `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Items       []CarouselItem `json:"items,omitempty" gorm:"foreignKey:CarouselID;references:ID"`
}

func (c *Carousel) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CarouselItem is one entry in a carousel. RefID points at a domain entity when the
// item represents one; standalone items (TikToks) carry only a link.
type CarouselItem struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CarouselID uuid.UUID  `json:"carousel_id" gorm:"type:uuid;not null;index:idx_carousel_item_carousel_id"`
	Kind       ItemKind   `json:"kind" gorm:"type:text;not null;index:idx_carousel_item_ref,priority:1"`
	OrderIndex int        `json:"order_index" gorm:"type:integer;not null;default:0"`
	IsActive   bool       `json:"is_active" gorm:"not null"`
	YoutubeID  *string    `json:"youtube_id,omitempty" gorm:"type:text"`
	LinkURL    *string    `json:"link_url,omitempty" gorm:"type:text"`
	RefID      *uuid.UUID `json:"ref_id,omitempty" gorm:"type:uuid;index:idx_carousel_item_ref,priority:2"`
	ImagePath  *string    `json:"image_path,omitempty" gorm:"type:text"`
	Caption    *string    `json:"caption,omitempty" gorm:"type:text"`
	Badge      *string    `json:"badge,omitempty" gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (i *CarouselItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CarouselInput is the payload for creating a carousel. IsActive defaults to true.
type CarouselInput struct {
	Page        string  `json:"page"`
	Slug        string  `json:"slug"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (in CarouselInput) ToCarousel() Carousel {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return Carousel{
		Page:        in.Page,
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
		IsActive:    active,
	}
}

// CarouselPatch holds the editable header fields of a carousel
type CarouselPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// Updates returns the column map for the fields set on the patch
func (p CarouselPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	return updates
}

// CarouselItemInput is the payload for attaching an item. A nil OrderIndex appends the item.
type CarouselItemInput struct {
	Kind       ItemKind   `json:"kind"`
	OrderIndex *int       `json:"order_index,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
	YoutubeID  *string    `json:"youtube_id,omitempty"`
	LinkURL    *string    `json:"link_url,omitempty"`
	RefID      *uuid.UUID `json:"ref_id,omitempty"`
	ImagePath  *string    `json:"image_path,omitempty"`
	Caption    *string    `json:"caption,omitempty"`
	Badge      *string    `json:"badge,omitempty"`
}

func (in CarouselItemInput) ToItem(carouselID uuid.UUID, orderIndex int) CarouselItem {
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return CarouselItem{
		CarouselID: carouselID,
		Kind:       in.Kind,
		OrderIndex: orderIndex,
		IsActive:   active,
		YoutubeID:  in.YoutubeID,
		LinkURL:    in.LinkURL,
		RefID:      in.RefID,
		ImagePath:  in.ImagePath,
		Caption:    in.Caption,
		Badge:      in.Badge,
	}
}

// CarouselItemPatch holds the mutable fields of a carousel item
type CarouselItemPatch struct {
	Caption    *string `json:"caption,omitempty"`
	OrderIndex *int    `json:"order_index,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
	ImagePath  *string `json:"image_path,omitempty"`
	LinkURL    *string `json:"link_url,omitempty"`
	Badge      *string `json:"badge,omitempty"`
	YoutubeID  *string `json:"youtube_id,omitempty"`
}

func (p CarouselItemPatch) Updates() map[string]any {
	updates := map[string]any{}
	if p.Caption != nil {
		updates["caption"] = *p.Caption
	}
	if p.OrderIndex != nil {
		updates["order_index"] = *p.OrderIndex
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	if p.ImagePath != nil {
		updates["image_path"] = *p.ImagePath
	}
	if p.LinkURL != nil {
		updates["link_url"] = *p.LinkURL
	}
	if p.Badge != nil {
		updates["badge"] = *p.Badge
	}
	if p.YoutubeID != nil {
		updates["youtube_id"] = *p.YoutubeID
	}
	return updates
}
