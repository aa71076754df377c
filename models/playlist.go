package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SpotifyPlaylist is an embeddable Spotify link (playlist or album)
type SpotifyPlaylist struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	Description string    `json:"description" gorm:"type:text;not null;default:''"`
	SpotifyURL  string    `json:"spotify_url" gorm:"type:text;not null"`
	SpotifyType string    `json:"spotify_type" gorm:"type:text;not null"`
	SpotifyID   string    `json:"spotify_id" gorm:"type:text;not null"`
	CoverPath   *string   `json:"cover_path,omitempty" gorm:"type:text"`
	OrderIndex  int       `json:"order_index" gorm:"type:integer;not null;default:0"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	EmbedURL string `json:"embed_url,omitempty" gorm:"-"`
	CoverURL string `json:"cover_url,omitempty" gorm:"-"`
}

func (p *SpotifyPlaylist) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type SpotifyPlaylistPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	SpotifyURL  *string `json:"spotify_url,omitempty"`
	CoverPath   *string `json:"cover_path,omitempty"`
	OrderIndex  *int    `json:"order_index,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (p SpotifyPlaylistPatch) Apply(sp *SpotifyPlaylist) {
	if p.Title != nil {
		sp.Title = *p.Title
	}
	if p.Description != nil {
		sp.Description = *p.Description
	}
	if p.SpotifyURL != nil {
		sp.SpotifyURL = *p.SpotifyURL
	}
	if p.CoverPath != nil {
		sp.CoverPath = p.CoverPath
	}
	if p.OrderIndex != nil {
		sp.OrderIndex = *p.OrderIndex
	}
	if p.IsActive != nil {
		sp.IsActive = *p.IsActive
	}
}
