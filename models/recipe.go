package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe is a recipe page. Whether it is a beginner recipe is carousel
// membership, surfaced here as IsBeginner but never stored on the row.
type Recipe struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string         `json:"title" gorm:"type:text;not null"`
	Description string         `json:"description" gorm:"type:text;not null;default:''"`
	ImagePath   *string        `json:"image_path,omitempty" gorm:"type:text"`
	Ingredients datatypes.JSON `json:"ingredients,omitempty"`
	Steps       datatypes.JSON `json:"steps,omitempty"`
	Status      ContentStatus  `json:"status" gorm:"type:text;not null;default:'draft'"`
	PublishAt   *time.Time     `json:"publish_at,omitempty" gorm:"type:timestamp"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	IsBeginner bool   `json:"is_beginner" gorm:"-"`
	ImageURL   string `json:"image_url,omitempty" gorm:"-"`
}

func (r *Recipe) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// EffectiveStatus reports the status a visitor sees at now
func (r Recipe) EffectiveStatus(now time.Time) ContentStatus {
	if r.Status == StatusPublished && r.PublishAt != nil && r.PublishAt.After(now) {
		return StatusScheduled
	}
	return r.Status
}

// RecipePatch changes the fields it carries. An explicit "publish_at": null,
// or ClearPublishAt, removes a scheduled date.
type RecipePatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	ImagePath   *string         `json:"image_path,omitempty"`
	Ingredients *datatypes.JSON `json:"ingredients,omitempty"`
	Steps       *datatypes.JSON `json:"steps,omitempty"`
	Status      *ContentStatus  `json:"status,omitempty"`
	PublishAt   *time.Time      `json:"publish_at,omitempty"`
	IsBeginner  *bool           `json:"is_beginner,omitempty"`

	ClearPublishAt bool `json:"clear_publish_at,omitempty"`
}

func (p *RecipePatch) UnmarshalJSON(data []byte) error {
	type plain RecipePatch
	if err := json.Unmarshal(data, (*plain)(p)); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields["publish_at"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		p.ClearPublishAt = true
	}
	return nil
}

// Apply merges the row fields of the patch. IsBeginner is membership and is handled by the service.
func (p RecipePatch) Apply(r *Recipe) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.ImagePath != nil {
		r.ImagePath = p.ImagePath
	}
	if p.Ingredients != nil {
		r.Ingredients = *p.Ingredients
	}
	if p.Steps != nil {
		r.Steps = *p.Steps
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	switch {
	case p.ClearPublishAt:
		r.PublishAt = nil
	case p.PublishAt != nil:
		r.PublishAt = p.PublishAt
	}
}
