package services

import (
	"fmt"

	"github.com/rpupo63/lifestyle-cms-backend/models"
)

// Slot names the (page, slug) pair a carousel lives at
type Slot struct {
	Page  string
	Slug  string
	Title string
}

func (s Slot) Input() models.CarouselInput {
	return models.CarouselInput{Page: s.Page, Slug: s.Slug, Title: s.Title}
}

func (s Slot) String() string {
	return s.Page + "/" + s.Slug
}

var (
	VlogsFeaturedSlot   = Slot{Page: "vlogs", Slug: "vlogs-featured", Title: "Featured Vlog"}
	HealingFeaturedSlot = Slot{Page: "healing", Slug: "healing-featured", Title: "Featured Healing Video"}
	RecipesFeaturedSlot = Slot{Page: "recipes", Slug: "recipes-featured", Title: "Featured Recipe"}
	RecipesBeginnerSlot = Slot{Page: "recipes", Slug: "recipes-beginner", Title: "Beginner Recipes"}
	PhotoAlbumsSlot     = Slot{Page: "home", Slug: "photo-albums", Title: "Photo Albums"}
)

// HealingParts lists the parts of the healing page, each backed by its own carousel
var HealingParts = []int{1, 2}

func HealingPartSlot(part int) Slot {
	return Slot{
		Page:  "healing",
		Slug:  fmt.Sprintf("healing-part-%d", part),
		Title: fmt.Sprintf("Healing Part %d", part),
	}
}
