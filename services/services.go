package services

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"gorm.io/datatypes"
)

// Services bundles every domain service over one database
type Services struct {
	Carousels          *CarouselService
	Vlogs              *VlogService
	HealingVideos      *HealingVideoService
	HealingProducts    *HealingProductService
	StorefrontProducts *StorefrontProductService
	Playlists          *PlaylistService
	Albums             *AlbumService
	Recipes            *RecipeService
	Backup             *BackupService
}

func New(db database.Database, resolver *media.Resolver) *Services {
	return &Services{
		Carousels:          NewCarouselService(db),
		Vlogs:              NewVlogService(db, resolver),
		HealingVideos:      NewHealingVideoService(db, resolver),
		HealingProducts:    NewHealingProductService(db, resolver),
		StorefrontProducts: NewStorefrontProductService(db, resolver),
		Playlists:          NewPlaylistService(db, resolver),
		Albums:             NewAlbumService(db, resolver),
		Recipes:            NewRecipeService(db, resolver),
		Backup:             NewBackupService(db),
	}
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	return nil
}

// sortByOrderIndex sorts rows by order_index; rows arrive in insertion order, which breaks ties
func sortByOrderIndex[T any](rows []T, orderIndex func(T) int) {
	slices.SortStableFunc(rows, func(a, b T) int {
		return cmp.Compare(orderIndex(a), orderIndex(b))
	})
}

// validateJSONArray accepts an empty value or a JSON array, and rejects everything else
func validateJSONArray(field string, value datatypes.JSON) error {
	if len(value) == 0 || string(value) == "null" {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(value, &elems); err != nil {
		return errs.NewInvalidFieldError(field, "must be a JSON array")
	}
	return nil
}

// validateStringArray accepts an empty value or a JSON array of strings
func validateStringArray(field string, value datatypes.JSON) error {
	if len(value) == 0 || string(value) == "null" {
		return nil
	}
	var elems []string
	if err := json.Unmarshal(value, &elems); err != nil {
		return errs.NewInvalidFieldError(field, "must be a JSON array of strings")
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
