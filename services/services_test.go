package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/database"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/stretchr/testify/require"
)

const testPlaceholder = "/images/placeholder.jpg"

func setupTestServices(t *testing.T) (*Services, database.Database) {
	t.Helper()
	return setupNamedServices(t, t.Name())
}

// setupNamedServices opens a separate in-memory database per name
func setupNamedServices(t *testing.T, name string) (*Services, database.Database) {
	t.Helper()
	db, err := database.OpenMemory("services_test_" + strings.ReplaceAll(name, "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	d := database.New(db)
	return New(d, media.NewResolver(testPlaceholder)), d
}

// itemsAt returns every item stored at slot, active or not
func itemsAt(t *testing.T, d database.Database, slot Slot) []models.CarouselItem {
	t.Helper()
	ctx := context.Background()
	carousel, found, err := d.CarouselRepo().FindByPageSlug(ctx, slot.Page, slot.Slug)
	require.NoError(t, err)
	if !found {
		return nil
	}
	items, err := d.CarouselItemRepo().ListItems(ctx, carousel.ID)
	require.NoError(t, err)
	return items
}

func refsTo(t *testing.T, d database.Database, kind models.ItemKind, id uuid.UUID) []models.CarouselItem {
	t.Helper()
	items, err := d.CarouselItemRepo().FindItemsByRef(context.Background(), kind, id)
	require.NoError(t, err)
	return items
}

func intPtr(i int) *int { return &i }
func boolPtr(b bool) *bool { return &b }
