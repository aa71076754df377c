package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addHealingVideo(t *testing.T, svc *Services, title string, part int) *models.HealingVideo {
	t.Helper()
	video, err := svc.HealingVideos.Add(context.Background(), models.HealingVideo{
		Title:      title,
		YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Part:       part,
	})
	require.NoError(t, err)
	return video
}

func TestHealingVideoService_AddCreatesMembership(t *testing.T) {
	svc, d := setupTestServices(t)

	_, found, err := d.CarouselRepo().FindByPageSlug(context.Background(), "healing", "healing-part-2")
	require.NoError(t, err)
	require.False(t, found)

	video := addHealingVideo(t, svc, "Breathing", 2)

	assert.Equal(t, "dQw4w9WgXcQ", video.YoutubeID)
	items := itemsAt(t, d, HealingPartSlot(2))
	require.Len(t, items, 1)
	assert.Equal(t, models.ItemKindVideo, items[0].Kind)
	assert.Equal(t, video.ID, *items[0].RefID)
	assert.Equal(t, "dQw4w9WgXcQ", *items[0].YoutubeID)
	assert.Equal(t, "Breathing", *items[0].Caption)
}

func TestHealingVideoService_AddValidation(t *testing.T) {
	svc, d := setupTestServices(t)
	ctx := context.Background()

	_, err := svc.HealingVideos.Add(ctx, models.HealingVideo{Title: "x", YoutubeURL: "https://youtu.be/dQw4w9WgXcQ", Part: 3})
	assert.True(t, errs.IsInvalidFieldError(err))

	_, err = svc.HealingVideos.Add(ctx, models.HealingVideo{Title: "x", YoutubeURL: "not-a-url", Part: 1})
	assert.True(t, errs.IsInvalidURLError(err))

	all, err := svc.HealingVideos.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, itemsAt(t, d, HealingPartSlot(1)))
}

func TestHealingVideoService_GetByPartFollowsCarouselOrder(t *testing.T) {
	svc, d := setupTestServices(t)
	ctx := context.Background()
	a := addHealingVideo(t, svc, "A", 1)
	b := addHealingVideo(t, svc, "B", 1)
	c := addHealingVideo(t, svc, "C", 1)
	addHealingVideo(t, svc, "Other part", 2)

	carousel, found, err := d.CarouselRepo().FindByPageSlug(ctx, "healing", "healing-part-1")
	require.NoError(t, err)
	require.True(t, found)
	items, err := svc.Carousels.Items(ctx, carousel.ID)
	require.NoError(t, err)
	byRef := map[string]models.CarouselItem{}
	for _, item := range items {
		byRef[item.RefID.String()] = item
	}
	_, err = svc.Carousels.Reorder(ctx, carousel.ID, []uuid.UUID{byRef[c.ID.String()].ID, byRef[a.ID.String()].ID, byRef[b.ID.String()].ID})
	require.NoError(t, err)

	videos, err := svc.HealingVideos.GetByPart(ctx, 1)
	require.NoError(t, err)
	require.Len(t, videos, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{videos[0].Title, videos[1].Title, videos[2].Title})
	assert.Equal(t, 0, videos[0].OrderIndex)

	all, err := svc.HealingVideos.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "C", all[0].Title)
	assert.Equal(t, "Other part", all[3].Title)

	_, err = svc.HealingVideos.GetByPart(ctx, 9)
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestHealingVideoService_UpdateMovesPart(t *testing.T) {
	svc, d := setupTestServices(t)
	ctx := context.Background()
	video := addHealingVideo(t, svc, "Mover", 1)

	updated, err := svc.HealingVideos.Update(ctx, video.ID, models.HealingVideoPatch{
		Part:       intPtr(2),
		Title:      strPtr("Moved"),
		YoutubeURL: strPtr("https://youtu.be/9bZkp7q19f0"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Part)
	assert.Equal(t, "9bZkp7q19f0", updated.YoutubeID)
	assert.Equal(t, "https://img.youtube.com/vi/9bZkp7q19f0/hqdefault.jpg", updated.ThumbnailURL)

	assert.Empty(t, itemsAt(t, d, HealingPartSlot(1)))
	items := itemsAt(t, d, HealingPartSlot(2))
	require.Len(t, items, 1)
	assert.Equal(t, "Moved", *items[0].Caption)
	assert.Equal(t, "9bZkp7q19f0", *items[0].YoutubeID)

	renamed, err := svc.HealingVideos.Update(ctx, video.ID, models.HealingVideoPatch{Title: strPtr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Title)
	items = itemsAt(t, d, HealingPartSlot(2))
	require.Len(t, items, 1)
	assert.Equal(t, "Renamed", *items[0].Caption)

	_, err = svc.HealingVideos.Update(ctx, video.ID, models.HealingVideoPatch{Part: intPtr(5)})
	assert.True(t, errs.IsInvalidFieldError(err))
	assert.Len(t, itemsAt(t, d, HealingPartSlot(2)), 1)
}

func TestHealingVideoService_FeaturedAndDelete(t *testing.T) {
	svc, d := setupTestServices(t)
	ctx := context.Background()
	video := addHealingVideo(t, svc, "Featured", 1)

	_, err := svc.HealingVideos.SetFeatured(ctx, video.ID)
	require.NoError(t, err)
	featured, found, err := svc.HealingVideos.Featured(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, video.ID, featured.ID)
	assert.Len(t, refsTo(t, d, models.ItemKindVideo, video.ID), 2)

	require.NoError(t, svc.HealingVideos.Delete(ctx, video.ID))

	assert.Empty(t, refsTo(t, d, models.ItemKindVideo, video.ID))
	_, found, err = svc.HealingVideos.Featured(ctx)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHealingProductService(t *testing.T) {
	svc, _ := setupTestServices(t)
	ctx := context.Background()

	_, err := svc.HealingProducts.Add(ctx, models.HealingProduct{})
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	oil, err := svc.HealingProducts.Add(ctx, models.HealingProduct{Title: "Oil", OrderIndex: 2, IsActive: true, ImagePath: strPtr("https://cdn.example.com/oil.jpg")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/oil.jpg", oil.ImageURL)
	_, err = svc.HealingProducts.Add(ctx, models.HealingProduct{Title: "Candle", OrderIndex: 1, IsActive: true})
	require.NoError(t, err)
	_, err = svc.HealingProducts.Add(ctx, models.HealingProduct{Title: "Hidden", OrderIndex: 0, IsActive: false})
	require.NoError(t, err)

	all, err := svc.HealingProducts.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Hidden", all[0].Title)
	assert.Equal(t, testPlaceholder, all[0].ImageURL)

	active, err := svc.HealingProducts.GetActive(ctx, 1)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Candle", active[0].Title)

	updated, err := svc.HealingProducts.Update(ctx, oil.ID, models.HealingProductPatch{Price: strPtr("$12"), IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "$12", updated.Price)
	assert.False(t, updated.IsActive)

	require.NoError(t, svc.HealingProducts.Delete(ctx, oil.ID))
	_, err = svc.HealingProducts.Get(ctx, oil.ID)
	assert.True(t, errs.IsNotFound(err))
}
