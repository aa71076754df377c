package database

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) Database {
	t.Helper()
	db, err := OpenMemory("database_test_" + strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return New(db)
}

func strPtr(s string) *string { return &s }

func TestCarouselRepo_FindByPageSlugAbsent(t *testing.T) {
	d := setupTestDB(t)

	carousel, found, err := d.CarouselRepo().FindByPageSlug(context.Background(), "healing", "healing-part-1")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, carousel)
}

func TestCarouselRepo_FindCreateFindReturnsSameID(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	_, found, err := d.CarouselRepo().FindByPageSlug(ctx, "healing", "healing-part-1")
	require.NoError(t, err)
	require.False(t, found)

	created := models.CarouselInput{Page: "healing", Slug: "healing-part-1", Title: "Part 1"}.ToCarousel()
	require.NoError(t, d.CarouselRepo().Create(ctx, &created))

	first, found, err := d.CarouselRepo().FindByPageSlug(ctx, "healing", "healing-part-1")
	require.NoError(t, err)
	require.True(t, found)
	second, found, err := d.CarouselRepo().FindByPageSlug(ctx, "healing", "healing-part-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, created.ID, first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.IsActive)
}

func TestCarouselRepo_CreateDuplicateSlot(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	first := models.CarouselInput{Page: "home", Slug: "photo-albums", Title: "Albums"}.ToCarousel()
	require.NoError(t, d.CarouselRepo().Create(ctx, &first))

	dup := models.CarouselInput{Page: "home", Slug: "photo-albums", Title: "Again"}.ToCarousel()
	err := d.CarouselRepo().Create(ctx, &dup)

	require.Error(t, err)
	assert.True(t, errs.IsAlreadyExists(err))
	assert.Equal(t, 409, errs.StatusCode(err))
}

func TestCarouselRepo_EnsureIsIdempotent(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	input := models.CarouselInput{Page: "recipes", Slug: "recipes-beginner", Title: "Beginner"}

	first, err := d.CarouselRepo().Ensure(ctx, input)
	require.NoError(t, err)
	second, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "recipes", Slug: "recipes-beginner", Title: "Other title"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Beginner", second.Title)

	all, err := d.CarouselRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCarouselRepo_EnsureConcurrent(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "vlogs", Slug: "vlogs-featured", Title: "Featured"})
			if assert.NoError(t, err) {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestCarouselRepo_Update(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	c, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "home", Slug: "hero", Title: "Hero"})
	require.NoError(t, err)

	inactive := false
	updated, err := d.CarouselRepo().Update(ctx, c.ID, models.CarouselPatch{
		Title:       strPtr("New hero"),
		Description: strPtr("Top of the page"),
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "New hero", updated.Title)
	assert.Equal(t, "Top of the page", *updated.Description)
	assert.False(t, updated.IsActive)

	_, err = d.CarouselRepo().Update(ctx, uuid.New(), models.CarouselPatch{Title: strPtr("x")})
	assert.True(t, errs.IsNotFound(err))

	_, err = d.CarouselRepo().FindByID(ctx, uuid.New())
	assert.True(t, errs.IsNotFound(err))
}

func TestCarouselItemRepo_Lifecycle(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	c, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "home", Slug: "tiktoks", Title: "TikToks"})
	require.NoError(t, err)
	items := d.CarouselItemRepo()

	_, found, err := items.MaxOrderIndex(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, found)

	two, zero := 2, 0
	a := models.CarouselItemInput{Kind: models.ItemKindTikTok, LinkURL: strPtr("https://tiktok.com/@a/video/1")}.ToItem(c.ID, two)
	b := models.CarouselItemInput{Kind: models.ItemKindTikTok, LinkURL: strPtr("https://tiktok.com/@a/video/2")}.ToItem(c.ID, zero)
	require.NoError(t, items.CreateItem(ctx, &a))
	require.NoError(t, items.CreateItem(ctx, &b))

	maxIndex, found, err := items.MaxOrderIndex(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, maxIndex)

	listed, err := items.ListItems(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	updated, err := items.UpdateItem(ctx, a.ID, models.CarouselItemPatch{Caption: strPtr("first"), OrderIndex: &zero})
	require.NoError(t, err)
	assert.Equal(t, "first", *updated.Caption)
	assert.Equal(t, 0, updated.OrderIndex)

	_, err = items.UpdateItem(ctx, uuid.New(), models.CarouselItemPatch{Caption: strPtr("x")})
	assert.True(t, errs.IsNotFound(err))

	require.NoError(t, items.DeleteItem(ctx, a.ID))
	require.NoError(t, items.DeleteItem(ctx, a.ID))
	require.NoError(t, items.DeleteItem(ctx, uuid.New()))

	listed, err = items.ListItems(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, b.ID, listed[0].ID)
}

func TestCarouselItemRepo_ByRef(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	beginner, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "recipes", Slug: "recipes-beginner", Title: "Beginner"})
	require.NoError(t, err)
	featured, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "recipes", Slug: "recipes-featured", Title: "Featured"})
	require.NoError(t, err)

	recipeID := uuid.New()
	other := uuid.New()
	for _, item := range []models.CarouselItem{
		models.CarouselItemInput{Kind: models.ItemKindRecipe, RefID: &recipeID}.ToItem(beginner.ID, 0),
		models.CarouselItemInput{Kind: models.ItemKindRecipe, RefID: &recipeID}.ToItem(featured.ID, 0),
		models.CarouselItemInput{Kind: models.ItemKindRecipe, RefID: &other}.ToItem(beginner.ID, 1),
	} {
		item := item
		require.NoError(t, d.CarouselItemRepo().CreateItem(ctx, &item))
	}

	refs, err := d.CarouselItemRepo().FindItemsByRef(ctx, models.ItemKindRecipe, recipeID)
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	_, found, err := d.CarouselItemRepo().FindItemInCarousel(ctx, featured.ID, models.ItemKindRecipe, other)
	require.NoError(t, err)
	assert.False(t, found)

	removed, err := d.CarouselItemRepo().DeleteItemsByRef(ctx, models.ItemKindRecipe, recipeID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	refs, err = d.CarouselItemRepo().FindItemsByRef(ctx, models.ItemKindRecipe, recipeID)
	require.NoError(t, err)
	assert.Empty(t, refs)

	removed, err = d.CarouselItemRepo().DeleteItemsByCarousel(ctx, beginner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestTransaction_RollsBackOnError(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	err := d.Transaction(ctx, "add album", func(tx Database) error {
		album := models.PhotoAlbum{Title: "Summer"}
		if err := tx.AlbumRepo().Add(ctx, &album); err != nil {
			return err
		}
		return errs.NewInvalidFieldError("kind", "unsupported")
	})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidFieldError(err))

	albums, err := d.AlbumRepo().FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, albums)
}

func TestEntityRepo_CRUD(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	repo := d.StorefrontProductRepo()

	product := models.StorefrontProduct{Title: "Yoga mat", Category: "wellness"}
	require.NoError(t, repo.Add(ctx, &product))
	assert.NotEqual(t, uuid.Nil, product.ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, found.Status)

	found.Price = "$40"
	require.NoError(t, repo.Update(ctx, found))
	found, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "$40", found.Price)

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.True(t, errs.IsNotFound(repo.Delete(ctx, product.ID)))

	_, err = repo.FindByID(ctx, product.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 404, errs.StatusCode(err))
}

func TestEntityRepo_ReplaceAll(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()
	repo := d.PlaylistRepo()

	old := models.SpotifyPlaylist{Title: "Old", SpotifyURL: "u", SpotifyType: "playlist", SpotifyID: "x"}
	require.NoError(t, repo.Add(ctx, &old))

	replacement := []models.SpotifyPlaylist{
		{ID: uuid.New(), Title: "New A", SpotifyURL: "a", SpotifyType: "playlist", SpotifyID: "a"},
		{ID: uuid.New(), Title: "New B", SpotifyURL: "b", SpotifyType: "album", SpotifyID: "b"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, replacement))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, repo.ReplaceAll(ctx, nil))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestVlogRepo_FindByCarousel(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	for _, v := range []models.VlogVideo{
		{Title: "a", YoutubeURL: "u", YoutubeID: "i", ThumbnailURL: "t", Carousel: models.VlogCarouselMain},
		{Title: "b", YoutubeURL: "u", YoutubeID: "i", ThumbnailURL: "t", Carousel: models.VlogCarouselBehindTheScene},
		{Title: "c", YoutubeURL: "u", YoutubeID: "i", ThumbnailURL: "t", Carousel: models.VlogCarouselMain},
	} {
		v := v
		require.NoError(t, d.VlogRepo().Add(ctx, &v))
	}

	main, err := d.VlogRepo().FindByCarousel(ctx, models.VlogCarouselMain)
	require.NoError(t, err)
	assert.Len(t, main, 2)
}

func TestWithForeignKeys(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"/tmp/cms.db", "/tmp/cms.db?_pragma=foreign_keys(1)"},
		{"file:cms?mode=memory&cache=shared", "file:cms?mode=memory&cache=shared&_pragma=foreign_keys(1)"},
		{"/tmp/cms.db?_pragma=foreign_keys(0)", "/tmp/cms.db?_pragma=foreign_keys(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, withForeignKeys(tt.dsn))
		})
	}
}

func TestCarouselItemRepo_RequiresCarousel(t *testing.T) {
	d := setupTestDB(t)
	ctx := context.Background()

	orphan := models.CarouselItemInput{Kind: models.ItemKindTikTok, LinkURL: strPtr("https://tiktok.com/@a/video/1")}.ToItem(uuid.New(), 0)
	assert.Error(t, d.CarouselItemRepo().CreateItem(ctx, &orphan))

	c, err := d.CarouselRepo().Ensure(ctx, models.CarouselInput{Page: "home", Slug: "tiktoks", Title: "TikToks"})
	require.NoError(t, err)
	item := models.CarouselItemInput{Kind: models.ItemKindTikTok, LinkURL: strPtr("https://tiktok.com/@a/video/1")}.ToItem(c.ID, 0)
	require.NoError(t, d.CarouselItemRepo().CreateItem(ctx, &item))

	// carousels holding items cannot be cleared underneath them
	assert.Error(t, d.CarouselRepo().ReplaceAll(ctx, nil))
	require.NoError(t, d.CarouselItemRepo().ReplaceAll(ctx, nil))
	require.NoError(t, d.CarouselRepo().ReplaceAll(ctx, nil))
}
