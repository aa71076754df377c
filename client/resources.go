package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rpupo63/lifestyle-cms-backend/models"
)

// Resource names a collection route and the keys of its response envelopes
type Resource struct {
	Path     string
	Singular string
	Plural   string
}

var (
	Vlogs              = Resource{Path: "/api/vlogs", Singular: "vlog", Plural: "vlogs"}
	HealingVideos      = Resource{Path: "/api/healing-videos", Singular: "healing_video", Plural: "healing_videos"}
	HealingProducts    = Resource{Path: "/api/healing-products", Singular: "healing_product", Plural: "healing_products"}
	StorefrontProducts = Resource{Path: "/api/storefront-products", Singular: "storefront_product", Plural: "storefront_products"}
	Playlists          = Resource{Path: "/api/playlists", Singular: "playlist", Plural: "playlists"}
	Albums             = Resource{Path: "/api/albums", Singular: "album", Plural: "albums"}
	Recipes            = Resource{Path: "/api/recipes", Singular: "recipe", Plural: "recipes"}
	Carousels          = Resource{Path: "/api/carousels", Singular: "carousel", Plural: "carousels"}
)

func (r Resource) item(id uuid.UUID) string {
	return r.Path + "/" + id.String()
}

func List[T any](ctx context.Context, c *Client, res Resource, query url.Values) ([]T, error) {
	data, err := c.doJSON(ctx, http.MethodGet, res.Path, query, nil)
	if err != nil {
		return nil, err
	}
	rows, found, err := unwrap[[]T](data, res.Plural)
	if err != nil || !found {
		return nil, err
	}
	return *rows, nil
}

func Get[T any](ctx context.Context, c *Client, res Resource, id uuid.UUID) (*T, error) {
	data, err := c.doJSON(ctx, http.MethodGet, res.item(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return required[T](data, res.Singular)
}

// Create posts payload and returns the stored row
func Create[T any](ctx context.Context, c *Client, res Resource, payload any) (*T, error) {
	data, err := c.doJSON(ctx, http.MethodPost, res.Path, nil, payload)
	if err != nil {
		return nil, err
	}
	return required[T](data, res.Singular)
}

// Update sends a partial patch and returns the stored row
func Update[T any](ctx context.Context, c *Client, res Resource, id uuid.UUID, patch any) (*T, error) {
	data, err := c.doJSON(ctx, http.MethodPut, res.item(id), nil, patch)
	if err != nil {
		return nil, err
	}
	return required[T](data, res.Singular)
}

func Delete(ctx context.Context, c *Client, res Resource, id uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, res.item(id), nil, nil)
	return err
}

// Featured returns the featured row of res; found is false when nothing is featured
func Featured[T any](ctx context.Context, c *Client, res Resource) (*T, bool, error) {
	data, err := c.doJSON(ctx, http.MethodGet, res.Path+"/featured", nil, nil)
	if err != nil {
		return nil, false, err
	}
	return unwrap[T](data, res.Singular)
}

func SetFeatured[T any](ctx context.Context, c *Client, res Resource, id uuid.UUID) (*T, error) {
	data, err := c.doJSON(ctx, http.MethodPut, res.Path+"/featured", nil, map[string]uuid.UUID{"id": id})
	if err != nil {
		return nil, err
	}
	return required[T](data, res.Singular)
}

func RemoveFeatured(ctx context.Context, c *Client, res Resource) error {
	_, err := c.doJSON(ctx, http.MethodDelete, res.Path+"/featured", nil, nil)
	return err
}

func required[T any](data []byte, key string) (*T, error) {
	v, found, err := unwrap[T](data, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("response %q is null", key)
	}
	return v, nil
}

// FindCarousel looks a carousel up by its (page, slug) slot
func (c *Client) FindCarousel(ctx context.Context, page, slotSlug string) (*models.Carousel, bool, error) {
	data, err := c.doJSON(ctx, http.MethodGet, Carousels.Path, url.Values{"page": {page}, "slug": {slotSlug}}, nil)
	if err != nil {
		return nil, false, err
	}
	return unwrap[models.Carousel](data, Carousels.Singular)
}

// EnsureCarousel returns the carousel of the slot, creating it when absent
func (c *Client) EnsureCarousel(ctx context.Context, input models.CarouselInput) (*models.Carousel, error) {
	data, err := c.doJSON(ctx, http.MethodPost, Carousels.Path, url.Values{"ensure": {"true"}}, input)
	if err != nil {
		return nil, err
	}
	return required[models.Carousel](data, Carousels.Singular)
}

func (c *Client) CarouselItems(ctx context.Context, carouselID uuid.UUID, activeOnly bool) ([]models.CarouselItem, error) {
	var query url.Values
	if activeOnly {
		query = url.Values{"active": {"true"}}
	}
	data, err := c.doJSON(ctx, http.MethodGet, Carousels.item(carouselID)+"/items", query, nil)
	if err != nil {
		return nil, err
	}
	items, found, err := unwrap[[]models.CarouselItem](data, "carousel_items")
	if err != nil || !found {
		return nil, err
	}
	return *items, nil
}

func (c *Client) AddCarouselItem(ctx context.Context, carouselID uuid.UUID, input models.CarouselItemInput) (*models.CarouselItem, error) {
	data, err := c.doJSON(ctx, http.MethodPost, Carousels.item(carouselID)+"/items", nil, input)
	if err != nil {
		return nil, err
	}
	return required[models.CarouselItem](data, "carousel_item")
}

// ReorderCarousel sets the display order of a carousel to ids
func (c *Client) ReorderCarousel(ctx context.Context, carouselID uuid.UUID, ids []uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodPut, Carousels.item(carouselID)+"/order", nil, map[string][]uuid.UUID{"ids": ids})
	return err
}

func (c *Client) DeleteCarouselItem(ctx context.Context, itemID uuid.UUID) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/api/carousel-items/"+itemID.String(), nil, nil)
	return err
}

// ExportBackup downloads the backup document
func (c *Client) ExportBackup(ctx context.Context) ([]byte, error) {
	data, _, err := c.do(ctx, http.MethodGet, "/api/backup", nil, nil)
	return data, err
}

// ImportBackup uploads a backup document and returns the rows restored per collection
func (c *Client) ImportBackup(ctx context.Context, document []byte) (map[string]int, error) {
	data, _, err := c.do(ctx, http.MethodPost, "/api/backup", nil, bytes.NewReader(document))
	if err != nil {
		return nil, err
	}
	counts, _, err := unwrap[map[string]int](data, "restored")
	if err != nil {
		return nil, err
	}
	if counts == nil {
		return map[string]int{}, nil
	}
	return *counts, nil
}
