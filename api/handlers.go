package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/lifestyle-cms-backend/errs"
	"github.com/rpupo63/lifestyle-cms-backend/media"
	"github.com/rpupo63/lifestyle-cms-backend/models"
	"github.com/rpupo63/lifestyle-cms-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svc *services.Services, resolver *media.Resolver, db pinger, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		vlogHandler: newResourceHandler[models.VlogVideo, models.VlogPatch]("vlog", "vlogs", svc.Vlogs,
			withListFilter[models.VlogVideo, models.VlogPatch](listVlogs(svc.Vlogs))),
		healingVideoHandler: newResourceHandler[models.HealingVideo, models.HealingVideoPatch]("healing_video", "healing_videos", svc.HealingVideos,
			withListFilter[models.HealingVideo, models.HealingVideoPatch](listHealingVideos(svc.HealingVideos))),
		healingProductHandler: newResourceHandler[models.HealingProduct, models.HealingProductPatch]("healing_product", "healing_products", svc.HealingProducts,
			withDefaults[models.HealingProduct, models.HealingProductPatch](func() models.HealingProduct {
				return models.HealingProduct{IsActive: true}
			}),
			withListFilter[models.HealingProduct, models.HealingProductPatch](listHealingProducts(svc.HealingProducts))),
		storefrontProductHandler: newResourceHandler[models.StorefrontProduct, models.StorefrontProductPatch]("storefront_product", "storefront_products", svc.StorefrontProducts,
			withListFilter[models.StorefrontProduct, models.StorefrontProductPatch](listStorefrontProducts(svc.StorefrontProducts))),
		playlistHandler: newResourceHandler[models.SpotifyPlaylist, models.SpotifyPlaylistPatch]("playlist", "playlists", svc.Playlists,
			withDefaults[models.SpotifyPlaylist, models.SpotifyPlaylistPatch](func() models.SpotifyPlaylist {
				return models.SpotifyPlaylist{IsActive: true}
			}),
			withListFilter[models.SpotifyPlaylist, models.SpotifyPlaylistPatch](listPlaylists(svc.Playlists))),
		albumHandler: newResourceHandler[models.PhotoAlbum, models.PhotoAlbumPatch]("album", "albums", svc.Albums),
		recipeHandler: newResourceHandler[models.Recipe, models.RecipePatch]("recipe", "recipes", svc.Recipes,
			withListFilter[models.Recipe, models.RecipePatch](listRecipes(svc.Recipes))),

		featuredVlogHandler:         newFeaturedHandler[models.VlogVideo]("vlog", svc.Vlogs),
		featuredHealingVideoHandler: newFeaturedHandler[models.HealingVideo]("healing_video", svc.HealingVideos),
		featuredRecipeHandler:       newFeaturedHandler[models.Recipe]("recipe", svc.Recipes),

		carouselHandler: newCarouselHandler(svc.Carousels),
		backupHandler:   newBackupHandler(svc.Backup),
		mediaHandler:    newMediaHandler(resolver),
		healthHandler:   newHealthHandler(db, startupTime),
	}
}

// listVlogs honours ?carousel= and ?limit=
func listVlogs(svc *services.VlogService) func(r *http.Request) ([]models.VlogVideo, error) {
	return func(r *http.Request) ([]models.VlogVideo, error) {
		limit, err := queryInt(r, "limit")
		if err != nil {
			return nil, err
		}
		if carousel := r.URL.Query().Get("carousel"); carousel != "" {
			return svc.GetByCarousel(r.Context(), carousel, limit)
		}
		vlogs, err := svc.GetAll(r.Context())
		return services.Limit(vlogs, limit), err
	}
}

// listHealingVideos honours ?part=
func listHealingVideos(svc *services.HealingVideoService) func(r *http.Request) ([]models.HealingVideo, error) {
	return func(r *http.Request) ([]models.HealingVideo, error) {
		part, err := queryInt(r, "part")
		if err != nil {
			return nil, err
		}
		if part != 0 {
			return svc.GetByPart(r.Context(), part)
		}
		if r.URL.Query().Has("part") {
			return nil, errs.NewInvalidFieldError("part", "must be 1 or 2")
		}
		return svc.GetAll(r.Context())
	}
}

// listHealingProducts honours ?active=true and ?limit=
func listHealingProducts(svc *services.HealingProductService) func(r *http.Request) ([]models.HealingProduct, error) {
	return func(r *http.Request) ([]models.HealingProduct, error) {
		limit, err := queryInt(r, "limit")
		if err != nil {
			return nil, err
		}
		active, err := queryBool(r, "active")
		if err != nil {
			return nil, err
		}
		if active {
			return svc.GetActive(r.Context(), limit)
		}
		products, err := svc.GetAll(r.Context())
		return services.Limit(products, limit), err
	}
}

// listStorefrontProducts honours ?category=, ?published=true and ?limit=
func listStorefrontProducts(svc *services.StorefrontProductService) func(r *http.Request) ([]models.StorefrontProduct, error) {
	return func(r *http.Request) ([]models.StorefrontProduct, error) {
		limit, err := queryInt(r, "limit")
		if err != nil {
			return nil, err
		}
		published, err := queryBool(r, "published")
		if err != nil {
			return nil, err
		}

		category := r.URL.Query().Get("category")
		var products []models.StorefrontProduct
		switch {
		case category != "":
			products, err = svc.GetByCategory(r.Context(), category, 0)
		case published:
			products, err = svc.GetPublished(r.Context(), 0)
		default:
			products, err = svc.GetAll(r.Context())
		}
		if err != nil {
			return nil, err
		}
		if category != "" && published {
			visible := make([]models.StorefrontProduct, 0, len(products))
			for _, p := range products {
				if p.Status == models.StatusPublished {
					visible = append(visible, p)
				}
			}
			products = visible
		}
		return services.Limit(products, limit), nil
	}
}

// listPlaylists honours ?active=true
func listPlaylists(svc *services.PlaylistService) func(r *http.Request) ([]models.SpotifyPlaylist, error) {
	return func(r *http.Request) ([]models.SpotifyPlaylist, error) {
		active, err := queryBool(r, "active")
		if err != nil {
			return nil, err
		}
		if active {
			return svc.GetActive(r.Context())
		}
		return svc.GetAll(r.Context())
	}
}

// listRecipes honours ?beginner=true and ?published=true, alone or together
func listRecipes(svc *services.RecipeService) func(r *http.Request) ([]models.Recipe, error) {
	return func(r *http.Request) ([]models.Recipe, error) {
		beginner, err := queryBool(r, "beginner")
		if err != nil {
			return nil, err
		}
		published, err := queryBool(r, "published")
		if err != nil {
			return nil, err
		}
		switch {
		case beginner:
			recipes, err := svc.GetBeginner(r.Context())
			if err != nil || !published {
				return recipes, err
			}
			return services.PublishedRecipes(recipes, time.Now()), nil
		case published:
			return svc.GetPublished(r.Context(), time.Now())
		}
		return svc.GetAll(r.Context())
	}
}
