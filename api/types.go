package api

import "github.com/rpupo63/lifestyle-cms-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	vlogHandler              resourceHandler[models.VlogVideo, models.VlogPatch]
	healingVideoHandler      resourceHandler[models.HealingVideo, models.HealingVideoPatch]
	healingProductHandler    resourceHandler[models.HealingProduct, models.HealingProductPatch]
	storefrontProductHandler resourceHandler[models.StorefrontProduct, models.StorefrontProductPatch]
	playlistHandler          resourceHandler[models.SpotifyPlaylist, models.SpotifyPlaylistPatch]
	albumHandler             resourceHandler[models.PhotoAlbum, models.PhotoAlbumPatch]
	recipeHandler            resourceHandler[models.Recipe, models.RecipePatch]

	featuredVlogHandler         featuredHandler[models.VlogVideo]
	featuredHealingVideoHandler featuredHandler[models.HealingVideo]
	featuredRecipeHandler       featuredHandler[models.Recipe]

	carouselHandler carouselHandler
	backupHandler   backupHandler
	mediaHandler    mediaHandler
	healthHandler   healthHandler
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// StatusResponse acknowledges a request that returns no resource
type StatusResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"vlog deleted successfully"`
}
