package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type crudRoutes interface {
	getAll() http.HandlerFunc
	get() http.HandlerFunc
	create() http.HandlerFunc
	update() http.HandlerFunc
	remove() http.HandlerFunc
}

type featuredRoutes interface {
	get() http.HandlerFunc
	set() http.HandlerFunc
	remove() http.HandlerFunc
}

// setupRoutes sets up every route of the admin API
func setupRoutes(r chi.Router, handlers *routeHandlers, requestLogger func(http.Handler) http.Handler) {
	r.Get("/health", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Use(requestLogger)

		resource(r, "/vlogs", handlers.vlogHandler, handlers.featuredVlogHandler)
		resource(r, "/healing-videos", handlers.healingVideoHandler, handlers.featuredHealingVideoHandler)
		resource(r, "/healing-products", handlers.healingProductHandler, nil)
		resource(r, "/storefront-products", handlers.storefrontProductHandler, nil)
		resource(r, "/playlists", handlers.playlistHandler, nil)
		resource(r, "/albums", handlers.albumHandler, nil)
		resource(r, "/recipes", handlers.recipeHandler, handlers.featuredRecipeHandler)

		// Carousel Handler endpoints
		r.Route("/carousels", func(r chi.Router) {
			r.Get("/", handlers.carouselHandler.listCarousels())
			r.Post("/", handlers.carouselHandler.createCarousel())
			r.Get("/{id}", handlers.carouselHandler.getCarousel())
			r.Put("/{id}", handlers.carouselHandler.updateCarousel())
			r.Get("/{id}/items", handlers.carouselHandler.listItems())
			r.Post("/{id}/items", handlers.carouselHandler.addItem())
			r.Put("/{id}/order", handlers.carouselHandler.reorderItems())
		})
		r.Put("/carousel-items/{id}", handlers.carouselHandler.updateItem())
		r.Delete("/carousel-items/{id}", handlers.carouselHandler.deleteItem())

		r.Get("/backup", handlers.backupHandler.exportBackup())
		r.Post("/backup", handlers.backupHandler.importBackup())

		r.Get("/media/resolve", handlers.mediaHandler.resolve())
	})
}

// resource mounts the CRUD routes at path, plus /featured when featured is set
func resource(r chi.Router, path string, crud crudRoutes, featured featuredRoutes) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", crud.getAll())
		r.Post("/", crud.create())
		if featured != nil {
			r.Get("/featured", featured.get())
			r.Put("/featured", featured.set())
			r.Delete("/featured", featured.remove())
		}
		r.Get("/{id}", crud.get())
		r.Put("/{id}", crud.update())
		r.Delete("/{id}", crud.remove())
	})
}
