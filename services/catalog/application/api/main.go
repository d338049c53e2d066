package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/handlers"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/catalog/application/services"
)

// CatalogRoutes registers category and item endpoints on the provided chi
// router. Categories are public; every item route requires a signed-in user.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	maxUpload := a.Config.MaxUploadBytes

	r.Get("/categories", handlers.NewListCategoriesHandler(svcs).Execute)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.SessionStore, a.Logger))
		r.Route("/items", func(r chi.Router) {
			r.Get("/", handlers.NewListItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Post("/with-images", handlers.NewPostItemWithImagesHandler(svcs, maxUpload).Execute)
			r.Route("/{itemID}", func(r chi.Router) {
				r.Get("/", handlers.NewGetItemHandler(svcs).Execute)
				r.Put("/", handlers.NewPutItemHandler(svcs).Execute)
				r.Delete("/", handlers.NewDeleteItemHandler(svcs).Execute)
				r.Post("/images", handlers.NewPostItemImageHandler(svcs, maxUpload).Execute)
				r.Delete("/images/{imageID}", handlers.NewDeleteItemImageHandler(svcs).Execute)
			})
		})
	})
}
