package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/handlers"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/ordering/application/services"
)

// OrderingRoutes registers the order endpoints. All of them require a
// signed-in buyer.
func OrderingRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/orders", func(r chi.Router) {
		r.Use(auth.RequireAuth(a.Tokens, a.SessionStore, a.Logger))
		r.Get("/", handlers.NewListOrdersHandler(svcs).Execute)
		r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
		r.Get("/{orderID}", handlers.NewGetOrderHandler(svcs).Execute)
	})
}
