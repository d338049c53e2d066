package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/pkg/auth"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/application/handlers"
	appsvcs "github.com/bookmountain/adelaide-uni-market-place/services/identity/application/services"
)

// IdentityRoutes registers the /auth endpoints. Credential and email
// endpoints get a tighter per-IP rate limit than the global one.
func IdentityRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/auth", func(r chi.Router) {
		r.Get("/activate", handlers.NewActivateHandler(svcs).Execute)
		r.Post("/logout", handlers.NewLogoutHandler(a.SessionStore, a.Logger).Execute)

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(10, time.Minute))
			r.Post("/register", handlers.NewRegisterHandler(svcs).Execute)
			r.Post("/resend-activation", handlers.NewResendActivationHandler(svcs).Execute)
			r.Post("/login", handlers.NewLoginHandler(svcs, a.SessionStore, a.Logger).Execute)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(a.Tokens, a.SessionStore, a.Logger))
			r.Get("/me", handlers.NewMeHandler(svcs).Execute)
		})
	})
}
