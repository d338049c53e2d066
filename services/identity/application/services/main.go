package services

import (
	"github.com/bookmountain/adelaide-uni-market-place/pkg/app"
	"github.com/bookmountain/adelaide-uni-market-place/services/identity/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the identity context.
type Services struct {
	User *UserService
}

// New wires the identity services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewUserRepository(a.Db, a.EventBus)
	settings := Settings{
		AllowedEmailDomain: a.Config.AllowedEmailDomain,
		ActivationBaseURL:  a.Config.ActivationBaseURL,
		ActivationTTL:      a.Config.ActivationTokenTTL,
	}
	return &Services{
		User: NewUserService(repo, a.Mailer, a.Tokens, settings, a.Logger),
	}
}
