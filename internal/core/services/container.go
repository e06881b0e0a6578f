package services

import (
	portsrepo "github.com/kshitijraj/authbot_app/internal/core/ports/repositories"
	portssvc "github.com/kshitijraj/authbot_app/internal/core/ports/services"
	"github.com/kshitijraj/authbot_app/internal/platform/config"
)

// NewServiceContainer creates the service container with properly initialized
// dependencies. The token service needs the user service to resolve token
// subjects, so user comes first.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg.BcryptCost)
	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
