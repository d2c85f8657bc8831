package router

import (
	userapp "github.com/stibodx/user-directory/internal/application"
	"github.com/stibodx/user-directory/internal/container"
	repouser "github.com/stibodx/user-directory/internal/domain/repository"
	pginfra "github.com/stibodx/user-directory/internal/infrastructure/postgres"
	handlers "github.com/stibodx/user-directory/internal/interface/http"
	"github.com/stibodx/user-directory/internal/router/modules"
)

type UserModuleDeps struct {
	Repo    repouser.UserRepository
	Service *userapp.Service
	Handler *handlers.UserHandler
}

func buildUserDeps() UserModuleDeps {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	service := userapp.NewService(
		repo,
		userapp.NewUserMapper(),
		container.GetRedis(),
		cfg.UserCacheTTL,
		container.GetLogger(),
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetRabbitPub(),
	)

	handler := handlers.NewUserHandler(service, container.GetLogger())

	return UserModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them
// with the router registry. Called once during startup.
func InitModules(r *Registry) {
	userDeps := buildUserDeps()
	r.Add(modules.NewUserModule(userDeps.Handler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetRedis()))
	}
}
