package router

import (
	"github.com/Ping-Win-Info/insavente/internal/application"
	"github.com/Ping-Win-Info/insavente/internal/container"
	pginfra "github.com/Ping-Win-Info/insavente/internal/infrastructure/postgres"
	handlers "github.com/Ping-Win-Info/insavente/internal/interface/http"
	"github.com/Ping-Win-Info/insavente/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	itemRepo := pginfra.NewItemRepository(pool)
	forumRepo := pginfra.NewForumRepository(pool)
	convRepo := pginfra.NewConversationRepository(pool)
	ratingRepo := pginfra.NewRatingRepository(pool)

	authSvc := application.NewAuthService(
		userRepo,
		jwt,
		logger,
		container.GetRabbit(),
		cfg.AppName,
		cfg.BcryptCost,
		cfg.MailSendEnabled,
	)
	itemSvc := application.NewItemService(
		itemRepo,
		logger,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESItemsIndex,
		cfg.MaxPageSize,
	)
	forumSvc := application.NewForumService(forumRepo, logger)
	convSvc := application.NewConversationService(convRepo, userRepo, logger)
	userSvc := application.NewUserService(userRepo, ratingRepo, container.GetRedis(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	r.Add(modules.NewItemModule(handlers.NewItemHandler(itemSvc, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewForumModule(handlers.NewForumHandler(forumSvc, logger), jwt))
	r.Add(modules.NewConversationModule(handlers.NewConversationHandler(convSvc, logger), jwt))
}
