package v1

import (
	"log"

	"gigboard/internal/config"
	"gigboard/internal/database"
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/infrastructure/cache"
	"gigboard/internal/pkg/jwt"
	"gigboard/internal/repository"
	"gigboard/internal/usecase"
	"gigboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure the v1 route tree is built on.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	jobRepo := repository.NewPostgresJobRepository(deps.DB)
	appRepo := repository.NewPostgresApplicationRepository(deps.DB)
	reviewRepo := repository.NewPostgresReviewRepository(deps.DB)
	notifRepo := repository.NewPostgresNotificationRepository(deps.DB)

	pusher := ws.NewNotificationPusher(deps.Hub)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	profileUC := usecase.NewProfileUsecase(userRepo)
	dashboardUC := usecase.NewDashboardUsecase(appRepo, jobRepo, deps.Logger)
	jobUC := usecase.NewJobUsecase(jobRepo, appRepo, userRepo, deps.Cache, deps.Logger)
	appUC := usecase.NewApplicationUsecase(appRepo, jobRepo, userRepo, notifRepo, deps.Cache, pusher, deps.Logger)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, appRepo, jobRepo, notifRepo, pusher, deps.Logger)
	notifUC := usecase.NewNotificationUsecase(notifRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(profileUC, dashboardUC)
	jobHandler := handler.NewJobHandler(jobUC)
	appHandler := handler.NewApplicationHandler(appUC)
	reviewHandler := handler.NewReviewHandler(reviewUC)
	notifHandler := handler.NewNotificationHandler(notifUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	usersGroup := protected.Group("/users")
	reviewHandler.RegisterUserRoutes(usersGroup)
	appHandler.RegisterUserRoutes(usersGroup)
	userHandler.RegisterRoutes(usersGroup)

	jobsGroup := protected.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)
	appHandler.RegisterJobRoutes(jobsGroup)

	appsGroup := protected.Group("/applications")
	appHandler.RegisterRoutes(appsGroup)

	reviewsGroup := protected.Group("/reviews")
	reviewHandler.RegisterRoutes(reviewsGroup)

	notifsGroup := protected.Group("/notifications")
	notifHandler.RegisterRoutes(notifsGroup)
}
