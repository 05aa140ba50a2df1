package routes

import (
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	v1 "gigboard/internal/delivery/http/routes/v1"
	"gigboard/internal/pkg/jwt"
	"gigboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	deps   v1.Deps
}

func NewRegistry(deps v1.Deps) *Registry {
	return &Registry{health: handler.NewHealthHandler(), deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerWS(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

// registerWS mounts the notification socket at the app root, outside the
// versioned API tree. The upgrade request still carries a bearer token.
func (r *Registry) registerWS(app *fiber.App) {
	jwtSvc := jwt.NewHMACService(
		r.deps.Config.JWT.AccessSecret,
		r.deps.Config.JWT.RefreshSecret,
		r.deps.Config.JWT.AccessExpiresIn,
		r.deps.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)
	wsHandler := ws.NewHandler(r.deps.Hub, r.deps.Logger)

	app.Get("/ws", wsHandler.HandleNotificationsWS, authMw.Middleware())
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
