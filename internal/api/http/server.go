package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http/handlers"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http/views"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/apiclient"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/config"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/events"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/observability"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/service"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// ServerDeps are the collaborators of the web server.
type ServerDeps struct {
	Config     *config.Config
	Logger     *zap.Logger
	API        *apiclient.Client
	Backend    session.Backend
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	HealthDeps map[string]handlers.Pinger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewServer builds the Fiber app with every page wired.
func NewServer(deps ServerDeps) (*fiber.App, error) {
	engine, err := views.New()
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		Views:                 engine,
		DisableStartupMessage: true,
		BodyLimit:             10 * 1024 * 1024,
		Immutable:             true,
	})
	RegisterMiddlewares(app, logger, deps.Metrics, cfg.App.RequestTimeout())

	resolver := session.NewResolver(logger, session.WithClock(now), session.WithDispatcher(deps.Dispatcher))
	authService := service.NewAuthService(deps.API, deps.Dispatcher, logger)
	pages := handlers.NewPages(deps.API, logger).WithClock(now)

	RegisterRoutes(app, RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps.Metrics, deps.HealthDeps),
		Auth:        handlers.NewAuthHandler(pages, authService),
		Home:        handlers.NewHomeHandler(pages),
		Forms:       handlers.NewFormsHandler(pages),
		Statistics:  handlers.NewStatisticsHandler(pages),
		Users:       handlers.NewUsersHandler(pages),
		Departments: handlers.NewDepartmentsHandler(pages),
		Data:        handlers.NewDataHandler(pages, deps.Dispatcher),
		Scope: session.NewScopeMiddleware(deps.Backend, session.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.CookieMaxAge(),
		}),
		Guard:          auth.NewGuard(auth.DefaultLoginPath),
		Identity:       auth.NewIdentityLoader(resolver),
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
	})
	return app, nil
}
