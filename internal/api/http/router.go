package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/api/http/handlers"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/auth"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/navigation"
	"github.com/Python-viet/quan-ly-thiet-bi-frontend/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Home           *handlers.HomeHandler
	Forms          *handlers.FormsHandler
	Statistics     *handlers.StatisticsHandler
	Users          *handlers.UsersHandler
	Departments    *handlers.DepartmentsHandler
	Data           *handlers.DataHandler
	Scope          *session.ScopeMiddleware
	Guard          *auth.Guard
	Identity       *auth.IdentityLoader
	LoginPerMinute int
}

// RegisterRoutes wires HTTP routes. Probes are registered ahead of the
// session scope so they never set cookies.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	site := app.Group("", cfg.Scope.Handle)
	site.Get("/", cfg.Auth.Root)
	site.Get(auth.DefaultLoginPath, cfg.Auth.LoginPage)
	site.Post(auth.DefaultLoginPath, loginLimiter(cfg), cfg.Auth.Login)
	site.Post("/logout", cfg.Identity.Handle, cfg.Auth.Logout)

	protected := site.Group("/app", cfg.Guard.Handle, cfg.Identity.Handle)
	protected.Get("/", cfg.Auth.AppIndex)
	protected.Get(strip(navigation.RouteHome), cfg.Home.Show)

	protected.Get(strip(navigation.RouteNewForm), cfg.Forms.NewForm)
	protected.Post(strip(navigation.RouteNewForm), cfg.Forms.Create)
	protected.Get(strip(navigation.RouteHistory), cfg.Forms.History)
	protected.Get(strip(navigation.RouteHistory)+"/:id/edit", cfg.Forms.Edit)
	protected.Post(strip(navigation.RouteHistory)+"/:id", cfg.Forms.Update)
	protected.Post(strip(navigation.RouteHistory)+"/:id/delete", cfg.Forms.Delete)

	protected.Get(strip(navigation.RouteStatistics), cfg.Statistics.Show)
	protected.Get(strip(navigation.RouteStatistics)+"/export", cfg.Statistics.Export)

	users := protected.Group(strip(navigation.RouteUserManagement))
	users.Get("/", cfg.Users.List)
	users.Post("/", cfg.Users.Create)
	users.Post("/bulk-upload", cfg.Users.BulkUpload)
	users.Post("/:id/reset-password", cfg.Users.ResetPassword)
	users.Post("/:id/delete", cfg.Users.Delete)

	departments := protected.Group(strip(navigation.RouteDepartmentManagement))
	departments.Get("/", cfg.Departments.List)
	departments.Post("/", cfg.Departments.Create)
	departments.Post("/:id", cfg.Departments.Update)
	departments.Post("/:id/delete", cfg.Departments.Delete)

	data := protected.Group(strip(navigation.RouteDataManagement))
	data.Get("/", cfg.Data.Show)
	data.Post("/backup", cfg.Data.Backup)
	data.Post("/new-year", cfg.Data.NewYear)
}

func loginLimiter(cfg RouteConfig) fiber.Handler {
	if cfg.LoginPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        cfg.LoginPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: cfg.Auth.LoginThrottled,
	})
}

// strip turns an absolute /app route into a path relative to the /app group.
func strip(route string) string {
	return route[len("/app"):]
}
