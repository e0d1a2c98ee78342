package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/infra/config"
	"github.com/dfrgroup/hrms/internal/transport/http/handlers"
	"github.com/dfrgroup/hrms/internal/transport/http/middleware"
	"github.com/dfrgroup/hrms/internal/usecase"
)

// ServiceSet groups the services the HTTP layer depends on.
type ServiceSet struct {
	Login        *usecase.LoginService
	Registration *usecase.RegistrationService
	Directory    *usecase.DirectoryService
}

// Dependencies encapsulates the objects required to register routes.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Throttle    *middleware.Throttle
	Metrics     *middleware.HTTPMetrics
	Services    ServiceSet
	Database    DatabaseChecker
	Cache       CacheChecker
}

// DatabaseChecker exposes readiness behaviour for database connections.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker exposes readiness behaviour for cache backends.
type CacheChecker interface {
	HealthCheck(ctx context.Context) error
}

// Register configures the Gin engine with routes and middleware.
func Register(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.EnrichContext())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.CORS(deps.Config.App.AllowedOrigins))
	r.Use(deps.Metrics.Handler())

	healthOptions := make([]handlers.HealthOption, 0, 2)

	if deps.Database != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("database", deps.Database.Ping))
	}

	if deps.Cache != nil {
		healthOptions = append(healthOptions, handlers.WithReadinessCheck("redis", deps.Cache.HealthCheck))
	}

	healthHandler := handlers.NewHealthHandler(healthOptions...)

	r.GET("/healthz", healthHandler.Status)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cookie := handlers.SessionCookie{
		Name:   deps.Config.Session.CookieName,
		Domain: deps.Config.Session.CookieDomain,
		Secure: deps.Config.Session.CookieSecure,
		TTL:    deps.Config.Session.TTL,
	}

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")

		authHandler := handlers.NewAuthHandler(deps.Services.Login, deps.Services.Registration, cookie)

		window := deps.Config.RateLimit.WindowDuration
		if window <= 0 {
			window = time.Minute
		}

		authGroup.POST("/login",
			deps.Throttle.ByClientIP("login_ip", deps.Config.RateLimit.LoginMaxAttempts, window),
			authHandler.Login)
		authGroup.POST("/register",
			deps.Throttle.ByClientIP("register_ip", deps.Config.RateLimit.RegisterMaxAttempts, window),
			authHandler.Register)

		authGroup.POST("/logout", authHandler.Logout)

		usersGroup := api.Group("")
		usersGroup.Use(middleware.SessionAuth(deps.Services.Login, cookie.Name, deps.Logger))

		usersHandler := handlers.NewUsersHandler(deps.Services.Directory)
		usersHandler.RegisterRoutes(usersGroup)
	}

	return r
}
