package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/dfrgroup/hrms/internal/core/port"
	"github.com/dfrgroup/hrms/internal/infra/config"
	"github.com/dfrgroup/hrms/internal/infra/database"
	"github.com/dfrgroup/hrms/internal/infra/geoip"
	kafkainfra "github.com/dfrgroup/hrms/internal/infra/kafka"
	"github.com/dfrgroup/hrms/internal/infra/logger"
	redisinfra "github.com/dfrgroup/hrms/internal/infra/redis"
	"github.com/dfrgroup/hrms/internal/infra/security"
	postgresrepo "github.com/dfrgroup/hrms/internal/repository/postgres"
	redisrepo "github.com/dfrgroup/hrms/internal/repository/redis"
	"github.com/dfrgroup/hrms/internal/transport/http/middleware"
	"github.com/dfrgroup/hrms/internal/transport/http/routes"
	"github.com/dfrgroup/hrms/internal/usecase"
)

// Application wires configuration, storage, and transport into a runnable server.
type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
}

// New builds the application graph from configuration.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	argonCfg := security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}
	if err := security.ConfigureArgon2(argonCfg); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool, cfg.Auth.LockoutThreshold)

	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer, err := kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(kafkaProducer, cfg.App, log)
			log.Info("kafka event publisher initialized", zap.Strings("brokers", cfg.Kafka.Brokers))
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	geoResolver, err := buildGeoResolver(cfg.GeoIP)
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("init geoip resolver: %w", err)
	}

	throttleStore := redisrepo.NewLoginThrottle(redisClient.Client(), cfg.Redis.RateLimitPrefix, cfg.Redis.RateLimitTTL)
	throttle := middleware.NewThrottle(throttleStore, log)

	metrics := middleware.NewHTTPMetrics(nil, "hr")

	loginService := usecase.NewLoginService(
		usecase.LoginConfig{
			RiskBlockScore:     cfg.Auth.RiskBlockScore,
			RiskChallengeScore: cfg.Auth.RiskChallengeScore,
			SessionTTL:         cfg.Session.TTL,
		},
		repos.Accounts,
		repos.Blocklist,
		repos.Audit,
		repos.Sessions,
		geoResolver,
		security.NewTOTPVerifier(cfg.Auth.TwoFactorSkew),
		eventPublisher,
		log,
	)
	registrationService := usecase.NewRegistrationService(repos.Accounts, eventPublisher, log)
	directoryService := usecase.NewDirectoryService(repos.Accounts, repos.Audit)

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Throttle: throttle,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
		Services: routes.ServiceSet{
			Login:        loginService,
			Registration: registrationService,
			Directory:    directoryService,
		},
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting HR API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}

func buildGeoResolver(cfg config.GeoIPSettings) (port.GeoResolver, error) {
	if len(cfg.Ranges) == 0 {
		return geoip.NewStaticResolver(cfg.DefaultCountry), nil
	}
	return geoip.NewCIDRResolver(cfg.Ranges, cfg.DefaultCountry)
}
