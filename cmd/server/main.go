// @title         users-api
// @version       1.0
// @description   User registration with administrator-only removal.
// @BasePath      /
// @schemes       http
// @host          localhost:8000
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Administrator token, sent as "Bearer <JWT>".
package main

//go:generate swag init -d ../.. -g cmd/server/main.go -o ../../docs

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	swagger "github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	// internal imports
	_ "github.com/artem13815/users-api/docs"

	"github.com/artem13815/users-api/api/http"
	"github.com/artem13815/users-api/api/http/handlers"
	"github.com/artem13815/users-api/pkg/auth"
	"github.com/artem13815/users-api/pkg/config"
	"github.com/artem13815/users-api/pkg/health"
	healthcheckers "github.com/artem13815/users-api/pkg/health/checkers"
	"github.com/artem13815/users-api/pkg/logger"
	"github.com/artem13815/users-api/pkg/metrics"
	"github.com/artem13815/users-api/pkg/ratelimit"
	pgrepo "github.com/artem13815/users-api/pkg/repository/postgres"
	"github.com/artem13815/users-api/pkg/security/jwt"
	"github.com/artem13815/users-api/pkg/security/password"
	"github.com/artem13815/users-api/pkg/storage/postgres"
	"github.com/artem13815/users-api/pkg/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Block until the store accepts connections, then make sure the schema exists.
	pool, err := postgres.ConnectWithRetry(ctx, cfg.DSN(), cfg.DBConnectAttempts, cfg.DBConnectDelay, zlog)
	if err != nil {
		zlog.Fatal("postgres connect", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, zlog); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	// Wire dependencies
	userRepo := pgrepo.NewUserRepository(pool)
	adminRepo := pgrepo.NewAdminRepository(pool)

	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	authUC := auth.NewAuthService(adminRepo, password.NewBcrypt(0), tokens)
	usersUC := users.NewService(userRepo)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mtr := metrics.New(reg)

	checkers := []health.Checker{healthcheckers.NewPostgresChecker(pool)}

	// Login throttling: shared through Redis when configured, per process otherwise.
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		limiter = ratelimit.NewRedis(rdb, zlog)
		checkers = append(checkers, healthcheckers.NewRedisChecker(rdb))
	} else {
		limiter = ratelimit.NewMemory()
	}
	defer limiter.Close()

	app := http.NewApp(http.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Metrics:          mtr.Middleware(),
	}, zlog)

	http.Register(app, http.Routes{
		Users:      handlers.NewUsersHandler(usersUC, zlog),
		Auth:       handlers.NewAuthHandler(authUC, mtr, zlog),
		Health:     handlers.NewHealthHandler(health.NewService(checkers...)),
		AdminOnly:  jwt.NewAccessGuard(tokens, authUC, zlog),
		LoginLimit: ratelimit.Middleware(limiter, "login", cfg.LoginRateLimit, cfg.LoginRateWindow, mtr.RecordRateLimited),
	})

	app.Get("/metrics", mtr.Handler())
	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	go func() {
		<-ctx.Done()
		zlog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zlog.Error("shutdown", zap.Error(err))
		}
	}()

	zlog.Info("HTTP server listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Error("server stopped", zap.Error(err))
	}
}
