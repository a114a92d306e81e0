// Command adminctl provisions administrator accounts directly in the database.
//
//	adminctl -email ops@example.com -role admin   # password read from ADMIN_PASSWORD
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/artem13815/users-api/pkg/auth"
	"github.com/artem13815/users-api/pkg/config"
	"github.com/artem13815/users-api/pkg/logger"
	pgrepo "github.com/artem13815/users-api/pkg/repository/postgres"
	"github.com/artem13815/users-api/pkg/security/password"
	"github.com/artem13815/users-api/pkg/storage/postgres"
)

func main() {
	email := flag.String("email", "", "administrator email")
	role := flag.String("role", "admin", "administrator role")
	cost := flag.Int("cost", 0, "bcrypt cost (0 uses the library default)")
	timeout := flag.Duration("timeout", time.Minute, "command timeout")
	flag.Parse()

	plain := os.Getenv("ADMIN_PASSWORD")
	if *email == "" || plain == "" {
		flag.Usage()
		log.Fatal("both -email and ADMIN_PASSWORD are required")
	}

	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.ConnectWithRetry(ctx, cfg.DSN(), cfg.DBConnectAttempts, cfg.DBConnectDelay, zlog)
	if err != nil {
		zlog.Fatal("postgres connect", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, zlog); err != nil {
		zlog.Fatal("migrate", zap.Error(err))
	}

	// Provisioning never issues tokens.
	svc := auth.NewAuthService(pgrepo.NewAdminRepository(pool), password.NewBcrypt(*cost), nil)
	admin, err := svc.Provision(ctx, *email, plain, *role)
	if err != nil {
		if errors.Is(err, auth.ErrAdminAlreadyExists) {
			zlog.Fatal("administrator already exists", zap.String("email", *email))
		}
		zlog.Fatal("provision administrator", zap.Error(err))
	}
	zlog.Info("administrator provisioned", zap.Int64("id", admin.ID), zap.String("email", admin.Email), zap.String("role", admin.Role))
}
