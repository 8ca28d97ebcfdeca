package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/ideax-be/internal/auth"
	"github.com/hongminglow/ideax-be/internal/config"
	"github.com/hongminglow/ideax-be/internal/identity"
	"github.com/hongminglow/ideax-be/internal/logging"
	"github.com/hongminglow/ideax-be/internal/metrics"
	"github.com/hongminglow/ideax-be/internal/server"
	"github.com/hongminglow/ideax-be/internal/storage"
	postgres "github.com/hongminglow/ideax-be/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New("ideax-api", cfg.LogLevel)

	ctx := context.Background()
	store, err := postgres.NewAccountStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	m := metrics.New()

	bootstrapAdmin(ctx, cfg, store, hasher, m, logger)

	svc := identity.NewService(store, hasher, logger, identity.WithRecorder(m))
	srv := server.New(cfg, server.Deps{Registrar: svc, DB: store, Metrics: m, Logger: logger})

	go func() {
		logger.Info("IdeaX backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
}

// bootstrapAdmin runs before traffic is served. Failures are logged and retried on the next start.
func bootstrapAdmin(ctx context.Context, cfg config.Config, store storage.AccountStore, hasher auth.Hasher, m *metrics.Metrics, logger *slog.Logger) {
	seed := identity.DefaultAdminSeed()
	seed.Email = cfg.AdminEmail
	seed.Password = cfg.AdminPassword

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	created, err := identity.EnsureAdmin(ctx, store, hasher, logger, seed)
	outcome := bootstrapOutcome(created, err)
	m.Bootstrap(outcome)
	switch outcome {
	case "race":
		logger.Warn("admin bootstrap lost race to another instance", "error", err)
	case "conflict":
		logger.Error("admin seed email collides with an existing account; check ADMIN_EMAIL",
			"field", identity.FieldOf(err), "error", err)
	case "failed":
		logger.Error("admin bootstrap failed", "error", err)
	}
}

// bootstrapOutcome classifies an EnsureAdmin result. Only a conflict on the
// single-admin key means another instance seeded first; a conflict on email or
// phone means the seed collides with a regular account and no admin exists.
func bootstrapOutcome(created bool, err error) string {
	switch {
	case err == nil && created:
		return "created"
	case err == nil:
		return "present"
	case identity.IsDuplicate(err) && identity.FieldOf(err) == storage.FieldAdmin:
		return "race"
	case identity.IsDuplicate(err):
		return "conflict"
	default:
		return "failed"
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
