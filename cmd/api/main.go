package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/storekit/storefront-api/docs"
	"github.com/storekit/storefront-api/internal/api"
	"github.com/storekit/storefront-api/internal/api/handler"
	"github.com/storekit/storefront-api/internal/core/service"
	"github.com/storekit/storefront-api/internal/infrastructure/config"
	"github.com/storekit/storefront-api/internal/infrastructure/crypto"
	mongodb "github.com/storekit/storefront-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storekit/storefront-api/internal/infrastructure/db/redis"
	"github.com/storekit/storefront-api/internal/infrastructure/queue"
	"github.com/storekit/storefront-api/internal/infrastructure/token"
	"github.com/storekit/storefront-api/pkg/logger"
)

// @title                      Storefront API
// @version                    1.0
// @description                Identity, session and collection management API.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("account index creation failed")
	}
	collectionRepo := mongodb.NewCollectionRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Redis (login throttle); optional, service degrades without it ---
	var limiter *redisdb.LoginLimiter
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
	} else {
		defer rdb.Close()
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Login.MaxFailures, cfg.Login.Window)
	}

	// --- Audit pipeline ---
	dispatcher := queue.NewAuditDispatcher(cfg.AuditWorkers, auditRepo, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	hasher := crypto.NewBcryptHasher(cfg.BcryptCost)
	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	var authService *service.AuthService
	if limiter != nil {
		authService = service.NewAuthService(accountRepo, hasher, issuer, limiter, dispatcher)
	} else {
		authService = service.NewAuthService(accountRepo, hasher, issuer, nil, dispatcher)
	}
	collectionService := service.NewCollectionService(collectionRepo)

	e := api.NewRouter(api.Deps{
		AuthService:       authService,
		CollectionService: collectionService,
		AccountRepo:       accountRepo,
		SessionIssuer:     issuer,
		Health:            handler.NewHealthHandler(),
		Readiness:         handler.NewReadinessHandler(db, rdb),
		Log:               log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting storefront API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
