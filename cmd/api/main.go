package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/image-service/internal/api/http"
	"github.com/spec-kit/image-service/internal/api/http/handlers"
	"github.com/spec-kit/image-service/internal/auth"
	"github.com/spec-kit/image-service/internal/config"
	"github.com/spec-kit/image-service/internal/events"
	"github.com/spec-kit/image-service/internal/media"
	"github.com/spec-kit/image-service/internal/observability"
	"github.com/spec-kit/image-service/internal/persistence"
	"github.com/spec-kit/image-service/internal/repository"
	"github.com/spec-kit/image-service/internal/service"
	"github.com/spec-kit/image-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	mediaStore, err := media.NewS3Store(ctx, cfg.Media)
	if err != nil {
		logger.Fatal("failed to init media store", zap.Error(err))
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	imageRepo := repository.NewImageRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	userService := service.NewUserService(userRepo, tokenManager, dispatcher, logger, cfg.Auth.BcryptCost)
	mediaService := service.NewMediaService(mediaStore, imageRepo, redis.ClientHandle(), cfg.Redis.ViewTTL(), dispatcher, logger)

	policy := httptransport.NewAccessPolicy()
	authMiddleware := auth.NewMiddleware(tokenManager, policy, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		BodyLimit:     int(cfg.Media.MaxUploadBytes) + 1<<20,
		CaseSensitive: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(userService),
		Images:         handlers.NewImagesHandler(mediaService, cfg.Media.MaxUploadBytes),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
