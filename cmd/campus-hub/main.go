package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"campus-hub/internal/api"
	"campus-hub/internal/api/handlers"
	"campus-hub/internal/messaging"
	"campus-hub/internal/recommend"
	"campus-hub/internal/repository"
	"campus-hub/internal/saved"
	"campus-hub/internal/service"
	"campus-hub/pkg/auth"
	"campus-hub/pkg/config"
	"campus-hub/pkg/logger"
	"campus-hub/pkg/postgres"
	"campus-hub/pkg/redis"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting campus-hub")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger.Component("users"))
	profileRepo := repository.NewProfileRepository(db, logger.Component("profiles"))
	dirRepo := repository.NewDirectoryRepository(db, logger.Component("directory"))
	recRepo := repository.NewRecommendationRepository(db, logger.Component("recommendations"))
	listingRepo := repository.NewListingRepository(db, logger.Component("listings"))
	savedRepo := repository.NewSavedRepository(db, logger.Component("saved"))
	msgRepo := repository.NewMessageRepository(db, logger.Component("messages"))

	// Realtime events are optional; without NATS they are dropped.
	var publisher messaging.Publisher = messaging.Discard{}
	natsCfg := messaging.DefaultNATSConfig()
	natsCfg.URL = cfg.NATS.URL
	if nc, err := messaging.NewNATSClient(natsCfg, logger.Component("nats")); err != nil {
		appLogger.Warn("NATS unavailable, realtime events disabled", zap.Error(err))
	} else {
		publisher = nc
		defer nc.Close()
	}

	bookmarks, err := newBookmarks(ctx, cfg, savedRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to set up saved items", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, profileRepo, dirRepo, jwtManager, logger.Component("auth"))
	profileService := service.NewProfileService(profileRepo, logger.Component("profiles"))
	recService := service.NewRecommendationService(profileRepo, recRepo, dirRepo, logger.Component("recommendations"))
	dirService := service.NewDirectoryService(dirRepo, logger.Component("directory"))
	listingService := service.NewListingService(listingRepo, profileRepo, bookmarks, publisher, logger.Component("listings"))
	msgService := service.NewMessageService(msgRepo, profileRepo, publisher, logger.Component("messages"))
	pruneService := service.NewPruneService(userRepo, cfg.Onboarding.PreStudentRetention, logger.Component("prune"))

	defaultLang := language.Make(cfg.Locale.Default)
	if supported := recommend.MatchLanguage(cfg.Locale.Default, recommend.Supported[0]); supported != defaultLang {
		appLogger.Warn("Default locale has no labels, using closest supported",
			zap.String("configured", cfg.Locale.Default),
			zap.String("using", supported.String()),
		)
	}

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Auth:           handlers.NewAuthHandler(authService, appLogger),
		Profile:        handlers.NewProfileHandler(profileService, appLogger),
		Recommendation: handlers.NewRecommendationHandler(recService, defaultLang, appLogger),
		Directory:      handlers.NewDirectoryHandler(dirService, appLogger),
		Listing:        handlers.NewListingHandler(listingService, appLogger),
		Message:        handlers.NewMessageHandler(msgService, appLogger),
	}, jwtManager, api.Options{
		AllowOrigins: cfg.Server.AllowOrigins,
		RequestLog:   cfg.Logger.Level == "debug",
	}, appLogger)

	go pruneService.Run(ctx, cfg.Server.PruneInterval)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}

// newBookmarks picks the saved items store. The Redis store is only offered
// when Redis answers.
func newBookmarks(ctx context.Context, cfg *config.Config, repo *repository.SavedRepository, appLogger *zap.Logger) (*saved.Service, error) {
	remote := saved.NewRemoteStore(repo)
	force := cfg.Onboarding.SavedItemsBackend

	client, err := redis.NewClient(ctx, &cfg.Redis, appLogger)
	if err != nil {
		if force == saved.BackendLocal {
			return nil, err
		}
		appLogger.Warn("Redis unavailable, saved items use the database", zap.Error(err))
		return saved.NewService(remote, logger.Component("saved")), nil
	}

	store, err := saved.Select(ctx, remote, saved.NewLocalStore(client), repo, force, appLogger)
	if err != nil {
		return nil, err
	}
	return saved.NewService(store, logger.Component("saved")), nil
}
