package api

import (
	"errors"

	"campus-hub/internal/api/handlers"
	"campus-hub/internal/metrics"
	"campus-hub/pkg/auth"
	"campus-hub/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Recommendation *handlers.RecommendationHandler
	Directory      *handlers.DirectoryHandler
	Listing        *handlers.ListingHandler
	Message        *handlers.MessageHandler
}

type Options struct {
	AllowOrigins string
	// RequestLog enables fiber's access log.
	RequestLog bool
}

func SetupRouter(h Handlers, jwtManager *auth.JWTManager, opts Options, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			} else {
				appLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Accept-Language,Authorization",
	}))
	if opts.RequestLog {
		app.Use(logger.New())
	}
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	v1 := app.Group("/api/v1")

	// Public routes
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)

	directory := v1.Group("/directory")
	directory.Get("/cities", h.Directory.Cities)
	directory.Get("/cities/:id/universities", h.Directory.Universities)
	directory.Get("/universities/:id/schools", h.Directory.Schools)
	directory.Get("/schools/:id/departments", h.Directory.Departments)

	// Protected routes
	requireAuth := middleware.AuthMiddleware(jwtManager, appLogger)

	profiles := v1.Group("/profiles", requireAuth)
	profiles.Get("/me", h.Profile.Me)
	profiles.Put("/me", h.Profile.UpdateMe)
	profiles.Get("", h.Profile.Search)
	profiles.Get("/:id", h.Profile.Get)
	profiles.Post("/:id/follow", h.Profile.Follow)
	profiles.Delete("/:id/follow", h.Profile.Unfollow)

	recs := v1.Group("/recommendations", requireAuth)
	recs.Get("/peers", h.Recommendation.Peers)
	recs.Get("/tiered", h.Recommendation.Tiered)

	listings := v1.Group("/listings", requireAuth)
	listings.Get("", h.Listing.List)
	listings.Post("", middleware.RequireVerified(), h.Listing.Create)
	listings.Get("/:id", h.Listing.Get)
	listings.Delete("/:id", h.Listing.Delete)
	listings.Post("/:id/save", h.Listing.Save)
	listings.Delete("/:id/save", h.Listing.Unsave)
	listings.Post("/:id/save/toggle", h.Listing.ToggleSave)
	v1.Get("/saved", requireAuth, h.Listing.Saved)

	conversations := v1.Group("/conversations", requireAuth)
	conversations.Get("", h.Message.Conversations)
	conversations.Post("", h.Message.Start)
	conversations.Get("/:id/messages", h.Message.Messages)
	conversations.Post("/:id/messages", h.Message.Send)

	return app
}
