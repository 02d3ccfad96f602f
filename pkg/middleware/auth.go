package middleware

import (
	"strings"

	"campus-hub/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals keys set by AuthMiddleware.
const (
	LocalUserID     = "userID"
	LocalEmail      = "email"
	LocalPreStudent = "preStudent"
)

func AuthMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateTokenOfType(token, auth.TokenTypeAccess)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalPreStudent, claims.PreStudent)

		return c.Next()
	}
}

// RequireVerified rejects pre-student accounts.
func RequireVerified() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if pre, _ := c.Locals(LocalPreStudent).(bool); pre {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Verify your university email to use this feature",
			})
		}
		return c.Next()
	}
}
