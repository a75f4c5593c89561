package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bookhive/internal/config"
	"github.com/example/bookhive/internal/models"
	"github.com/example/bookhive/internal/utils"
)

// SessionCookie is the name of the cookie carrying the session JWT.
const SessionCookie = "token"

const userContextKey = "currentUser"

// AuthMiddleware validates the session cookie and loads the authenticated
// user record into context. The record is re-read per request so deleted
// accounts drop out immediately.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cookie := c.Cookies(SessionCookie)
		if cookie == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated.")
		}

		userID, err := utils.ParseToken(cfg.JWTSecret, cookie)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid session token.")
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated.")
		}

		c.Locals(userContextKey, &user)
		return c.Next()
	}
}

// AdminOnly rejects requests from non-admin users. Must run after
// AuthMiddleware.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := GetCurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "User is not authenticated.")
		}
		if user.Role != models.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Only admins are allowed to access this resource.")
		}
		return c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from context.
func GetCurrentUser(c *fiber.Ctx) (*models.User, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return nil, false
	}

	if user, ok := value.(*models.User); ok {
		return user, true
	}

	return nil, false
}
