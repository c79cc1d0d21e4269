package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/config"
	"github.com/example/roadhelper/internal/utils"
)

const identityContextKey = "currentIdentity"

// Identity is the authenticated principal extracted from a JWT.
type Identity struct {
	Email  string
	UserID uint
}

// AuthMiddleware validates Bearer tokens and loads the authenticated identity
// into the request context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		email, userID, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(identityContextKey, Identity{Email: email, UserID: userID})
		return c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from context.
func CurrentIdentity(c *fiber.Ctx) (Identity, bool) {
	value := c.Locals(identityContextKey)
	if value == nil {
		return Identity{}, false
	}

	if id, ok := value.(Identity); ok {
		return id, true
	}

	return Identity{}, false
}
