package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jeelTecheniac/chat-demo-backend/internal/auth"
)

// CookieName is the session cookie set at registration and login.
const CookieName = "chattu-token"

// UserIDKey is the locals key the authenticated user id is stored under.
const UserIDKey = "userID"

// Auth accepts the session token from the Authorization header or the
// session cookie and stores the resolved user id in the request locals.
func Auth(tokens *auth.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			token = c.Cookies(CookieName)
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "please login to access this route")
		}
		userID, err := tokens.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}
		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id stored by Auth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
