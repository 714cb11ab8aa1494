package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/raidledger/raidledger/backend/handlers"
	"github.com/raidledger/raidledger/backend/utils"
)

// AuthRequired rejects requests without a valid session cookie and stores
// the session in the request locals.
func AuthRequired(webApp *handlers.WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := webApp.GetSession(c)
		if err != nil {
			slog.Debug("Auth required: no valid session",
				slog.String("type", "http"),
				slog.String("error", err.Error()))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		if session == nil || session.UserID == "" {
			slog.Debug("Auth required: invalid session", slog.String("type", "http"))
			return utils.SendUnauthorized(c, "Authentication required")
		}

		c.Locals(utils.UserLocalKey, session)
		return c.Next()
	}
}
