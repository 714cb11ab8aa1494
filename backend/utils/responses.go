package utils

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/raidledger/raidledger/backend/models"
	"github.com/raidledger/raidledger/internal/gateways/tarkovdev"
	"github.com/raidledger/raidledger/tracker/services"
)

// UserLocalKey is the fiber local holding the authenticated *models.UserSession
const UserLocalKey = "user"

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data any) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data any, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data any, message string) error {
	return SendJSON(c, http.StatusCreated, models.NewSuccessResponse(data, message))
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message, details))
}

func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func SendUnauthorized(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func SendForbidden(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func SendConflict(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusConflict, "CONFLICT", message, details)
}

func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}

// SendNoContent sends a no content response
func SendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusNoContent)
}

// HandleValidationErrors converts validation errors to API response
func HandleValidationErrors(c *fiber.Ctx, errs []models.FieldValidationError) error {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field] = err.Message
	}
	return SendError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", details)
}

// SendServiceError maps a service error onto the response envelope.
func SendServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, tarkovdev.ErrDataUnavailable):
		return SendError(c, http.StatusBadGateway, "DATA_UNAVAILABLE", "Game data is currently unavailable", nil)
	case errors.Is(err, services.ErrNotFound):
		return SendNotFound(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return SendForbidden(c, "You are not a member of this team")
	case errors.Is(err, services.ErrInvalidInput):
		return SendBadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		return SendUnauthorized(c, err.Error())
	case errors.Is(err, services.ErrQuestCompleted):
		return SendError(c, http.StatusConflict, "QUEST_COMPLETED", err.Error(), nil)
	case errors.Is(err, services.ErrStationBuilt):
		return SendError(c, http.StatusConflict, "STATION_BUILT", err.Error(), nil)
	case errors.Is(err, services.ErrUsernameTaken):
		return SendError(c, http.StatusConflict, "USERNAME_TAKEN", err.Error(), nil)
	case errors.Is(err, services.ErrTeamFull):
		return SendError(c, http.StatusConflict, "TEAM_FULL", err.Error(), nil)
	}

	slog.Error("Unhandled request error",
		slog.String("type", "http"),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err))
	return SendInternalServerError(c, "Internal Server Error")
}

// ExtractUserSession extracts user session from Fiber context
func ExtractUserSession(c *fiber.Ctx) (*models.UserSession, bool) {
	session := c.Locals(UserLocalKey)
	if session == nil {
		return nil, false
	}

	userSession, ok := session.(*models.UserSession)
	return userSession, ok
}

// UserID returns the authenticated user's id or "" when there is none
func UserID(c *fiber.Ctx) string {
	if session, ok := ExtractUserSession(c); ok {
		return session.UserID
	}
	return ""
}

// GetIPAddress extracts the client IP address
func GetIPAddress(c *fiber.Ctx) string {
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := c.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return c.IP()
}

// GetUserAgent extracts the user agent
func GetUserAgent(c *fiber.Ctx) string {
	return c.Get("User-Agent")
}
