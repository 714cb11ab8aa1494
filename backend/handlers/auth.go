package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/raidledger/raidledger/backend/models"
	"github.com/raidledger/raidledger/backend/utils"
	"github.com/raidledger/raidledger/tracker/database/models"
)

func Register(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseCredentials(c)
		if err != nil {
			return err
		}
		if req == nil {
			return nil
		}

		user, err := webApp.Auth.Register(c.Context(), req.Username, req.Password)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return startSession(c, webApp, user, fiber.StatusCreated)
	}
}

func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseCredentials(c)
		if err != nil {
			return err
		}
		if req == nil {
			return nil
		}

		user, err := webApp.Auth.Login(c.Context(), req.Username, req.Password)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return startSession(c, webApp, user, fiber.StatusOK)
	}
}

func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.SessionService.DestroySession(c)
		return utils.SendNoContent(c)
	}
}

// Me returns the signed-in user's account
func Me(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := webApp.Auth.User(c.Context(), utils.UserID(c))
		if err != nil {
			if isNotFound(err) {
				webApp.SessionService.DestroySession(c)
				return utils.SendUnauthorized(c, "Account no longer exists")
			}
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewUserDTO(user), "")
	}
}

// parseCredentials returns a nil request after it has already written a
// validation response.
func parseCredentials(c *fiber.Ctx) (*webmodels.CredentialsRequest, error) {
	var req webmodels.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, utils.SendBadRequest(c, "Invalid request body", nil)
	}
	if errs := utils.ValidateCredentials(&req); len(errs) > 0 {
		return nil, utils.HandleValidationErrors(c, errs)
	}
	return &req, nil
}

func startSession(c *fiber.Ctx, webApp *WebApp, user *models.User, status int) error {
	if _, err := webApp.SessionService.CreateSession(c, user.ID, user.Username); err != nil {
		return utils.SendServiceError(c, err)
	}
	return utils.SendJSON(c, status, webmodels.NewSuccessResponse(webmodels.NewUserDTO(user), ""))
}
