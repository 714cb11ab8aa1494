package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/raidledger/raidledger/backend/models"
	"github.com/raidledger/raidledger/backend/utils"
	"github.com/raidledger/raidledger/tracker/services"
)

func ListTeams(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teams, err := webApp.Teams.List(c.Context(), utils.UserID(c))
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, teams, "")
	}
}

func CreateTeam(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.CreateTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		t, err := webApp.Teams.Create(c.Context(), utils.UserID(c), req.Name)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendCreated(c, t, "Team created")
	}
}

func JoinTeam(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.JoinTeamRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if req.InviteCode == "" {
			return utils.HandleValidationErrors(c, []webmodels.FieldValidationError{{Field: "inviteCode", Message: "inviteCode is required"}})
		}

		t, err := webApp.Teams.Join(c.Context(), utils.UserID(c), req.InviteCode)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, t, "Joined team")
	}
}

func GetTeam(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		detail, err := webApp.Teams.Get(c.Context(), utils.UserID(c), c.Params("teamId"))
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, detail, "")
	}
}

// TeamNeeds returns the combined item needs of every member
func TeamNeeds(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		source := services.NeedsSource(c.Query("source", string(services.NeedsAll)))
		switch source {
		case services.NeedsAll, services.NeedsQuests, services.NeedsHideout:
		default:
			return utils.HandleValidationErrors(c, []webmodels.FieldValidationError{{Field: "source", Message: "source must be one of all, quests, hideout"}})
		}
		scope, errs := utils.ParseScope(c, c.Query("scope"))
		if len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}
		filter, errs := utils.ParseFilter(c)
		if len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		view, err := webApp.Teams.Needs(c.Context(), utils.UserID(c), c.Params("teamId"), services.NeedsQuery{
			Source: source,
			Scope:  scope,
			Filter: filter,
		})
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, view, "")
	}
}

// TeamQuests returns the member-by-quest status matrix
func TeamQuests(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := webApp.Teams.Quests(c.Context(), utils.UserID(c), c.Params("teamId"), utils.QueryBool(c, "kappa"))
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, rows, "")
	}
}
