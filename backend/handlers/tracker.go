package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/raidledger/raidledger/backend/models"
	"github.com/raidledger/raidledger/backend/utils"
	"github.com/raidledger/raidledger/internal/domain/eligibility"
	"github.com/raidledger/raidledger/internal/domain/requirements"
	"github.com/raidledger/raidledger/tracker/services"
)

func GetProgress(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := webApp.Tracker.Progress(c.Context(), utils.UserID(c))
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewProgressDTO(p), "")
	}
}

// UpdateProgress applies a partial progress update and returns the stored
// progress.
func UpdateProgress(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req services.ProgressUpdate
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		userID := utils.UserID(c)
		if err := webApp.Tracker.UpdateProgress(c.Context(), userID, req); err != nil {
			return utils.SendServiceError(c, err)
		}

		p, err := webApp.Tracker.Progress(c.Context(), userID)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, webmodels.NewProgressDTO(p), "Progress updated")
	}
}

func questQuery(c *fiber.Ctx) (services.QuestQuery, bool) {
	q := services.QuestQuery{
		KappaOnly:       utils.QueryBool(c, "kappa"),
		LightkeeperOnly: utils.QueryBool(c, "lightkeeper"),
		Trader:          c.Query("trader"),
	}
	switch status := eligibility.Status(c.Query("status")); status {
	case "", eligibility.StatusLocked, eligibility.StatusAvailable, eligibility.StatusCompleted:
		q.Status = status
	default:
		return q, false
	}
	return q, true
}

// Quests lists quests with their resolved status for the signed-in user
func Quests(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, ok := questQuery(c)
		if !ok {
			return utils.SendBadRequest(c, "status must be one of locked, available, completed", nil)
		}
		view, err := webApp.Tracker.Quests(c.Context(), utils.UserID(c), query)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, view, "")
	}
}

func QuestSummary(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := webApp.Tracker.Quests(c.Context(), utils.UserID(c), services.QuestQuery{})
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{
			"summary":   view.Summary,
			"fetchedAt": view.FetchedAt,
			"stale":     view.Stale,
		}, "")
	}
}

func QuestItems(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, errs := utils.ParseScope(c, c.Query("scope"))
		if len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}
		filter, errs := utils.ParseFilter(c)
		if len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		view, err := webApp.Tracker.QuestItems(c.Context(), utils.UserID(c), services.ItemQuery{
			Scope:  scope,
			Filter: filter,
			Fuzzy:  utils.QueryBool(c, "fuzzy"),
		})
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, view, "")
	}
}

// AdjustQuestItem handles {delta} and {markAll} changes to one quest item
func AdjustQuestItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok, err := parseAdjustRequest(c)
		if !ok {
			return err
		}
		scope, errs := utils.ParseScope(c, req.Scope)
		if len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		userID, itemID := utils.UserID(c), c.Params("itemId")
		var item requirements.Item
		if req.Delta != nil {
			item, err = webApp.Tracker.AdjustQuestItem(c.Context(), userID, itemID, *req.Delta, scope)
		} else {
			item, err = webApp.Tracker.MarkQuestItem(c.Context(), userID, itemID, req.MarkAll == webmodels.MarkAllFound, scope)
		}
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, item, "")
	}
}

func HideoutItems(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, errs := utils.ParseFilter(c)
		if len(errs) > 0 {
			return utils.HandleValidationErrors(c, errs)
		}

		view, err := webApp.Tracker.HideoutItems(c.Context(), utils.UserID(c), services.HideoutQuery{
			ActiveOnly: utils.QueryBool(c, "active"),
			Filter:     filter,
			Fuzzy:      utils.QueryBool(c, "fuzzy"),
		})
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, view, "")
	}
}

func AdjustHideoutItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, ok, err := parseAdjustRequest(c)
		if !ok {
			return err
		}
		if req.Delta == nil {
			return utils.HandleValidationErrors(c, []webmodels.FieldValidationError{{Field: "delta", Message: "hideout items only accept delta"}})
		}

		item, err := webApp.Tracker.AdjustHideoutItem(c.Context(), utils.UserID(c), c.Params("itemId"), *req.Delta)
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, item, "")
	}
}

func SetStationLevel(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.StationLevelRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}
		if req.Level == nil {
			return utils.HandleValidationErrors(c, []webmodels.FieldValidationError{{Field: "level", Message: "level is required"}})
		}

		stationID := c.Params("stationId")
		if err := webApp.Tracker.SetStationLevel(c.Context(), utils.UserID(c), stationID, *req.Level); err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{"stationId": stationID, "level": *req.Level}, "Station level updated")
	}
}
