package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/raidledger/raidledger/backend/config"
	webmodels "github.com/raidledger/raidledger/backend/models"
	webservices "github.com/raidledger/raidledger/backend/services"
	"github.com/raidledger/raidledger/backend/utils"
	"github.com/raidledger/raidledger/tracker/services"
)

// Pinger reports database reachability for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config         *config.WebAppConfig
	DB             Pinger
	Tracker        *services.TrackerService
	Teams          *services.TeamService
	Auth           *services.AuthService
	SessionService *webservices.SessionService
	Version        string
	Commit         string
}

// GetSession returns the session carried by the request cookie
func (w *WebApp) GetSession(c *fiber.Ctx) (*webmodels.UserSession, error) {
	return w.SessionService.GetSession(c)
}

// HealthCheck reports database and catalog state. It never fails the request
// on a degraded dependency.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		resp := webmodels.HealthResponse{
			Status:   "ok",
			Version:  webApp.Version,
			Database: "ok",
		}
		if webApp.DB != nil {
			if err := webApp.DB.Ping(ctx); err != nil {
				slog.Warn("Health check database ping failed",
					slog.String("type", "http"),
					slog.String("error", err.Error()))
				resp.Status = "degraded"
				resp.Database = "unreachable"
			}
		}

		snap, err := webApp.Tracker.Catalog(ctx)
		if err != nil {
			resp.Status = "degraded"
		} else {
			resp.CatalogFetched = snap.FetchedAt
			resp.CatalogStale = snap.Stale
			resp.CatalogQuests = len(snap.Quests)
			resp.CatalogStations = len(snap.Stations)
		}

		return utils.SendSuccess(c, resp, "")
	}
}

// RefTasks returns the parsed quest catalog
func RefTasks(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := webApp.Tracker.Catalog(c.Context())
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		quests := snap.Quests
		if q := c.Query("q"); q != "" {
			quests = services.SearchQuests(quests, q, c.QueryInt("limit", 25))
		}
		return utils.SendSuccess(c, fiber.Map{
			"quests":    quests,
			"skipped":   len(snap.Skips),
			"fetchedAt": snap.FetchedAt,
			"stale":     snap.Stale,
		}, "")
	}
}

// RefHideoutStations returns the parsed hideout station catalog
func RefHideoutStations(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := webApp.Tracker.Catalog(c.Context())
		if err != nil {
			return utils.SendServiceError(c, err)
		}
		return utils.SendSuccess(c, fiber.Map{
			"stations":  snap.Stations,
			"fetchedAt": snap.FetchedAt,
			"stale":     snap.Stale,
		}, "")
	}
}

// parseAdjustRequest reads and validates an adjust body. When ok is false the
// response has already been written.
func parseAdjustRequest(c *fiber.Ctx) (req webmodels.AdjustRequest, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, false, utils.SendBadRequest(c, "Invalid request body", nil)
	}
	if errs := utils.ValidateAdjustRequest(&req); len(errs) > 0 {
		return req, false, utils.HandleValidationErrors(c, errs)
	}
	return req, true, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrNotFound)
}
