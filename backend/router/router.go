package router

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/raidledger/raidledger/backend/handlers"
	"github.com/raidledger/raidledger/backend/middleware"
	"github.com/raidledger/raidledger/backend/utils"
)

// New builds the fiber app with middleware and every route registered.
func New(webApp *handlers.WebApp) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "RaidLedger",
		ServerHeader: "RaidLedger",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	web := webApp.Config.GetWebConfig()
	if web.AllowedOrigin != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     web.AllowedOrigin,
			AllowCredentials: true,
			AllowHeaders:     "Origin, Content-Type, Accept",
			AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		}))
	}

	app.Use(middleware.LoggingMiddleware())

	setupRoutes(app, webApp, web.RateLimit)
	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp, rateLimit int) {
	app.Get("/health", handlers.HealthCheck(webApp))

	api := app.Group("/api", middleware.RateLimit(rateLimit, time.Minute))

	auth := api.Group("/auth", middleware.AuthRateLimit())
	auth.Post("/register", middleware.AuditLogMiddleware("register"), handlers.Register(webApp))
	auth.Post("/login", handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))

	ref := api.Group("/ref")
	ref.Get("/tasks", handlers.RefTasks(webApp))
	ref.Get("/hideout-stations", handlers.RefHideoutStations(webApp))

	authed := middleware.AuthRequired(webApp)

	me := api.Group("/me", authed)
	me.Get("/", handlers.Me(webApp))
	me.Get("/progress", handlers.GetProgress(webApp))
	me.Put("/progress", handlers.UpdateProgress(webApp))

	quests := api.Group("/quests", authed)
	quests.Get("/", handlers.Quests(webApp))
	quests.Get("/summary", handlers.QuestSummary(webApp))
	quests.Get("/items", handlers.QuestItems(webApp))
	quests.Post("/items/:itemId/adjust", handlers.AdjustQuestItem(webApp))

	hideout := api.Group("/hideout", authed)
	hideout.Get("/items", handlers.HideoutItems(webApp))
	hideout.Post("/items/:itemId/adjust", handlers.AdjustHideoutItem(webApp))
	hideout.Put("/stations/:stationId/level", handlers.SetStationLevel(webApp))

	teams := api.Group("/teams", authed)
	teams.Get("/", handlers.ListTeams(webApp))
	teams.Post("/", middleware.AuditLogMiddleware("team_create"), handlers.CreateTeam(webApp))
	teams.Post("/join", middleware.AuditLogMiddleware("team_join"), handlers.JoinTeam(webApp))
	teams.Get("/:teamId", handlers.GetTeam(webApp))
	teams.Get("/:teamId/needs", handlers.TeamNeeds(webApp))
	teams.Get("/:teamId/quests", handlers.TeamQuests(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return utils.SendNotFound(c, "The requested endpoint does not exist")
	})
}
