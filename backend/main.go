package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raidledger/raidledger/backend/config"
	"github.com/raidledger/raidledger/backend/handlers"
	"github.com/raidledger/raidledger/backend/router"
	webservices "github.com/raidledger/raidledger/backend/services"
	"github.com/raidledger/raidledger/tracker"
	"github.com/raidledger/raidledger/tracker/database"
	"github.com/raidledger/raidledger/tracker/database/repositories"
	"github.com/raidledger/raidledger/tracker/logger"
	"github.com/raidledger/raidledger/tracker/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	path := flag.String("config", "config.toml", "path to config")
	debug := flag.Bool("debug", false, "run in development mode")
	flag.Parse()

	cfg, err := tracker.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.Setup("RaidLedger", cfg.Log.Options())

	slog.Info("Starting backend server",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbStartTime := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema", slog.String("type", "db"), slog.String("error", err.Error()))
		os.Exit(-1)
	}
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	provider := tracker.NewCatalogProvider(ctx, *cfg)

	bunDB := db.BunDB()
	userRepo := repositories.NewUserRepository(bunDB)
	progressRepo := repositories.NewProgressRepository(bunDB)
	teamRepo := repositories.NewTeamRepository(bunDB)

	trackerService := services.NewTrackerService(provider, progressRepo, userRepo)
	webConfig := config.NewWebAppConfig(cfg, *debug)

	webApp := &handlers.WebApp{
		Config:         webConfig,
		DB:             db,
		Tracker:        trackerService,
		Teams:          services.NewTeamService(teamRepo, progressRepo, trackerService),
		Auth:           services.NewAuthService(userRepo),
		SessionService: webservices.NewSessionService(webConfig),
		Version:        version,
		Commit:         commit,
	}

	app := router.New(webApp)

	address := cfg.Web.Addr
	slog.Info("Listening", slog.String("type", "http"), slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down backend server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("Backend server shutdown complete")
}
