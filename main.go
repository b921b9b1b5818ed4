// main.go
package main

import (
	"context"
	"log"

	"rink-booking/cmd"
	"rink-booking/internal/data/repository"
	"rink-booking/internal/scheduler"
	"rink-booking/internal/wire"
	"rink-booking/pkg/database"
	"rink-booking/pkg/mailer"
	"rink-booking/pkg/payment"
	"rink-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// External collaborators
	payClient := payment.NewClient(config.Payment, logger)
	mailSender := mailer.NewSMTPSender(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, payClient, mailSender, logger)

	// Background housekeeping: release stale pending bookings and
	// sweep expired sessions on the configured interval.
	sched, err := scheduler.New(logger)
	if err != nil {
		logger.Fatal("Failed to init scheduler", zap.Error(err))
	}
	defer sched.Stop()

	if _, err := sched.AddIntervalJob("release-stale-pending", config.Booking.SweepInterval, func() {
		app.Service.Housekeeping.ReleaseStalePending(context.Background())
	}); err != nil {
		logger.Fatal("Failed to register stale pending job", zap.Error(err))
	}

	if _, err := sched.AddIntervalJob("clean-expired-sessions", config.Booking.SweepInterval, func() {
		app.Service.Housekeeping.CleanSessions(context.Background())
	}); err != nil {
		logger.Fatal("Failed to register session cleanup job", zap.Error(err))
	}

	sched.Start()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
