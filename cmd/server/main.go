package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/http/middleware"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/http/routes"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/adapters/persistence/models"
	"github.com/RookieJoel/Roomly-Hotel-booking/internal/config"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Roomly API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	sweepService := routes.Setup(app, db, cfg)

	// Scheduled purge of expired bookings
	if err := sweepService.Start(); err != nil {
		log.Fatalf("❌ Failed to start booking sweep: %v", err)
	}
	defer sweepService.Stop()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
