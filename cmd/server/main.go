package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/localnerve/publishing-house/internal/config"
	"github.com/localnerve/publishing-house/internal/database"
	"github.com/localnerve/publishing-house/internal/logger"
	"github.com/localnerve/publishing-house/internal/router"

	_ "github.com/localnerve/publishing-house/docs/api" // Swagger docs
)

// @title Publishing House API
// @version 1.0.0
// @description REST service for a publishing house: authors, books, manuscripts, editors, series, salespeople, clients and sales records

// @contact.name API Support
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /
// @schemes http https

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to a .env file")
	flag.Parse()

	log := logger.Default()
	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.WithError(err).Fatalf("Failed to load environment from %s", envFilename)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}
	logger.InitLogger(cfg.LogLevel)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.WithError(err).Fatal("Failed to run migrations")
		}
	}

	app := router.New(db, router.Options{
		Config: cfg,
		Mount: []func(app *fiber.App){
			func(app *fiber.App) {
				// Prometheus metrics
				prometheus := fiberprometheus.New(router.AppName)
				prometheus.RegisterAt(app, "/metrics")
				app.Use(prometheus.Middleware)
			},
			func(app *fiber.App) {
				// Swagger documentation
				app.Get("/swagger/*", swagger.HandlerDefault)
			},
		},
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Infof("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}

	log.Info("Server stopped")
}
