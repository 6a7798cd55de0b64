// Package router assembles the Fiber application and its route table.
package router

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/localnerve/publishing-house/internal/config"
	"github.com/localnerve/publishing-house/internal/handlers"
	"github.com/localnerve/publishing-house/internal/middleware"
	"github.com/localnerve/publishing-house/internal/types"
	"github.com/localnerve/publishing-house/internal/utils"
	"gorm.io/gorm"
)

// AppName is reported by the help object.
const AppName = "publishing-house"

// Options tunes New.
type Options struct {
	// Config is reported by the health endpoint. It may be nil.
	Config *config.Config
	// Mount runs after the global middleware and before the API routes,
	// for metrics and documentation endpoints.
	Mount []func(app *fiber.App)
}

// New returns the application serving the API over db.
func New(db *gorm.DB, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               AppName,
		ErrorHandler:          utils.HandleError,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(compress.New())

	for _, mount := range opts.Mount {
		mount(app)
	}

	app.Get("/health", (&handlers.HealthHandler{DB: db, Config: opts.Config}).Handle)

	app.Use(middleware.RequireJSON())
	help := &handlers.Help{Name: AppName}
	for _, r := range Routes(db) {
		app.Add(r.Method, r.Path, r.Handler)
		help.Endpoints = append(help.Endpoints, handlers.Endpoint{
			Method:      r.Method,
			Path:        DisplayPath(r.Path),
			Description: r.Description,
		})
	}
	app.Get("/", help.Handle)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return types.NotFound("[404] Resource Not Found")
	})

	return app
}
