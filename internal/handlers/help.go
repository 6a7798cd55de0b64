package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Endpoint describes one route in the help object.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Help serves GET / with every registered endpoint.
type Help struct {
	Name      string
	Endpoints []Endpoint
}

// Handle handles GET /
// @Summary API help
// @Description Every endpoint with a one-line description
// @Tags Help
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Help) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":      h.Name,
		"endpoints": h.Endpoints,
	})
}
