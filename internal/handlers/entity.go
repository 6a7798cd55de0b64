package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/resources"
	"github.com/localnerve/publishing-house/internal/services"
	"gorm.io/gorm"
)

// List serves GET /E with every row of the entity.
type List struct {
	DB     *gorm.DB
	Entity *resources.Descriptor
}

func (h *List) Handle(c *fiber.Ctx) error {
	rows, err := services.List(session(c, h.DB), h.Entity)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// Get serves GET /E/{id}.
type Get struct {
	DB     *gorm.DB
	Entity *resources.Descriptor
}

func (h *Get) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	row, err := services.Find(session(c, h.DB), h.Entity, id)
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// Create serves POST /E.
type Create struct {
	DB     *gorm.DB
	Entity *resources.Descriptor
}

func (h *Create) Handle(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}
	if err := resources.CheckShape(h.Entity, body, resources.CreateShape()); err != nil {
		return err
	}
	args, err := resources.BuildArgs(h.Entity, body, resources.BuildOptions{})
	if err != nil {
		return err
	}

	var row models.Entity
	err = transaction(c, h.DB, func(tx *gorm.DB) error {
		row, err = services.Create(tx, h.Entity, args)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// Update serves PATCH and PUT /E/{id}. Absent and null fields are left unchanged.
type Update struct {
	DB     *gorm.DB
	Entity *resources.Descriptor
}

func (h *Update) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	args, err := updateArgs(c, h.Entity)
	if err != nil {
		return err
	}

	var row models.Entity
	err = transaction(c, h.DB, func(tx *gorm.DB) error {
		row, err = services.Update(tx, h.Entity, id, args)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// Delete serves DELETE /E/{id} and answers true.
type Delete struct {
	DB     *gorm.DB
	Entity *resources.Descriptor
}

func (h *Delete) Handle(c *fiber.Ctx) error {
	id, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	if err := transaction(c, h.DB, func(tx *gorm.DB) error {
		return services.Delete(tx, h.Entity, id)
	}); err != nil {
		return err
	}
	return c.JSON(true)
}

// updateArgs decodes, shape-checks and validates an update body. Columns
// named in exclude come from the path and may not appear in the body.
func updateArgs(c *fiber.Ctx, d *resources.Descriptor, exclude ...string) (resources.Args, error) {
	body, err := decodeBody(c)
	if err != nil {
		return nil, err
	}
	if err := resources.CheckShape(d, body, resources.UpdateShape(exclude...)); err != nil {
		return nil, err
	}
	return resources.BuildArgs(d, body, resources.BuildOptions{Partial: true})
}
