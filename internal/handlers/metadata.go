package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/resources"
	"github.com/localnerve/publishing-house/internal/services"
	"gorm.io/gorm"
)

// OneToOne serves /Outer/{id}/Inner where each outer row owns at most one
// inner row, such as an author's metadata.
type OneToOne struct {
	DB       *gorm.DB
	Relation services.Relation
}

func (h *OneToOne) Get(c *fiber.Ctx) error {
	outer, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	row, err := services.FindOne(session(c, h.DB), h.Relation, outer)
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// Create adds the inner row. A second row for the same outer row violates
// the unique key and is a constraint error.
func (h *OneToOne) Create(c *fiber.Ctx) error {
	outer, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	body, err := decodeBody(c)
	if err != nil {
		return err
	}
	inner, fk := h.Relation.Inner, h.Relation.ForeignKey()
	if err := resources.CheckShape(inner, body, resources.CreateShape(fk)); err != nil {
		return err
	}
	args, err := resources.BuildArgs(inner, body, resources.BuildOptions{Path: resources.Args{fk: outer}})
	if err != nil {
		return err
	}

	var row models.Entity
	err = transaction(c, h.DB, func(tx *gorm.DB) error {
		row, err = services.CreateNested(tx, h.Relation, args, outer)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(row)
}

func (h *OneToOne) Update(c *fiber.Ctx) error {
	outer, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	args, err := updateArgs(c, h.Relation.Inner, h.Relation.ForeignKey())
	if err != nil {
		return err
	}

	var row models.Entity
	err = transaction(c, h.DB, func(tx *gorm.DB) error {
		current, err := services.FindOne(tx, h.Relation, outer)
		if err != nil {
			return err
		}
		row, err = services.Update(tx, h.Relation.Inner, current.ID(), args)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(row)
}

func (h *OneToOne) Delete(c *fiber.Ctx) error {
	outer, err := pathID(c, ParamID)
	if err != nil {
		return err
	}
	if err := transaction(c, h.DB, func(tx *gorm.DB) error {
		current, err := services.FindOne(tx, h.Relation, outer)
		if err != nil {
			return err
		}
		return services.Delete(tx, h.Relation.Inner, current.ID())
	}); err != nil {
		return err
	}
	return c.JSON(true)
}
