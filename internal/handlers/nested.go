// nested.go
//
// A REST back-end for the catalog, contracts and sales of a publishing house
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of publishing-house.
// publishing-house is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// publishing-house is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with publishing-house.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/resources"
	"github.com/localnerve/publishing-house/internal/services"
	"gorm.io/gorm"
)

// Nested is the common part of the handlers serving /Outer/{oid}/Inner[/{iid}].
// Outer lists the path parameters naming outer rows; two names select the
// inner rows shared by both outer rows.
type Nested struct {
	DB       *gorm.DB
	Relation services.Relation
	Outer    []string
}

func (n *Nested) outerIDs(c *fiber.Ctx) ([]int64, error) {
	return pathIDs(c, n.Outer)
}

// pathKeys returns the columns the path supplies to the inner entity.
func (n *Nested) pathKeys() []string {
	if n.Relation.Bridge != "" {
		return nil
	}
	return []string{n.Relation.ForeignKey()}
}

// ListNested serves GET /Outer/{oid}/Inner. No related rows is a 404.
type ListNested struct{ Nested }

func (h *ListNested) Handle(c *fiber.Ctx) error {
	outer, err := h.outerIDs(c)
	if err != nil {
		return err
	}
	rows, err := services.ListNested(session(c, h.DB), h.Relation, outer...)
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

// GetNested serves GET /Outer/{oid}/Inner/{iid}.
type GetNested struct{ Nested }

func (h *GetNested) Handle(c *fiber.Ctx) error {
	outer, err := h.outerIDs(c)
	if err != nil {
		return err
	}
	inner, err := pathID(c, ParamInner)
	if err != nil {
		return err
	}
	row, err := services.FindNested(session(c, h.DB), h.Relation, inner, outer...)
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// CreateNested serves POST /Outer/{oid}/Inner. The outer key comes from the
// path and is rejected in the body.
type CreateNested struct{ Nested }

func (h *CreateNested) Handle(c *fiber.Ctx) error {
	outer, err := h.outerIDs(c)
	if err != nil {
		return err
	}
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	inner := h.Relation.Inner
	keys := h.pathKeys()
	if err := resources.CheckShape(inner, body, resources.CreateShape(keys...)); err != nil {
		return err
	}
	path := resources.Args{}
	for _, k := range keys {
		path[k] = outer[0]
	}
	args, err := resources.BuildArgs(inner, body, resources.BuildOptions{Path: path})
	if err != nil {
		return err
	}

	var row models.Entity
	err = transaction(c, h.DB, func(tx *gorm.DB) error {
		row, err = services.CreateNested(tx, h.Relation, args, outer...)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// UpdateNested serves PATCH and PUT /Outer/{oid}/Inner/{iid}.
type UpdateNested struct{ Nested }

func (h *UpdateNested) Handle(c *fiber.Ctx) error {
	outer, err := h.outerIDs(c)
	if err != nil {
		return err
	}
	inner, err := pathID(c, ParamInner)
	if err != nil {
		return err
	}
	args, err := updateArgs(c, h.Relation.Inner, h.pathKeys()...)
	if err != nil {
		return err
	}

	var row models.Entity
	err = transaction(c, h.DB, func(tx *gorm.DB) error {
		row, err = services.UpdateNested(tx, h.Relation, inner, args, outer...)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(row)
}

// DeleteNested serves DELETE /Outer/{oid}/Inner/{iid} and answers true.
type DeleteNested struct{ Nested }

func (h *DeleteNested) Handle(c *fiber.Ctx) error {
	outer, err := h.outerIDs(c)
	if err != nil {
		return err
	}
	inner, err := pathID(c, ParamInner)
	if err != nil {
		return err
	}
	if err := transaction(c, h.DB, func(tx *gorm.DB) error {
		return services.DeleteNested(tx, h.Relation, inner, outer...)
	}); err != nil {
		return err
	}
	return c.JSON(true)
}
