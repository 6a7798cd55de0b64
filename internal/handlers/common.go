// common.go
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
	"bytes"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/types"
	"github.com/localnerve/publishing-house/internal/validate"
	"gorm.io/gorm"
)

// Path parameter names shared by the route table.
const (
	ParamID    = "id"
	ParamOuter = "oid"
	ParamInner = "iid"
	ParamA1    = "a1"
	ParamA2    = "a2"
)

// pathID reads a positive integer path parameter.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := validate.Integer(name, c.Params(name), validate.IntAtLeast(1))
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, types.BadRequest("missing path parameter %s", name)
	}
	return *id, nil
}

// pathIDs reads several positive integer path parameters in order.
func pathIDs(c *fiber.Ctx, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := pathID(c, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// decodeBody parses the request body as a JSON object, keeping numbers as
// json.Number so integers survive unchanged. An empty body is an empty object.
func decodeBody(c *fiber.Ctx) (map[string]any, error) {
	body := make(map[string]any)
	raw := bytes.TrimSpace(c.Body())
	if len(raw) == 0 {
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, types.BadRequest("request body must be a JSON object")
	}
	if body == nil {
		body = make(map[string]any)
	}
	return body, nil
}

// transaction runs fn in a transaction bound to the request context.
func transaction(c *fiber.Ctx, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(c.UserContext()).Transaction(fn)
}

// session binds db to the request context for reads.
func session(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	return db.WithContext(c.UserContext())
}
