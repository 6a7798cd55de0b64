// relation_service.go
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

package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/resources"
	"github.com/localnerve/publishing-house/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Relation links an outer entity to the inner entity nested under it.
type Relation struct {
	Outer *resources.Descriptor
	Inner *resources.Descriptor
	// Bridge names the association table. When empty, Inner carries the
	// outer primary key as a foreign-key column.
	Bridge string
}

// ForeignKey is the column on Inner, or on the bridge, that holds the outer key.
func (r Relation) ForeignKey() string {
	return r.Outer.PrimaryKey
}

// scope restricts a query on Inner to rows related to every outer id.
// Several outer ids intersect, which only a bridge relation supports.
func (r Relation) scope(db *gorm.DB, outerIDs []int64) *gorm.DB {
	q := db.Model(r.Inner.New())
	if r.Bridge == "" {
		for _, oid := range outerIDs {
			q = q.Where(clause.Eq{Column: clause.Column{Table: r.Inner.Table, Name: r.ForeignKey()}, Value: oid})
		}
		return q
	}
	for i, oid := range outerIDs {
		alias := fmt.Sprintf("b%d", i)
		q = q.Joins(fmt.Sprintf("JOIN %s %s ON %s.%s = %s.%s AND %s.%s = ?",
			r.Bridge, alias,
			alias, r.Inner.PrimaryKey, r.Inner.Table, r.Inner.PrimaryKey,
			alias, r.ForeignKey()), oid)
	}
	return q
}

// CheckOuters confirms every outer id exists and, for two, that they differ.
func CheckOuters(db *gorm.DB, r Relation, outerIDs ...int64) error {
	if len(outerIDs) == 2 && outerIDs[0] == outerIDs[1] {
		return types.BadRequest("%s ids must be distinct, got %d twice", r.Outer.Name, outerIDs[0])
	}
	for _, oid := range outerIDs {
		ok, err := Exists(db, r.Outer, oid)
		if err != nil {
			return err
		}
		if !ok {
			return types.NotFound("%s %d not found", r.Outer.Name, oid)
		}
	}
	return nil
}

// ListNested returns the inner rows related to every outer id. An empty
// result is a not-found error.
func ListNested(db *gorm.DB, r Relation, outerIDs ...int64) (any, error) {
	if err := CheckOuters(db, r, outerIDs...); err != nil {
		return nil, err
	}
	rows := r.Inner.NewList()
	err := r.scope(db, outerIDs).
		Order(clause.OrderByColumn{Column: clause.Column{Table: r.Inner.Table, Name: r.Inner.PrimaryKey}}).
		Find(rows).Error
	if err != nil {
		return nil, err
	}
	if length(rows) == 0 {
		return nil, types.NotFound("no %s found for %s %s", r.Inner.Table, r.Outer.Name, joinIDs(outerIDs))
	}
	return rows, nil
}

// FindNested returns the inner row innerID if it is related to every outer id.
func FindNested(db *gorm.DB, r Relation, innerID int64, outerIDs ...int64) (models.Entity, error) {
	if err := CheckOuters(db, r, outerIDs...); err != nil {
		return nil, err
	}
	e := r.Inner.New()
	err := r.scope(db, outerIDs).Where(pkEquals(r.Inner, innerID)).Take(e).Error
	if err == nil {
		return e, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ok, err := Exists(db, r.Inner, innerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NotFound("%s %d not found", r.Inner.Name, innerID)
	}
	return nil, types.Bridge("%s %d is not associated with %s %s", r.Inner.Name, innerID, r.Outer.Name, joinIDs(outerIDs))
}

// FindOne returns the single inner row of a one-to-one relation.
func FindOne(db *gorm.DB, r Relation, outerID int64) (models.Entity, error) {
	if err := CheckOuters(db, r, outerID); err != nil {
		return nil, err
	}
	e := r.Inner.New()
	err := r.scope(db, []int64{outerID}).Take(e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("%s for %s %d not found", r.Inner.Name, r.Outer.Name, outerID)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// CreateNested creates an inner row related to every outer id. For a
// foreign-key relation the outer id is expected in args already; for a
// bridge relation one bridge row per outer id is inserted.
func CreateNested(tx *gorm.DB, r Relation, args resources.Args, outerIDs ...int64) (models.Entity, error) {
	if err := CheckOuters(tx, r, outerIDs...); err != nil {
		return nil, err
	}
	e, err := Create(tx, r.Inner, args)
	if err != nil {
		return nil, err
	}
	if r.Bridge == "" {
		return e, nil
	}
	for _, oid := range outerIDs {
		if err := Associate(tx, r, e.ID(), oid); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// UpdateNested updates innerID after confirming it is related to every outer id.
func UpdateNested(tx *gorm.DB, r Relation, innerID int64, args resources.Args, outerIDs ...int64) (models.Entity, error) {
	if _, err := FindNested(tx, r, innerID, outerIDs...); err != nil {
		return nil, err
	}
	return Update(tx, r.Inner, innerID, args)
}

// DeleteNested deletes innerID after confirming it is related to every outer id.
func DeleteNested(tx *gorm.DB, r Relation, innerID int64, outerIDs ...int64) error {
	if _, err := FindNested(tx, r, innerID, outerIDs...); err != nil {
		return err
	}
	return Delete(tx, r.Inner, innerID)
}

// Associate inserts one bridge row.
func Associate(tx *gorm.DB, r Relation, innerID, outerID int64) error {
	row := map[string]any{
		r.ForeignKey():     outerID,
		r.Inner.PrimaryKey: innerID,
	}
	if err := tx.Table(r.Bridge).Create(row).Error; err != nil {
		return ConvertStoreError(err)
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, "/")
}
