// entity_service.go
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
	"reflect"

	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/resources"
	"github.com/localnerve/publishing-house/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func pkEquals(d *resources.Descriptor, id int64) clause.Eq {
	return clause.Eq{Column: clause.Column{Table: d.Table, Name: d.PrimaryKey}, Value: id}
}

// Find loads the row of d with primary key id.
func Find(db *gorm.DB, d *resources.Descriptor, id int64) (models.Entity, error) {
	e := d.New()
	err := db.Where(pkEquals(d, id)).Take(e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("%s %d not found", d.Name, id)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Exists reports whether d has a row with primary key id.
func Exists(db *gorm.DB, d *resources.Descriptor, id int64) (bool, error) {
	var n int64
	if err := db.Table(d.Table).Where(pkEquals(d, id)).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every row of d ordered by primary key, as a pointer to a
// slice of the entity's model.
func List(db *gorm.DB, d *resources.Descriptor) (any, error) {
	rows := d.NewList()
	if err := db.Order(clause.OrderByColumn{Column: clause.Column{Table: d.Table, Name: d.PrimaryKey}}).
		Find(rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ResolveReferences verifies that every foreign key in args names an existing row.
func ResolveReferences(tx *gorm.DB, d *resources.Descriptor, args resources.Args) error {
	for _, ref := range args.References(d) {
		ok, err := Exists(tx, ref.Target, ref.ID)
		if err != nil {
			return err
		}
		if !ok {
			return types.Reference("%s = %d does not refer to a row in %s", ref.Field, ref.ID, ref.Target.Table)
		}
	}
	return nil
}

// Create resolves references, inserts a row of d built from args and returns
// the stored row. It must run inside a transaction.
func Create(tx *gorm.DB, d *resources.Descriptor, args resources.Args) (models.Entity, error) {
	if d.ReadOnly {
		return nil, types.BadRequest("%s is read-only", d.Name)
	}
	if err := ResolveReferences(tx, d, args); err != nil {
		return nil, err
	}

	e := d.New()
	e.Assign(args)
	if err := tx.Omit(clause.Associations).Create(e).Error; err != nil {
		return nil, ConvertStoreError(err)
	}
	return Find(tx, d, e.ID())
}

// Update applies args to the row of d with primary key id and returns the
// stored row. It must run inside a transaction.
func Update(tx *gorm.DB, d *resources.Descriptor, id int64, args resources.Args) (models.Entity, error) {
	if d.ReadOnly {
		return nil, types.BadRequest("%s is read-only", d.Name)
	}
	e, err := Find(tx, d, id)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return nil, types.BadRequest("no fields to update")
	}
	if err := ResolveReferences(tx, d, args); err != nil {
		return nil, err
	}

	e.Assign(args)
	if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
		return nil, ConvertStoreError(err)
	}
	return Find(tx, d, id)
}

// Delete removes the row of d with primary key id after running the kind's
// pre-delete hook. It must run inside a transaction.
func Delete(tx *gorm.DB, d *resources.Descriptor, id int64) error {
	if d.ReadOnly {
		return types.BadRequest("%s is read-only", d.Name)
	}
	if _, err := Find(tx, d, id); err != nil {
		return err
	}
	if hook := PreDelete(d.Kind); hook != nil {
		if err := hook(tx, id); err != nil {
			return ConvertStoreError(err)
		}
	}
	if err := tx.Where(pkEquals(d, id)).Delete(d.New()).Error; err != nil {
		return ConvertStoreError(err)
	}
	return nil
}

// PreDeleteHook runs in the deleting transaction before the owning row goes.
type PreDeleteHook func(tx *gorm.DB, id int64) error

// PreDelete returns the hook for kind, or nil.
func PreDelete(kind resources.Kind) PreDeleteHook {
	switch kind {
	case resources.KindBook:
		return func(tx *gorm.DB, id int64) error {
			return tx.Where("book_id = ?", id).Delete(&models.AuthorBook{}).Error
		}
	case resources.KindManuscript:
		return func(tx *gorm.DB, id int64) error {
			return tx.Where("manuscript_id = ?", id).Delete(&models.AuthorManuscript{}).Error
		}
	case resources.KindAuthor:
		return func(tx *gorm.DB, id int64) error {
			for _, bridge := range []any{&models.AuthorBook{}, &models.AuthorManuscript{}, &models.AuthorMetadata{}} {
				if err := tx.Where("author_id = ?", id).Delete(bridge).Error; err != nil {
					return err
				}
			}
			return nil
		}
	case resources.KindEditor:
		return func(tx *gorm.DB, id int64) error {
			for _, model := range []any{&models.Book{}, &models.Manuscript{}} {
				if err := tx.Model(model).Where("editor_id = ?", id).Update("editor_id", nil).Error; err != nil {
					return err
				}
			}
			return nil
		}
	}
	return nil
}

func length(rows any) int {
	v := reflect.ValueOf(rows)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return 0
	}
	return v.Len()
}
