// descriptor.go
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

// Package resources declares the entities served by the API and the generic
// request checks that run against those declarations.
package resources

import (
	"strings"
	"time"

	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/validate"
	"github.com/shopspring/decimal"
)

// Kind enumerates the entities.
type Kind int

const (
	KindAuthor Kind = iota + 1
	KindAuthorMetadata
	KindBook
	KindManuscript
	KindEditor
	KindSeries
	KindSalesperson
	KindClient
	KindSalesRecord
)

// FieldType selects the validator applied to a field.
type FieldType int

const (
	TypeInteger FieldType = iota + 1
	TypeDecimal
	TypeString
	TypeDate
	TypeBoolean
)

// Field declares one client-suppliable column.
type Field struct {
	Name     string
	Type     FieldType
	Ints     validate.IntRange
	Decimals validate.DecimalRange
	Length   validate.Length
	// Dates is evaluated per request so bounds relative to today stay current.
	Dates func() validate.DateRange
	// Nullable fields may be omitted or null on create.
	Nullable bool
	// References names the entity a foreign key points at.
	References Kind
}

// IsForeignKey reports whether the field names another entity's key.
func (f Field) IsForeignKey() bool {
	return strings.HasSuffix(f.Name, "_id")
}

// Validate coerces value with the field's validator. A nil value yields nil.
func (f Field) Validate(value any) (any, error) {
	switch f.Type {
	case TypeInteger:
		v, err := validate.Integer(f.Name, value, f.Ints)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	case TypeDecimal:
		v, err := validate.Decimal(f.Name, value, f.Decimals)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	case TypeString:
		v, err := validate.String(f.Name, value, f.Length)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	case TypeDate:
		var r validate.DateRange
		if f.Dates != nil {
			r = f.Dates()
		}
		v, err := validate.Date(f.Name, value, r)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	case TypeBoolean:
		v, err := validate.Boolean(f.Name, value)
		if err != nil || v == nil {
			return nil, err
		}
		return *v, nil
	}
	return nil, nil
}

// Descriptor is the static declaration of an entity.
type Descriptor struct {
	Kind       Kind
	Name       string
	Table      string
	PrimaryKey string
	// Fields are the client-suppliable columns in declaration order.
	Fields []Field
	// ReadOnly entities expose no write path.
	ReadOnly bool
	New      func() models.Entity
	// NewList returns a pointer to an empty slice of the entity's model.
	NewList func() any
}

// ServerAssigned lists the columns clients may never send.
func (d *Descriptor) ServerAssigned() []string {
	return []string{d.PrimaryKey}
}

// Columns lists every column, server-assigned ones first.
func (d *Descriptor) Columns() []string {
	cols := append([]string{}, d.ServerAssigned()...)
	for _, f := range d.Fields {
		cols = append(cols, f.Name)
	}
	return cols
}

// Field looks up a field by column name.
func (d *Descriptor) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// ForeignKeys lists the fields that reference other entities.
func (d *Descriptor) ForeignKeys() []Field {
	var fks []Field
	for _, f := range d.Fields {
		if f.IsForeignKey() {
			fks = append(fks, f)
		}
	}
	return fks
}

func (d *Descriptor) nullable() []string {
	var names []string
	for _, f := range d.Fields {
		if f.Nullable {
			names = append(names, f.Name)
		}
	}
	return names
}

func id(name string, ref Kind) Field {
	return Field{Name: name, Type: TypeInteger, Ints: validate.IntAtLeast(1), References: ref}
}

func name(n string) Field {
	return Field{Name: n, Type: TypeString}
}

func text(n string, lo, hi int) Field {
	return Field{Name: n, Type: TypeString, Length: validate.Length{Min: lo, Max: hi}}
}

func exact(n string, size int) Field {
	return Field{Name: n, Type: TypeString, Length: validate.Exactly(size)}
}

func integer(n string, r validate.IntRange) Field {
	return Field{Name: n, Type: TypeInteger, Ints: r}
}

// maxMoney is the largest value a decimal(12,2) column holds.
var maxMoney = decimal.New(1, 10).Sub(decimal.New(1, -2))

func money(n string) Field {
	return Field{Name: n, Type: TypeDecimal, Decimals: validate.DecimalBetween(decimal.Zero, maxMoney)}
}

var earliestPublication = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

func publicationDates() validate.DateRange {
	return validate.DateRange{Min: &earliestPublication}
}

// dueDates admits dates strictly after today and strictly before today plus two years.
func dueDates() validate.DateRange {
	today := validate.Today()
	lo := today.AddDate(0, 0, 1)
	hi := today.AddDate(2, 0, -1)
	return validate.DateRange{Min: &lo, Max: &hi}
}

var (
	authorDescriptor = &Descriptor{
		Kind: KindAuthor, Name: "author", Table: "authors", PrimaryKey: "author_id",
		Fields:  []Field{name("first_name"), name("last_name")},
		New:     func() models.Entity { return &models.Author{} },
		NewList: func() any { return &[]models.Author{} },
	}

	authorMetadataDescriptor = &Descriptor{
		Kind: KindAuthorMetadata, Name: "author metadata", Table: "authors_metadata", PrimaryKey: "author_metadata_id",
		Fields: []Field{
			id("author_id", KindAuthor),
			integer("age", validate.IntBetween(18, 120)),
			text("biography", 1, 4096),
			text("photo_url", 1, 256),
			integer("photo_res_horiz", validate.IntAtLeast(1)),
			integer("photo_res_vert", validate.IntAtLeast(1)),
		},
		New:     func() models.Entity { return &models.AuthorMetadata{} },
		NewList: func() any { return &[]models.AuthorMetadata{} },
	}

	bookDescriptor = &Descriptor{
		Kind: KindBook, Name: "book", Table: "books", PrimaryKey: "book_id",
		Fields: []Field{
			id("editor_id", KindEditor),
			{Name: "series_id", Type: TypeInteger, Ints: validate.IntAtLeast(1), References: KindSeries, Nullable: true},
			text("title", 1, 256),
			{Name: "publication_date", Type: TypeDate, Dates: publicationDates},
			integer("edition_number", validate.IntBetween(1, 10)),
			{Name: "is_in_print", Type: TypeBoolean},
		},
		New:     func() models.Entity { return &models.Book{} },
		NewList: func() any { return &[]models.Book{} },
	}

	manuscriptDescriptor = &Descriptor{
		Kind: KindManuscript, Name: "manuscript", Table: "manuscripts", PrimaryKey: "manuscript_id",
		Fields: []Field{
			id("editor_id", KindEditor),
			{Name: "series_id", Type: TypeInteger, Ints: validate.IntAtLeast(1), References: KindSeries, Nullable: true},
			text("working_title", 1, 256),
			{Name: "due_date", Type: TypeDate, Dates: dueDates},
			integer("advance", validate.IntBetween(5000, 100000)),
		},
		New:     func() models.Entity { return &models.Manuscript{} },
		NewList: func() any { return &[]models.Manuscript{} },
	}

	editorDescriptor = &Descriptor{
		Kind: KindEditor, Name: "editor", Table: "editors", PrimaryKey: "editor_id",
		Fields:  []Field{name("first_name"), name("last_name"), money("salary")},
		New:     func() models.Entity { return &models.Editor{} },
		NewList: func() any { return &[]models.Editor{} },
	}

	seriesDescriptor = &Descriptor{
		Kind: KindSeries, Name: "series", Table: "series", PrimaryKey: "series_id",
		Fields:  []Field{text("title", 1, 256), integer("volumes", validate.IntAtLeast(2))},
		New:     func() models.Entity { return &models.Series{} },
		NewList: func() any { return &[]models.Series{} },
	}

	salespersonDescriptor = &Descriptor{
		Kind: KindSalesperson, Name: "salesperson", Table: "salespeople", PrimaryKey: "salesperson_id",
		Fields:  []Field{name("first_name"), name("last_name"), money("salary")},
		New:     func() models.Entity { return &models.Salesperson{} },
		NewList: func() any { return &[]models.Salesperson{} },
	}

	clientDescriptor = &Descriptor{
		Kind: KindClient, Name: "client", Table: "clients", PrimaryKey: "client_id",
		Fields: []Field{
			id("salesperson_id", KindSalesperson),
			name("email"),
			exact("phone", 11),
			name("business_name"),
			name("street_address"),
			name("city"),
			exact("state", 2),
			exact("zipcode", 9),
		},
		New:     func() models.Entity { return &models.Client{} },
		NewList: func() any { return &[]models.Client{} },
	}

	salesRecordDescriptor = &Descriptor{
		Kind: KindSalesRecord, Name: "sales record", Table: "sales_records", PrimaryKey: "sales_record_id",
		Fields: []Field{
			id("book_id", KindBook),
			integer("year", validate.IntRange{}),
			integer("month", validate.IntBetween(1, 12)),
			integer("copies_sold", validate.IntAtLeast(0)),
			{Name: "gross_profit", Type: TypeDecimal},
			{Name: "net_profit", Type: TypeDecimal},
		},
		ReadOnly: true,
		New:      func() models.Entity { return &models.SalesRecord{} },
		NewList:  func() any { return &[]models.SalesRecord{} },
	}
)

// Describe returns the descriptor for kind. It panics on an unknown kind,
// which only a programming error can produce.
func Describe(kind Kind) *Descriptor {
	switch kind {
	case KindAuthor:
		return authorDescriptor
	case KindAuthorMetadata:
		return authorMetadataDescriptor
	case KindBook:
		return bookDescriptor
	case KindManuscript:
		return manuscriptDescriptor
	case KindEditor:
		return editorDescriptor
	case KindSeries:
		return seriesDescriptor
	case KindSalesperson:
		return salespersonDescriptor
	case KindClient:
		return clientDescriptor
	case KindSalesRecord:
		return salesRecordDescriptor
	}
	panic("resources: unknown kind")
}

func (k Kind) String() string {
	return Describe(k).Name
}
