// data.go
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

package testsupport

import (
	"testing"
	"time"

	"github.com/localnerve/publishing-house/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateAuthor inserts an author
func CreateAuthor(t testing.TB, db *gorm.DB, first, last string) *models.Author {
	t.Helper()
	a := &models.Author{FirstName: first, LastName: last}
	require.NoError(t, db.Create(a).Error)
	return a
}

// CreateEditor inserts an editor
func CreateEditor(t testing.TB, db *gorm.DB, first, last string, salary int64) *models.Editor {
	t.Helper()
	e := &models.Editor{FirstName: first, LastName: last, Salary: decimal.NewFromInt(salary)}
	require.NoError(t, db.Create(e).Error)
	return e
}

// CreateSeries inserts a series
func CreateSeries(t testing.TB, db *gorm.DB, title string, volumes int64) *models.Series {
	t.Helper()
	s := &models.Series{Title: title, Volumes: volumes}
	require.NoError(t, db.Create(s).Error)
	return s
}

// CreateSalesperson inserts a salesperson
func CreateSalesperson(t testing.TB, db *gorm.DB, first, last string) *models.Salesperson {
	t.Helper()
	s := &models.Salesperson{FirstName: first, LastName: last, Salary: decimal.NewFromInt(50000)}
	require.NoError(t, db.Create(s).Error)
	return s
}

// CreateBook inserts a book written by authors
func CreateBook(t testing.TB, db *gorm.DB, editor *models.Editor, series *models.Series, title string, authors ...*models.Author) *models.Book {
	t.Helper()
	b := &models.Book{
		Title:           title,
		PublicationDate: models.NewDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
		EditionNumber:   1,
		IsInPrint:       true,
	}
	if editor != nil {
		b.EditorID = &editor.EditorID
	}
	if series != nil {
		b.SeriesID = &series.SeriesID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(b).Error)
	for _, a := range authors {
		require.NoError(t, db.Create(&models.AuthorBook{AuthorID: a.AuthorID, BookID: b.BookID}).Error)
	}
	return b
}

// CreateManuscript inserts a manuscript due in six months, written by authors
func CreateManuscript(t testing.TB, db *gorm.DB, editor *models.Editor, title string, authors ...*models.Author) *models.Manuscript {
	t.Helper()
	m := &models.Manuscript{
		WorkingTitle: title,
		DueDate:      models.NewDate(time.Now().UTC().AddDate(0, 6, 0)),
		Advance:      10000,
	}
	if editor != nil {
		m.EditorID = &editor.EditorID
	}
	require.NoError(t, db.Omit(clause.Associations).Create(m).Error)
	for _, a := range authors {
		require.NoError(t, db.Create(&models.AuthorManuscript{AuthorID: a.AuthorID, ManuscriptID: m.ManuscriptID}).Error)
	}
	return m
}

// CreateSalesRecord inserts one month of sales for a book
func CreateSalesRecord(t testing.TB, db *gorm.DB, book *models.Book, year, month, copies int64) *models.SalesRecord {
	t.Helper()
	r := &models.SalesRecord{
		BookID:      book.BookID,
		Year:        year,
		Month:       month,
		CopiesSold:  copies,
		GrossProfit: decimal.NewFromInt(copies * 20),
		NetProfit:   decimal.NewFromInt(copies * 5),
	}
	require.NoError(t, db.Omit(clause.Associations).Create(r).Error)
	return r
}

// CountRows counts the rows of model matching query
func CountRows(t testing.TB, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
