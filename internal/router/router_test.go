// router_test.go
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

package router_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishing-house/internal/middleware"
	"github.com/localnerve/publishing-house/internal/models"
	"github.com/localnerve/publishing-house/internal/router"
	"github.com/localnerve/publishing-house/internal/testsupport"
	"github.com/localnerve/publishing-house/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testsupport.NewSQLite(t)
	return router.New(db, router.Options{}), db
}

func assertError(t *testing.T, resp *http.Response, body []byte, status int, errType string) {
	t.Helper()
	require.Equal(t, status, resp.StatusCode, string(body))
	obj := testsupport.Object(t, body)
	assert.Equal(t, false, obj["ok"])
	assert.EqualValues(t, status, obj["status"])
	assert.Equal(t, errType, obj["type"])
	assert.NotEmpty(t, obj["message"])
	assert.NotEmpty(t, obj["timestamp"])
}

func bookBody(editorID int64, title string) map[string]any {
	return map[string]any{
		"editor_id":        editorID,
		"title":            title,
		"publication_date": "2015-06-01",
		"edition_number":   1,
		"is_in_print":      true,
	}
}

func TestAuthorRoundTrip(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := testsupport.Do(t, app, fiber.MethodPost, "/authors", map[string]any{
		"first_name": "Octavia",
		"last_name":  "Butler",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	created := testsupport.Object(t, body)
	id := testsupport.ID(t, created, "author_id")
	assert.Equal(t, "Octavia", created["first_name"])

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/authors/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, testsupport.Object(t, body))

	resp, body = testsupport.Do(t, app, fiber.MethodPatch, fmt.Sprintf("/authors/%d", id), map[string]any{"last_name": "E. Butler"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := testsupport.Object(t, body)
	assert.Equal(t, "Octavia", updated["first_name"])
	assert.Equal(t, "E. Butler", updated["last_name"])

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/authors", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testsupport.Objects(t, body), 1)

	resp, body = testsupport.Do(t, app, fiber.MethodDelete, fmt.Sprintf("/authors/%d", id), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", string(body))

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/authors/%d", id), nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)
}

func TestCreateBookForAuthor(t *testing.T) {
	app, db := setupApp(t)
	a := testsupport.CreateAuthor(t, db, "Ann", "Leckie")

	resp, body := testsupport.Do(t, app, fiber.MethodPost, "/editors", map[string]any{
		"first_name": "Devi",
		"last_name":  "Pillai",
		"salary":     72000.5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	editor := testsupport.Object(t, body)
	editorID := testsupport.ID(t, editor, "editor_id")
	assert.EqualValues(t, 72000.5, editor["salary"])

	resp, body = testsupport.Do(t, app, fiber.MethodPost, fmt.Sprintf("/authors/%d/books", a.AuthorID), bookBody(editorID, "Ancillary Justice"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	book := testsupport.Object(t, body)
	bookID := testsupport.ID(t, book, "book_id")
	assert.Equal(t, "2015-06-01", book["publication_date"])
	assert.Nil(t, book["series_id"])

	assert.EqualValues(t, 1, testsupport.CountRows(t, db, &models.AuthorBook{}, "author_id = ? AND book_id = ?", a.AuthorID, bookID))

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/authors/%d/books/%d", a.AuthorID, bookID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Ancillary Justice", testsupport.Object(t, body)["title"])

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/editors/%d/books", editorID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testsupport.Objects(t, body), 1)
}

func TestCreateValidation(t *testing.T) {
	app, db := setupApp(t)
	a := testsupport.CreateAuthor(t, db, "Ann", "Leckie")
	ed := testsupport.CreateEditor(t, db, "Devi", "Pillai", 72000)
	path := fmt.Sprintf("/authors/%d/books", a.AuthorID)

	t.Run("publication date before 1990", func(t *testing.T) {
		b := bookBody(ed.EditorID, "Too Early")
		b["publication_date"] = "1889-01-01"
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, b)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)
	})

	t.Run("edition out of range", func(t *testing.T) {
		b := bookBody(ed.EditorID, "Too Many")
		b["edition_number"] = 11
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, b)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)
	})

	t.Run("server-assigned key", func(t *testing.T) {
		b := bookBody(ed.EditorID, "Keyed")
		b["book_id"] = 7
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, b)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeShape)
		assert.Contains(t, testsupport.Object(t, body)["message"], "book_id")
	})

	t.Run("outer key in body", func(t *testing.T) {
		b := bookBody(ed.EditorID, "Doubled")
		b["author_id"] = a.AuthorID
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, b)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeShape)
	})

	t.Run("missing field", func(t *testing.T) {
		b := bookBody(ed.EditorID, "Incomplete")
		delete(b, "is_in_print")
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, b)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeShape)
		assert.Contains(t, testsupport.Object(t, body)["message"], "is_in_print")
	})

	t.Run("unknown editor", func(t *testing.T) {
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, bookBody(ed.EditorID+100, "Unedited"))
		assertError(t, resp, body, http.StatusBadRequest, types.TypeReference)
	})

	t.Run("unknown author", func(t *testing.T) {
		resp, body := testsupport.Do(t, app, fiber.MethodPost, fmt.Sprintf("/authors/%d/books", a.AuthorID+100), bookBody(ed.EditorID, "Unowned"))
		assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, "[1, 2")
		assertError(t, resp, body, http.StatusBadRequest, types.TypeBadRequest)
	})

	t.Run("not json", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewBufferString("title=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	assert.Zero(t, testsupport.CountRows(t, db, &models.Book{}, "1 = 1"))
	assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorBook{}, "1 = 1"))
}

func TestManuscriptDueDate(t *testing.T) {
	app, db := setupApp(t)
	a := testsupport.CreateAuthor(t, db, "Ann", "Leckie")
	ed := testsupport.CreateEditor(t, db, "Devi", "Pillai", 72000)
	path := fmt.Sprintf("/authors/%d/manuscripts", a.AuthorID)
	today := time.Now().UTC()

	body := func(title string, due time.Time) map[string]any {
		return map[string]any{
			"editor_id":     ed.EditorID,
			"working_title": title,
			"due_date":      due.Format("2006-01-02"),
			"advance":       20000,
		}
	}

	resp, data := testsupport.Do(t, app, fiber.MethodPost, path, body("Today", today))
	assertError(t, resp, data, http.StatusBadRequest, types.TypeValidation)

	resp, data = testsupport.Do(t, app, fiber.MethodPost, path, body("Too Late", today.AddDate(2, 0, 0)))
	assertError(t, resp, data, http.StatusBadRequest, types.TypeValidation)

	resp, data = testsupport.Do(t, app, fiber.MethodPost, path, body("Next Year", today.AddDate(1, 0, 0)))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
}

func TestCoauthoredIntersection(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	a1 := testsupport.CreateAuthor(t, db, "Terry", "Pratchett")
	a2 := testsupport.CreateAuthor(t, db, "Neil", "Gaiman")
	testsupport.CreateBook(t, db, ed, nil, "Mort", a1)
	testsupport.CreateBook(t, db, ed, nil, "Coraline", a2)
	b3 := testsupport.CreateBook(t, db, ed, nil, "Good Omens", a1, a2)

	for _, path := range []string{
		fmt.Sprintf("/authors/%d/%d/books", a1.AuthorID, a2.AuthorID),
		fmt.Sprintf("/authors/%d/%d/books", a2.AuthorID, a1.AuthorID),
	} {
		resp, body := testsupport.Do(t, app, fiber.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		books := testsupport.Objects(t, body)
		require.Len(t, books, 1, path)
		assert.Equal(t, b3.BookID, testsupport.ID(t, books[0], "book_id"))
	}

	resp, body := testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/authors/%d/%d", a1.AuthorID, a2.AuthorID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := testsupport.Objects(t, body)
	require.Len(t, pair, 2)
	assert.Equal(t, "Terry", pair[0]["first_name"])
	assert.Equal(t, "Neil", pair[1]["first_name"])

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/authors/%d/%d", a1.AuthorID, a1.AuthorID), nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeBadRequest)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/authors/%d/%d/books", a1.AuthorID, a1.AuthorID), nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeBadRequest)
}

func TestCoauthoredCreate(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	a1 := testsupport.CreateAuthor(t, db, "Terry", "Pratchett")
	a2 := testsupport.CreateAuthor(t, db, "Stephen", "Baxter")

	resp, body := testsupport.Do(t, app, fiber.MethodPost, fmt.Sprintf("/authors/%d/%d/books", a1.AuthorID, a2.AuthorID), bookBody(ed.EditorID, "The Long Earth"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	bookID := testsupport.ID(t, testsupport.Object(t, body), "book_id")
	assert.EqualValues(t, 2, testsupport.CountRows(t, db, &models.AuthorBook{}, "book_id = ?", bookID))
}

func TestCoauthoredUpdateAndDelete(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	a1 := testsupport.CreateAuthor(t, db, "Terry", "Pratchett")
	a2 := testsupport.CreateAuthor(t, db, "Neil", "Gaiman")
	shared := testsupport.CreateBook(t, db, ed, nil, "Good Omens", a1, a2)
	solo := testsupport.CreateBook(t, db, ed, nil, "Mort", a1)
	pair := fmt.Sprintf("/authors/%d/%d", a1.AuthorID, a2.AuthorID)

	resp, body := testsupport.Do(t, app, fiber.MethodPatch, fmt.Sprintf("%s/books/%d", pair, shared.BookID), map[string]any{"edition_number": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := testsupport.Object(t, body)
	assert.EqualValues(t, 2, updated["edition_number"])
	assert.Equal(t, "Good Omens", updated["title"])

	resp, body = testsupport.Do(t, app, fiber.MethodPut, fmt.Sprintf("/authors/%d/%d/books/%d", a2.AuthorID, a1.AuthorID, shared.BookID), map[string]any{"is_in_print": false})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, false, testsupport.Object(t, body)["is_in_print"])

	soloPath := fmt.Sprintf("%s/books/%d", pair, solo.BookID)
	resp, body = testsupport.Do(t, app, fiber.MethodPatch, soloPath, map[string]any{"edition_number": 3})
	assertError(t, resp, body, http.StatusNotFound, types.TypeBridge)
	resp, body = testsupport.Do(t, app, fiber.MethodDelete, soloPath, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeBridge)
	assert.EqualValues(t, 1, testsupport.CountRows(t, db, &models.Book{}, "book_id = ? AND edition_number = 1", solo.BookID))

	same := fmt.Sprintf("/authors/%d/%d/books/%d", a1.AuthorID, a1.AuthorID, solo.BookID)
	resp, body = testsupport.Do(t, app, fiber.MethodPatch, same, map[string]any{"edition_number": 3})
	assertError(t, resp, body, http.StatusBadRequest, types.TypeBadRequest)
	resp, body = testsupport.Do(t, app, fiber.MethodDelete, same, nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeBadRequest)
	assert.EqualValues(t, 1, testsupport.CountRows(t, db, &models.Book{}, "book_id = ?", solo.BookID))

	resp, body = testsupport.Do(t, app, fiber.MethodDelete, fmt.Sprintf("%s/books/%d", pair, shared.BookID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "true", string(body))
	assert.Zero(t, testsupport.CountRows(t, db, &models.Book{}, "book_id = ?", shared.BookID))
	assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorBook{}, "book_id = ?", shared.BookID))
	assert.EqualValues(t, 1, testsupport.CountRows(t, db, &models.AuthorBook{}, "book_id = ?", solo.BookID))

	t.Run("manuscripts", func(t *testing.T) {
		m := testsupport.CreateManuscript(t, db, ed, "The Long Mars", a1, a2)
		other := testsupport.CreateManuscript(t, db, ed, "Snuff", a1)
		path := fmt.Sprintf("%s/manuscripts/%d", pair, m.ManuscriptID)

		resp, body := testsupport.Do(t, app, fiber.MethodPatch, path, map[string]any{"working_title": "The Long War"})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Equal(t, "The Long War", testsupport.Object(t, body)["working_title"])

		resp, body = testsupport.Do(t, app, fiber.MethodPatch, fmt.Sprintf("%s/manuscripts/%d", pair, other.ManuscriptID), map[string]any{"advance": 20000})
		assertError(t, resp, body, http.StatusNotFound, types.TypeBridge)

		resp, body = testsupport.Do(t, app, fiber.MethodDelete, fmt.Sprintf("/authors/%d/%d/manuscripts/%d", a2.AuthorID, a2.AuthorID, m.ManuscriptID), nil)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeBadRequest)

		resp, body = testsupport.Do(t, app, fiber.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Zero(t, testsupport.CountRows(t, db, &models.Manuscript{}, "manuscript_id = ?", m.ManuscriptID))
		assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorManuscript{}, "manuscript_id = ?", m.ManuscriptID))
		assert.EqualValues(t, 1, testsupport.CountRows(t, db, &models.AuthorManuscript{}, "manuscript_id = ?", other.ManuscriptID))
	})
}

func TestSalaryFitsColumn(t *testing.T) {
	app, db := setupApp(t)

	for _, salary := range []any{1e40, "10000000000"} {
		resp, body := testsupport.Do(t, app, fiber.MethodPost, "/editors", map[string]any{
			"first_name": "Devi",
			"last_name":  "Pillai",
			"salary":     salary,
		})
		assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)
	}
	assert.Zero(t, testsupport.CountRows(t, db, &models.Editor{}, "1 = 1"))

	resp, body := testsupport.Do(t, app, fiber.MethodPost, "/salespeople", map[string]any{
		"first_name": "Sam",
		"last_name":  "Vimes",
		"salary":     "9999999999.99",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestBridgeMismatch(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	a := testsupport.CreateAuthor(t, db, "Toni", "Morrison")
	other := testsupport.CreateAuthor(t, db, "James", "Baldwin")
	b := testsupport.CreateBook(t, db, ed, nil, "Beloved", a)

	path := fmt.Sprintf("/authors/%d/books/%d", other.AuthorID, b.BookID)
	resp, body := testsupport.Do(t, app, fiber.MethodGet, path, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeBridge)

	resp, body = testsupport.Do(t, app, fiber.MethodDelete, path, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeBridge)
	assert.EqualValues(t, 1, testsupport.CountRows(t, db, &models.Book{}, "book_id = ?", b.BookID))
}

func TestDeleteBook(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	a1 := testsupport.CreateAuthor(t, db, "Terry", "Pratchett")
	a2 := testsupport.CreateAuthor(t, db, "Neil", "Gaiman")
	b := testsupport.CreateBook(t, db, ed, nil, "Good Omens", a1, a2)

	path := fmt.Sprintf("/books/%d", b.BookID)
	resp, body := testsupport.Do(t, app, fiber.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "true", string(body))

	resp, body = testsupport.Do(t, app, fiber.MethodGet, path, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)
	assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorBook{}, "book_id = ?", b.BookID))

	resp, body = testsupport.Do(t, app, fiber.MethodDelete, path, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)
}

func TestDeleteEditorKeepsBooks(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	b := testsupport.CreateBook(t, db, ed, nil, "The Great Gatsby")

	resp, body := testsupport.Do(t, app, fiber.MethodDelete, fmt.Sprintf("/editors/%d", ed.EditorID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/books/%d", b.BookID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, testsupport.Object(t, body)["editor_id"])
}

func TestDeleteSeriesInUse(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	s := testsupport.CreateSeries(t, db, "Discworld", 41)
	testsupport.CreateBook(t, db, ed, s, "Guards! Guards!")

	resp, body := testsupport.Do(t, app, fiber.MethodDelete, fmt.Sprintf("/series/%d", s.SeriesID), nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeConstraint)
}

func TestDeleteAuthorKeepsBooks(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	a := testsupport.CreateAuthor(t, db, "Ernest", "Hemingway")
	b := testsupport.CreateBook(t, db, ed, nil, "A Farewell to Arms", a)

	resp, body := testsupport.Do(t, app, fiber.MethodPost, fmt.Sprintf("/authors/%d/metadata", a.AuthorID), map[string]any{
		"age": 61, "biography": "Oak Park", "photo_url": "http://example.com/eh.jpg", "photo_res_horiz": 800, "photo_res_vert": 600,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = testsupport.Do(t, app, fiber.MethodDelete, fmt.Sprintf("/authors/%d", a.AuthorID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, _ = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/books/%d", b.BookID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorBook{}, "author_id = ?", a.AuthorID))
	assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorMetadata{}, "author_id = ?", a.AuthorID))
}

func TestAuthorMetadata(t *testing.T) {
	app, db := setupApp(t)
	a := testsupport.CreateAuthor(t, db, "Emily", "Dickinson")
	path := fmt.Sprintf("/authors/%d/metadata", a.AuthorID)
	metadata := map[string]any{
		"age": 55, "biography": "Amherst", "photo_url": "http://example.com/ed.jpg", "photo_res_horiz": 640, "photo_res_vert": 480,
	}

	resp, body := testsupport.Do(t, app, fiber.MethodGet, path, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)

	resp, body = testsupport.Do(t, app, fiber.MethodPost, path, metadata)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	created := testsupport.Object(t, body)
	assert.Equal(t, a.AuthorID, testsupport.ID(t, created, "author_id"))

	resp, body = testsupport.Do(t, app, fiber.MethodPost, path, metadata)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeConstraint)

	resp, body = testsupport.Do(t, app, fiber.MethodPost, path, map[string]any{
		"age": 12, "biography": "b", "photo_url": "u", "photo_res_horiz": 1, "photo_res_vert": 1,
	})
	assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)

	resp, body = testsupport.Do(t, app, fiber.MethodPut, path, map[string]any{"age": 56})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.EqualValues(t, 56, testsupport.Object(t, body)["age"])

	resp, body = testsupport.Do(t, app, fiber.MethodPatch, path, map[string]any{"author_id": 2})
	assertError(t, resp, body, http.StatusBadRequest, types.TypeShape)

	resp, body = testsupport.Do(t, app, fiber.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Zero(t, testsupport.CountRows(t, db, &models.AuthorMetadata{}, "author_id = ?", a.AuthorID))
}

func TestSalespersonClients(t *testing.T) {
	app, db := setupApp(t)
	sp := testsupport.CreateSalesperson(t, db, "Willy", "Loman")
	other := testsupport.CreateSalesperson(t, db, "Dave", "Singleman")
	path := fmt.Sprintf("/salespeople/%d/clients", sp.SalespersonID)
	client := map[string]any{
		"email":          "orders@acme.test",
		"phone":          "15555550100",
		"business_name":  "Acme Books",
		"street_address": "1 Main St",
		"city":           "Boston",
		"state":          "MA",
		"zipcode":        "021010001",
	}

	resp, body := testsupport.Do(t, app, fiber.MethodGet, path, nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)

	resp, body = testsupport.Do(t, app, fiber.MethodPost, path, client)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	created := testsupport.Object(t, body)
	clientID := testsupport.ID(t, created, "client_id")
	assert.Equal(t, sp.SalespersonID, testsupport.ID(t, created, "salesperson_id"))

	resp, body = testsupport.Do(t, app, fiber.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testsupport.Objects(t, body), 1)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/salespeople/%d/clients/%d", other.SalespersonID, clientID), nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeBridge)

	resp, body = testsupport.Do(t, app, fiber.MethodPatch, fmt.Sprintf("/salespeople/%d/clients/%d", sp.SalespersonID, clientID), map[string]any{"city": "Salem"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Salem", testsupport.Object(t, body)["city"])

	t.Run("duplicate email", func(t *testing.T) {
		dup := map[string]any{}
		for k, v := range client {
			dup[k] = v
		}
		dup["phone"] = "15555550199"
		dup["business_name"] = "Acme Two"
		resp, body := testsupport.Do(t, app, fiber.MethodPost, path, dup)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeConstraint)
		assert.Contains(t, testsupport.Object(t, body)["message"], "email")
	})

	t.Run("bad state", func(t *testing.T) {
		bad := map[string]any{}
		for k, v := range client {
			bad[k] = v
		}
		bad["salesperson_id"] = sp.SalespersonID
		bad["email"] = "other@acme.test"
		bad["state"] = "MAS"
		resp, body := testsupport.Do(t, app, fiber.MethodPost, "/clients", bad)
		assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)
	})
}

func TestSalesRecords(t *testing.T) {
	app, db := setupApp(t)
	ed := testsupport.CreateEditor(t, db, "Max", "Perkins", 90000)
	b := testsupport.CreateBook(t, db, ed, nil, "Best Seller")
	r := testsupport.CreateSalesRecord(t, db, b, 2020, 4, 100)
	testsupport.CreateSalesRecord(t, db, b, 2022, 1, 50)

	resp, body := testsupport.Do(t, app, fiber.MethodGet, "/sales_records/years/2020", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Len(t, testsupport.Objects(t, body), 1)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/sales_records/years/1800", nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/sales_records/years/2021", nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)
	assert.Contains(t, testsupport.Object(t, body)["message"], "[2020, 2022]")

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/sales_records/years/2020/months/4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/sales_records/years/2020/months/13", nil)
	assertError(t, resp, body, http.StatusBadRequest, types.TypeValidation)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/sales_records/years/2020/months/4/books/%d", b.BookID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	record := testsupport.Object(t, body)
	assert.EqualValues(t, 100, record["copies_sold"])
	assert.EqualValues(t, 2000, record["gross_profit"])

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/sales_records/books/%d", b.BookID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testsupport.Objects(t, body), 2)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, fmt.Sprintf("/sales_records/%d", r.SalesRecordID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, r.SalesRecordID, testsupport.ID(t, testsupport.Object(t, body), "sales_record_id"))

	resp, body = testsupport.Do(t, app, fiber.MethodPost, "/sales_records", map[string]any{"year": 2020})
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)
}

func TestHelpAndFallback(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := testsupport.Do(t, app, fiber.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	help := testsupport.Object(t, body)
	assert.Equal(t, router.AppName, help["name"])
	endpoints, ok := help["endpoints"].([]any)
	require.True(t, ok)
	assert.Len(t, endpoints, len(router.Routes(nil)))

	var paths []string
	for _, e := range endpoints {
		paths = append(paths, e.(map[string]any)["path"].(string))
	}
	assert.Contains(t, paths, "/authors/{a1}/{a2}/books/{iid}")
	assert.Contains(t, paths, "/sales_records/years/{year}/months/{month}/books/{book}")

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/nope", nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)

	resp, body = testsupport.Do(t, app, fiber.MethodGet, "/authors/abc", nil)
	assertError(t, resp, body, http.StatusNotFound, types.TypeNotFound)
}

func TestRequestID(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/authors", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(middleware.RequestIDHeader))

	resp, _ = testsupport.Do(t, app, fiber.MethodGet, "/authors", nil)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestRoutesCount(t *testing.T) {
	routes := router.Routes(nil)
	seen := make(map[string]bool)
	for _, r := range routes {
		key := r.Method + " " + r.Path
		assert.False(t, seen[key], "duplicate route %s", key)
		seen[key] = true
	}
	assert.GreaterOrEqual(t, len(routes), 83)
}
