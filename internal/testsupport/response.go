// response.go
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
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// Do sends a request with an optional JSON body through app and returns the
// response with its body read.
func Do(t testing.TB, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// DecodeJSON decodes a response body into target
func DecodeJSON(t testing.TB, data []byte, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, target), string(data))
}

// Object decodes a response body as a JSON object
func Object(t testing.TB, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	DecodeJSON(t, data, &m)
	return m
}

// Objects decodes a response body as a JSON array of objects
func Objects(t testing.TB, data []byte) []map[string]any {
	t.Helper()
	var m []map[string]any
	DecodeJSON(t, data, &m)
	return m
}

// ID reads an integer key from a decoded object
func ID(t testing.TB, obj map[string]any, key string) int64 {
	t.Helper()
	v, ok := obj[key].(float64)
	require.True(t, ok, "missing %s in %v", key, obj)
	return int64(v)
}
