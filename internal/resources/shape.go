package resources

import (
	"sort"
	"strings"

	"github.com/localnerve/publishing-house/internal/types"
)

// ShapeOptions tunes CheckShape.
type ShapeOptions struct {
	// CheckMissing rejects bodies lacking an expected, non-optional key.
	CheckMissing bool
	// CheckUnexpected rejects bodies carrying keys outside the expected set.
	CheckUnexpected bool
	// Optional keys may be absent; nullable fields are always optional.
	Optional []string
	// Exclude removes columns supplied by the URL from the expected set, so
	// their presence in the body is unexpected.
	Exclude []string
}

// CreateShape is the shape check applied to create requests.
func CreateShape(exclude ...string) ShapeOptions {
	return ShapeOptions{CheckMissing: true, CheckUnexpected: true, Exclude: exclude}
}

// UpdateShape is the shape check applied to update requests.
func UpdateShape(exclude ...string) ShapeOptions {
	return ShapeOptions{CheckUnexpected: true, Exclude: exclude}
}

// CheckShape compares the body's keys with the descriptor's columns minus the
// server-assigned and excluded ones, and reports every offending key.
func CheckShape(d *Descriptor, body map[string]any, opts ShapeOptions) error {
	skip := set(d.ServerAssigned(), opts.Exclude)
	expected := make(map[string]struct{})
	for _, c := range d.Columns() {
		if _, ok := skip[c]; !ok {
			expected[c] = struct{}{}
		}
	}
	optional := set(opts.Optional, d.nullable())

	var missing, unexpected []string
	if opts.CheckMissing {
		for c := range expected {
			_, inBody := body[c]
			_, isOptional := optional[c]
			if !inBody && !isOptional {
				missing = append(missing, c)
			}
		}
	}
	if opts.CheckUnexpected {
		for k := range body {
			_, isExpected := expected[k]
			_, isOptional := optional[k]
			if !isExpected && !isOptional {
				unexpected = append(unexpected, k)
			}
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(unexpected)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing properties: "+strings.Join(missing, ", "))
	}
	if len(unexpected) > 0 {
		parts = append(parts, "unexpected properties: "+strings.Join(unexpected, ", "))
	}
	return types.Shape("%s request body: %s", d.Name, strings.Join(parts, "; "))
}

func set(lists ...[]string) map[string]struct{} {
	m := make(map[string]struct{})
	for _, l := range lists {
		for _, s := range l {
			m[s] = struct{}{}
		}
	}
	return m
}
