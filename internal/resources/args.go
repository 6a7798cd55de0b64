package resources

import (
	"github.com/localnerve/publishing-house/internal/types"
)

// Args maps column names to validated, normalized values.
type Args map[string]any

// BuildOptions tunes BuildArgs.
type BuildOptions struct {
	// Partial treats every field as optional and skips nulls, for updates.
	Partial bool
	// Optional fields may be omitted on create.
	Optional []string
	// Path holds values derived from the URL. They are merged after
	// validation and take precedence over the body.
	Path Args
}

// BuildArgs validates the body's values field by field in declaration order.
func BuildArgs(d *Descriptor, body map[string]any, opts BuildOptions) (Args, error) {
	optional := set(opts.Optional)
	args := make(Args)

	for _, f := range d.Fields {
		if _, fromPath := opts.Path[f.Name]; fromPath {
			continue
		}

		v, err := f.Validate(body[f.Name])
		if err != nil {
			return nil, err
		}
		if v == nil {
			_, isOptional := optional[f.Name]
			if opts.Partial || isOptional || f.Nullable {
				continue
			}
			return nil, types.Validation("required parameter %s is missing", f.Name)
		}
		args[f.Name] = v
	}

	for k, v := range opts.Path {
		args[k] = v
	}
	return args, nil
}

// References lists the foreign-key values present in args, in declaration order.
func (a Args) References(d *Descriptor) []Reference {
	var refs []Reference
	for _, f := range d.ForeignKeys() {
		v, ok := a[f.Name]
		if !ok || v == nil {
			continue
		}
		id, ok := v.(int64)
		if !ok {
			continue
		}
		refs = append(refs, Reference{Field: f.Name, ID: id, Target: Describe(f.References)})
	}
	return refs
}

// Reference is one foreign-key value awaiting resolution.
type Reference struct {
	Field  string
	ID     int64
	Target *Descriptor
}
