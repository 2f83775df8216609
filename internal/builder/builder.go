// Package builder assembles GraphQL operation strings from an operation
// header, a root field call and a selection set.
package builder

import (
	"sort"
	"strings"

	"github.com/hanpama/graphy/internal/language"
	"github.com/hanpama/graphy/internal/selection"
)

// Param is one "key: value" pair of an argument or variable list.
type Param struct {
	Key   string
	Value string
}

// Params keeps arguments in the order they are rendered.
type Params []Param

func (p Params) String() string {
	parts := make([]string, len(p))
	for i, param := range p {
		parts[i] = param.Key + ": " + param.Value
	}
	return strings.Join(parts, ", ")
}

// Keys returns the parameter keys in order.
func (p Params) Keys() []string {
	keys := make([]string, len(p))
	for i, param := range p {
		keys[i] = param.Key
	}
	return keys
}

// SortedParams converts a map into Params ordered by key.
func SortedParams(m map[string]string) Params {
	out := make(Params, 0, len(m))
	for k, v := range m {
		out = append(out, Param{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Builder collects the parts of one document. The zero value is ready to
// use; each setter replaces the part it owns.
type Builder struct {
	fields    string
	query     string
	operation string
	fragment  string
}

func New() *Builder { return &Builder{} }

// Fields sets the selection set. No fields clear it.
func (b *Builder) Fields(fields []selection.SelectionField) *Builder {
	b.fields = selection.Render(fields)
	return b
}

// FieldsNamed sets a selection set prefixed by a field name and an optional
// condition, for example "node ... on User { id }".
func (b *Builder) FieldsNamed(name, condition string, fields []selection.SelectionField) *Builder {
	parts := make([]string, 0, 3)
	for _, s := range []string{name, condition, selection.Render(fields)} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	b.fields = strings.Join(parts, " ")
	return b
}

// Query sets the root field call, rendered as "alias: name (k: v, ...)".
func (b *Builder) Query(name, alias string, params Params) *Builder {
	q := name
	if len(params) > 0 {
		q += " (" + params.String() + ")"
	}
	if alias != "" {
		q = alias + ": " + q
	}
	b.query = q
	return b
}

// Operation sets the operation header. Variable declarations are only
// rendered for named operations.
func (b *Builder) Operation(kind language.Operation, name string, variables Params) *Builder {
	op := string(kind)
	if name != "" {
		op += " " + name
		if len(variables) > 0 {
			op += "(" + variables.String() + ")"
		}
	}
	b.operation = op
	return b
}

// Fragment turns the document into a fragment definition on the named type.
func (b *Builder) Fragment(name, on string) *Builder {
	b.fragment = "fragment " + name + " on " + on
	return b
}

// Generate combines the parts. A fragment wraps the selection set. Without
// an operation or query only the selection set is returned. A query alone is
// followed by the selection set. Otherwise the query and selection set are
// nested in the operation. Runs of whitespace collapse to single spaces.
func (b *Builder) Generate() string {
	var out string
	switch {
	case b.fragment != "":
		out = b.fragment + " " + b.fields
	case b.operation == "" && b.query == "":
		out = b.fields
	case b.operation == "":
		out = b.query + " " + b.fields
	default:
		out = b.operation + " { " + b.query + " " + b.fields + " }"
	}
	return collapse(out)
}

func (b *Builder) String() string { return b.Generate() }

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }
