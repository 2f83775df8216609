package builder

import (
	"fmt"

	"github.com/hanpama/graphy/internal/language"
	"github.com/hanpama/graphy/internal/selection"
)

// MapValue renders v as an inline GraphQL literal. Strings are quoted as they
// are, without escaping embedded quotes. Pass strings as variables when they
// are not trusted.
func MapValue(v any) string {
	switch v := v.(type) {
	case string:
		return `"` + v + `"`
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

// BuildQuery returns an anonymous query calling name with inline arguments.
func BuildQuery(name string, args map[string]any, fields []selection.SelectionField) string {
	return build(language.Query, name, args, fields)
}

// BuildMutation returns an anonymous mutation calling name with inline
// arguments.
func BuildMutation(name string, args map[string]any, fields []selection.SelectionField) string {
	return build(language.Mutation, name, args, fields)
}

func build(kind language.Operation, name string, args map[string]any, fields []selection.SelectionField) string {
	rendered := make(map[string]string, len(args))
	for k, v := range args {
		rendered[k] = MapValue(v)
	}
	return New().Operation(kind, "", nil).Query(name, "", SortedParams(rendered)).Fields(fields).Generate()
}
