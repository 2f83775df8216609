package schema

import "strings"

// Scalars every GraphQL server reports. Render leaves them out.
var builtinScalars = map[string]struct{}{
	"String":  {},
	"Int":     {},
	"Float":   {},
	"Boolean": {},
	"ID":      {},
}

// Directives defined by the GraphQL specification itself.
var builtinDirectives = map[string]struct{}{
	"include":     {},
	"skip":        {},
	"deprecated":  {},
	"specifiedBy": {},
	"oneOf":       {},
}

// IsBuiltinScalar reports whether name is one of the specified scalars.
func IsBuiltinScalar(name string) bool {
	_, ok := builtinScalars[name]
	return ok
}

// IsIntrospectionType reports whether name is reserved for introspection
// (the "__" prefix).
func IsIntrospectionType(name string) bool { return strings.HasPrefix(name, "__") }

func isBuiltinDirective(name string) bool {
	_, ok := builtinDirectives[name]
	return ok
}
