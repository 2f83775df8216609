package selection

import "github.com/hanpama/graphy/internal/schema"

// DefaultMaxDepth bounds default discovery when nothing else is configured.
const DefaultMaxDepth = 2

// Discover builds the default selection for typeName by descending at most
// maxDepth levels. Scalar fields are selected bare. List and object fields
// are selected with their own default selection, and dropped when that
// selection comes back empty. All other kinds are skipped. An unknown type
// yields an empty selection.
func Discover(typeName string, types map[string]*schema.Type, maxDepth int) []SelectionField {
	return discover(typeName, types, 0, maxDepth)
}

// DiscoverOrNil is Discover with an empty result reported as nil, meaning no
// default selection exists.
func DiscoverOrNil(typeName string, types map[string]*schema.Type, maxDepth int) []SelectionField {
	fields := Discover(typeName, types, maxDepth)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func discover(typeName string, types map[string]*schema.Type, depth, maxDepth int) []SelectionField {
	if depth >= maxDepth {
		return nil
	}
	typ, ok := types[typeName]
	if !ok || typ == nil {
		return nil
	}
	var out []SelectionField
	for _, f := range typ.Fields {
		if f == nil || f.Type == nil {
			continue
		}
		t := f.Type.Unwrap()
		switch {
		case t.IsScalar():
			out = append(out, Field(f.Name))
		case t.IsList(), t.IsObject(), t.IsNonNull():
			children := discover(t.BaseName(), types, depth+1, maxDepth)
			if len(children) == 0 {
				continue
			}
			out = append(out, Field(f.Name, children...))
		}
	}
	return out
}
