// Package selection models GraphQL selection sets and discovers default
// selections from an introspected schema.
package selection

import "strings"

// SelectionField is one node of a selection set. A field without children
// renders bare; otherwise its children follow in braces.
type SelectionField struct {
	Name     string
	Children []SelectionField
}

// Field returns a selection node named name with the given children.
func Field(name string, children ...SelectionField) SelectionField {
	return SelectionField{Name: name, Children: children}
}

// Fields returns one leaf node per name.
func Fields(names ...string) []SelectionField {
	out := make([]SelectionField, len(names))
	for i, name := range names {
		out[i] = SelectionField{Name: name}
	}
	return out
}

// String renders the node as "name" or "name { c1 c2 }".
func (f SelectionField) String() string {
	var b strings.Builder
	f.write(&b)
	return collapse(b.String())
}

func (f SelectionField) write(b *strings.Builder) {
	b.WriteString(f.Name)
	if len(f.Children) == 0 {
		return
	}
	b.WriteString(" ")
	writeSet(b, f.Children)
}

// Render renders fields as a selection set "{ f1 f2 }". No fields render as
// the empty string.
func Render(fields []SelectionField) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	writeSet(&b, fields)
	return collapse(b.String())
}

func writeSet(b *strings.Builder, fields []SelectionField) {
	b.WriteString("{ ")
	for _, f := range fields {
		f.write(b)
		b.WriteString(" ")
	}
	b.WriteString("}")
}

// Depth returns the number of levels in the tree. No fields have depth 0.
func Depth(fields []SelectionField) int {
	if len(fields) == 0 {
		return 0
	}
	deepest := 0
	for _, f := range fields {
		deepest = max(deepest, Depth(f.Children))
	}
	return deepest + 1
}

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }
