package selection

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/hanpama/graphy/internal/language"
)

// Parse reads the compact selection notation accepted on the command line,
// for example "id,name,friends{id name}". The input is the body of a GraphQL
// selection set without the outer braces; commas count as whitespace. Only
// plain fields are accepted. An empty string parses to no fields.
func Parse(s string) ([]SelectionField, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	doc, err := language.ParseQuery("{" + s + "}")
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	if len(doc.Operations) != 1 || len(doc.Fragments) != 0 {
		return nil, fmt.Errorf("selection: unbalanced braces in %q", s)
	}
	return fromSelectionSet(doc.Operations[0].SelectionSet)
}

func fromSelectionSet(set ast.SelectionSet) ([]SelectionField, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := make([]SelectionField, 0, len(set))
	for _, sel := range set {
		f, ok := sel.(*ast.Field)
		if !ok {
			return nil, fmt.Errorf("selection: fragments are not supported")
		}
		if f.Alias != "" && f.Alias != f.Name {
			return nil, fmt.Errorf("selection: alias %q on %q is not supported", f.Alias, f.Name)
		}
		if len(f.Arguments) > 0 {
			return nil, fmt.Errorf("selection: arguments on %q are not supported", f.Name)
		}
		if len(f.Directives) > 0 {
			return nil, fmt.Errorf("selection: directives on %q are not supported", f.Name)
		}
		children, err := fromSelectionSet(f.SelectionSet)
		if err != nil {
			return nil, err
		}
		out = append(out, SelectionField{Name: f.Name, Children: children})
	}
	return out, nil
}
