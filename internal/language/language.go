// Package language wraps the gqlparser front end used to check generated
// documents.
package language

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// CheckSyntax parses query and reports the first syntax error. It also
// requires exactly one operation of the expected kind.
func CheckSyntax(query string, kind Operation) error {
	doc, err := ParseQuery(query)
	if err != nil {
		return fmt.Errorf("language: syntax: %w", err)
	}
	if len(doc.Operations) != 1 {
		return fmt.Errorf("language: expected one operation, got %d", len(doc.Operations))
	}
	if op := doc.Operations[0]; op.Operation != kind {
		return fmt.Errorf("language: expected %s operation, got %s", kind, op.Operation)
	}
	return nil
}
