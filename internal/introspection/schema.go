package introspection

import (
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Response is the top-level shape of an introspection result.
type Response struct {
	Data   *Data         `json:"data"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

type Data struct {
	Schema *Schema `json:"__schema"`
}

// Schema mirrors __Schema as returned by the introspection query.
type Schema struct {
	QueryType        *NamedRef    `json:"queryType"`
	MutationType     *NamedRef    `json:"mutationType"`
	SubscriptionType *NamedRef    `json:"subscriptionType"`
	Types            []*FullType  `json:"types"`
	Directives       []*Directive `json:"directives"`
}

// NamedRef is the `{ name }` selection used for the root operation types.
type NamedRef struct {
	Name string `json:"name"`
}

// FullType mirrors the FullType fragment. Null list entries decode as nil.
type FullType struct {
	Kind          string        `json:"kind"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Fields        []*Field      `json:"fields"`
	InputFields   []*InputValue `json:"inputFields"`
	Interfaces    []*TypeRef    `json:"interfaces"`
	EnumValues    []*EnumValue  `json:"enumValues"`
	PossibleTypes []*TypeRef    `json:"possibleTypes"`
}

type Field struct {
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Args              []*InputValue `json:"args"`
	Type              *TypeRef      `json:"type"`
	IsDeprecated      bool          `json:"isDeprecated"`
	DeprecationReason string        `json:"deprecationReason"`
}

// InputValue is shared by field arguments, directive arguments and input
// object fields. DefaultValue is a GraphQL literal, not JSON.
type InputValue struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

// TypeRef is one link of a type reference chain. Only the innermost link
// carries a name.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

type Directive struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Locations   []string      `json:"locations"`
	Args        []*InputValue `json:"args"`
}

// Decode parses a raw introspection document. A document without
// data.__schema decodes successfully with a nil Schema.
func Decode(raw []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("introspection: decode: %w", err)
	}
	return &resp, nil
}

// SchemaOf returns the __schema payload of the response, or nil.
func (r *Response) SchemaOf() *Schema {
	if r == nil || r.Data == nil {
		return nil
	}
	return r.Data.Schema
}
