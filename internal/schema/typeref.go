package schema

// BaseName returns the innermost named type of the chain, or "" for a nil
// chain. Links without a name are followed through OfType.
func (t *TypeRef) BaseName() string {
	if t == nil {
		return ""
	}
	if t.Name == "" {
		return t.OfType.BaseName()
	}
	return t.Name
}

// The predicates below look at the outermost link only.

func (t *TypeRef) IsNonNull() bool     { return t.is(KindNonNull) }
func (t *TypeRef) IsList() bool        { return t.is(KindList) }
func (t *TypeRef) IsObject() bool      { return t.is(KindObject) }
func (t *TypeRef) IsInputObject() bool { return t.is(KindInputObject) }
func (t *TypeRef) IsScalar() bool      { return t.is(KindScalar) }

func (t *TypeRef) is(k Kind) bool { return t != nil && t.Kind == k }

// Unwrap removes one Non-Null layer. Any other chain is returned as is.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.IsNonNull() {
		return t.OfType
	}
	return t
}

// Render produces the GraphQL type notation of the chain, for example
// "[String!]!".
func (t *TypeRef) Render() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case KindNonNull:
		return t.OfType.Render() + "!"
	case KindList:
		return "[" + t.OfType.Render() + "]"
	default:
		if t.Name == "" {
			return t.OfType.Render()
		}
		return t.Name
	}
}

func (t *TypeRef) String() string { return t.Render() }

func NonNullType(t *TypeRef) *TypeRef           { return &TypeRef{Kind: KindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef              { return &TypeRef{Kind: KindList, OfType: t} }
func NamedType(kind Kind, name string) *TypeRef { return &TypeRef{Kind: kind, Name: name} }

// BaseName returns the innermost named type for the given reference.
func BaseName(t *TypeRef) string { return t.BaseName() }

// RenderType returns the GraphQL notation for the given reference.
func RenderType(t *TypeRef) string { return t.Render() }

// IsLeaf reports whether the named base type of t is a scalar or enum in
// types. Unknown names are not leaves.
func IsLeaf(t *TypeRef, types map[string]*Type) bool {
	typ, ok := types[t.BaseName()]
	if !ok || typ == nil {
		return false
	}
	return typ.Kind == KindScalar || typ.Kind == KindEnum
}
