package schema

import (
	"github.com/hanpama/graphy/internal/introspection"
)

// FromIntrospection decodes a raw introspection document and builds the
// schema model. A document without data.__schema yields an empty schema.
func FromIntrospection(raw []byte) (*Schema, error) {
	resp, err := introspection.Decode(raw)
	if err != nil {
		return nil, err
	}
	return New(resp.SchemaOf()), nil
}

// New builds a Schema from a decoded __schema payload. A nil payload
// yields an empty schema.
func New(raw *introspection.Schema) *Schema {
	s := &Schema{
		Types:      make(map[string]*Type),
		Directives: make(map[string]*Directive),
	}
	if raw == nil {
		s.index()
		return s
	}
	s.QueryType = rootName(raw.QueryType)
	s.MutationType = rootName(raw.MutationType)
	s.SubscriptionType = rootName(raw.SubscriptionType)

	for _, rt := range raw.Types {
		if rt == nil {
			continue
		}
		t := buildType(rt)
		s.Types[t.Name] = t
	}
	for _, rd := range raw.Directives {
		if rd == nil {
			continue
		}
		d := buildDirective(rd)
		s.Directives[d.Name] = d
	}

	s.Queries = buildOperations(s.Types, s.QueryType)
	s.Mutations = buildOperations(s.Types, s.MutationType)
	s.Subscriptions = buildOperations(s.Types, s.SubscriptionType)
	s.index()
	return s
}

func (s *Schema) index() {
	s.queryIndex = indexOperations(s.Queries)
	s.mutationIndex = indexOperations(s.Mutations)
	s.subscriptionIndex = indexOperations(s.Subscriptions)
}

func indexOperations(ops []*Operation) map[string]*Operation {
	m := make(map[string]*Operation, len(ops))
	for _, op := range ops {
		m[op.Name] = op
	}
	return m
}

func rootName(ref *introspection.NamedRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func buildOperations(types map[string]*Type, rootType string) []*Operation {
	if rootType == "" {
		return nil
	}
	root, ok := types[rootType]
	if !ok {
		return nil
	}
	ops := make([]*Operation, 0, len(root.Fields))
	for _, f := range root.Fields {
		ops = append(ops, newOperation(f))
	}
	return ops
}

func newOperation(f *TypeField) *Operation {
	op := &Operation{
		Name:              f.Name,
		Description:       f.Description,
		Arguments:         make(map[string]string, len(f.Args)),
		ReturnType:        f.Type,
		IsDeprecated:      f.IsDeprecated,
		DeprecationReason: f.DeprecationReason,
	}
	for _, arg := range f.Arguments() {
		// An argument without a type cannot be declared as a variable.
		if arg.Type == nil {
			continue
		}
		op.Arguments[arg.Name] = arg.Type.Render()
		op.ArgOrder = append(op.ArgOrder, arg.Name)
	}
	return op
}

func buildType(rt *introspection.FullType) *Type {
	t := &Type{
		Kind:        Kind(rt.Kind),
		Name:        rt.Name,
		Description: rt.Description,
	}
	for _, rf := range rt.Fields {
		if rf == nil {
			continue
		}
		t.Fields = append(t.Fields, buildField(rf))
	}
	for _, iv := range rt.InputFields {
		if iv == nil {
			continue
		}
		t.InputFields = append(t.InputFields, buildArgument(iv))
	}
	for _, ref := range rt.Interfaces {
		if ref == nil {
			continue
		}
		t.Interfaces = append(t.Interfaces, buildTypeRef(ref))
	}
	for _, ev := range rt.EnumValues {
		if ev == nil {
			continue
		}
		t.EnumValues = append(t.EnumValues, &EnumValue{
			Name:              ev.Name,
			Description:       ev.Description,
			IsDeprecated:      ev.IsDeprecated,
			DeprecationReason: ev.DeprecationReason,
		})
	}
	for _, ref := range rt.PossibleTypes {
		if ref == nil {
			continue
		}
		t.PossibleTypes = append(t.PossibleTypes, buildTypeRef(ref))
	}
	return t
}

func buildField(rf *introspection.Field) *TypeField {
	f := &TypeField{
		Name:              rf.Name,
		Description:       rf.Description,
		Type:              buildTypeRef(rf.Type),
		IsDeprecated:      rf.IsDeprecated,
		DeprecationReason: rf.DeprecationReason,
	}
	f.Args, f.ArgOrder = buildArguments(rf.Args)
	return f
}

func buildArguments(raw []*introspection.InputValue) (map[string]*Argument, []string) {
	args := make(map[string]*Argument, len(raw))
	var order []string
	for _, iv := range raw {
		if iv == nil {
			continue
		}
		a := buildArgument(iv)
		if _, dup := args[a.Name]; !dup {
			order = append(order, a.Name)
		}
		args[a.Name] = a
	}
	return args, order
}

func buildArgument(iv *introspection.InputValue) *Argument {
	return &Argument{
		Name:         iv.Name,
		Description:  iv.Description,
		Type:         buildTypeRef(iv.Type),
		DefaultValue: iv.DefaultValue,
	}
}

func buildDirective(rd *introspection.Directive) *Directive {
	d := &Directive{
		Name:        rd.Name,
		Description: rd.Description,
		Locations:   append([]string(nil), rd.Locations...),
	}
	d.Args, d.ArgOrder = buildArguments(rd.Args)
	return d
}

// buildTypeRef copies a raw chain. A nil link stays nil.
func buildTypeRef(ref *introspection.TypeRef) *TypeRef {
	if ref == nil {
		return nil
	}
	return &TypeRef{
		Kind:   Kind(ref.Kind),
		Name:   ref.Name,
		OfType: buildTypeRef(ref.OfType),
	}
}
