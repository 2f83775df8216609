package schema

// Schema is the typed model of one introspection response. It is built once
// by New and never mutated afterwards, so it is safe for concurrent reads.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive

	// Root fields of the query, mutation and subscription types in the
	// order the server reported them.
	Queries       []*Operation
	Mutations     []*Operation
	Subscriptions []*Operation

	queryIndex        map[string]*Operation
	mutationIndex     map[string]*Operation
	subscriptionIndex map[string]*Operation
}

// Query returns the root query field named name.
func (s *Schema) Query(name string) (*Operation, bool) {
	op, ok := s.queryIndex[name]
	return op, ok
}

// Mutation returns the root mutation field named name.
func (s *Schema) Mutation(name string) (*Operation, bool) {
	op, ok := s.mutationIndex[name]
	return op, ok
}

// Subscription returns the root subscription field named name.
func (s *Schema) Subscription(name string) (*Operation, bool) {
	op, ok := s.subscriptionIndex[name]
	return op, ok
}

func (s *Schema) QueryNames() []string    { return operationNames(s.Queries) }
func (s *Schema) MutationNames() []string { return operationNames(s.Mutations) }

func operationNames(ops []*Operation) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Name
	}
	return out
}

// Type is a GraphQL type as described by __Type.
type Type struct {
	Kind          Kind
	Name          string
	Description   string
	Fields        []*TypeField // For OBJECT and INTERFACE
	InputFields   []*Argument  // For INPUT_OBJECT
	Interfaces    []*TypeRef   // For OBJECT and INTERFACE
	EnumValues    []*EnumValue // For ENUM
	PossibleTypes []*TypeRef   // For INTERFACE and UNION
}

// TypeField is a field of an object or interface type.
type TypeField struct {
	Name              string
	Description       string
	Args              map[string]*Argument
	ArgOrder          []string
	Type              *TypeRef
	IsDeprecated      bool
	DeprecationReason string
}

// Arguments returns the field arguments in declaration order.
func (f *TypeField) Arguments() []*Argument { return orderedArgs(f.Args, f.ArgOrder) }

// Kind is the __TypeKind of a type or type reference.
type Kind string

const (
	KindScalar      Kind = "SCALAR"
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindInputObject Kind = "INPUT_OBJECT"
	KindList        Kind = "LIST"
	KindNonNull     Kind = "NON_NULL"
)

// TypeRef is one link of a type reference chain. Wrapper kinds carry OfType,
// the innermost link carries Name.
type TypeRef struct {
	Kind   Kind
	Name   string
	OfType *TypeRef
}

// Argument is a field argument, directive argument or input field.
// DefaultValue is the GraphQL literal reported by the server.
type Argument struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue *string
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

type Directive struct {
	Name        string
	Description string
	Locations   []string
	Args        map[string]*Argument
	ArgOrder    []string
}

// Arguments returns the directive arguments in declaration order.
func (d *Directive) Arguments() []*Argument { return orderedArgs(d.Args, d.ArgOrder) }

// Operation is a root field of the query, mutation or subscription type.
// Arguments maps each argument name to its rendered GraphQL type, e.g.
// "String!", ready to be used in a variable declaration.
type Operation struct {
	Name              string
	Description       string
	Arguments         map[string]string
	ArgOrder          []string
	ReturnType        *TypeRef
	IsDeprecated      bool
	DeprecationReason string
}

// ArgumentType returns the rendered type of the named argument.
func (o *Operation) ArgumentType(name string) (string, bool) {
	typ, ok := o.Arguments[name]
	return typ, ok
}

func orderedArgs(args map[string]*Argument, order []string) []*Argument {
	out := make([]*Argument, 0, len(order))
	for _, name := range order {
		if a, ok := args[name]; ok {
			out = append(out, a)
		}
	}
	return out
}
