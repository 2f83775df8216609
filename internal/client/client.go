// Package client exposes the root fields of an introspected GraphQL schema
// as callable operations.
package client

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/hanpama/graphy/internal/introspection"
	"github.com/hanpama/graphy/internal/language"
	"github.com/hanpama/graphy/internal/logging"
	"github.com/hanpama/graphy/internal/schema"
	"github.com/hanpama/graphy/internal/transport"
)

// Client sends operations to one endpoint using the schema it introspected.
// It is safe for concurrent use once New returns.
type Client struct {
	endpoint  string
	transport transport.Transport
	schema    *schema.Schema
	settings  Settings
	logger    *slog.Logger

	queries   *Service[*QueryOperation]
	mutations *Service[*MutationOperation]
}

// New creates a client for endpoint. Unless WithSchema is given, the schema
// is introspected from the endpoint before New returns.
func New(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	o := defaultOptions()
	for _, f := range opts {
		f(o)
	}
	if o.Logger == nil {
		o.Logger = logging.Discard()
	}

	t := o.Transport
	if t == nil {
		topts := []transport.Option{
			transport.WithResponseKey(o.Settings.ResponseKey),
			transport.WithRawResponse(o.Settings.ReturnRawResponse),
		}
		t = transport.New(append(topts, o.TransportOptions...)...)
	}

	c := &Client{
		endpoint:  endpoint,
		transport: t,
		schema:    o.Schema,
		settings:  o.Settings,
		logger:    o.Logger,
	}
	if c.schema == nil {
		raw, err := introspection.Fetch(ctx, t, endpoint)
		if err != nil {
			return nil, err
		}
		s, err := schema.FromIntrospection(raw)
		if err != nil {
			return nil, fmt.Errorf("client: build schema: %w", err)
		}
		c.schema = s
		c.logger.DebugContext(ctx, "schema introspected",
			"endpoint", endpoint,
			"types", len(s.Types),
			"queries", len(s.Queries),
			"mutations", len(s.Mutations))
	}
	c.queries = newService(language.Query, c.schema.Queries, func(op *schema.Operation) *QueryOperation {
		return &QueryOperation{operation{client: c, op: op, kind: language.Query}}
	})
	c.mutations = newService(language.Mutation, c.schema.Mutations, func(op *schema.Operation) *MutationOperation {
		return &MutationOperation{operation{client: c, op: op, kind: language.Mutation}}
	})
	return c, nil
}

func (c *Client) Endpoint() string       { return c.endpoint }
func (c *Client) Schema() *schema.Schema { return c.schema }
func (c *Client) Settings() Settings     { return c.settings }

// Query returns the query root fields of the schema.
func (c *Client) Query() *Service[*QueryOperation] { return c.queries }

// Mutation returns the mutation root fields of the schema.
func (c *Client) Mutation() *Service[*MutationOperation] { return c.mutations }

// Subscription always fails with ErrSubscriptionUnsupported.
func (c *Client) Subscription() (*Service[*QueryOperation], error) {
	return nil, ErrSubscriptionUnsupported
}

// Service maps operation names of one root type to their proxies.
type Service[O any] struct {
	kind  language.Operation
	names []string
	ops   map[string]O
}

func newService[O any](kind language.Operation, ops []*schema.Operation, wrap func(*schema.Operation) O) *Service[O] {
	s := &Service[O]{kind: kind, ops: make(map[string]O, len(ops))}
	for _, op := range ops {
		if _, dup := s.ops[op.Name]; !dup {
			s.names = append(s.names, op.Name)
		}
		s.ops[op.Name] = wrap(op)
	}
	return s
}

// Get returns the operation named name or ErrUnsupportedOperation.
func (s *Service[O]) Get(name string) (O, error) {
	op, ok := s.ops[name]
	if !ok {
		var zero O
		return zero, fmt.Errorf("%w: no %s named %q", ErrUnsupportedOperation, s.kind, name)
	}
	return op, nil
}

// Names lists the operations in schema order.
func (s *Service[O]) Names() []string { return append([]string(nil), s.names...) }

// Len returns the number of operations.
func (s *Service[O]) Len() int { return len(s.names) }

// All iterates the operations in schema order.
func (s *Service[O]) All() iter.Seq2[string, O] {
	return func(yield func(string, O) bool) {
		for _, name := range s.names {
			if !yield(name, s.ops[name]) {
				return
			}
		}
	}
}
