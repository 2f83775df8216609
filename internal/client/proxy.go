package client

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hanpama/graphy/internal/builder"
	eventbus "github.com/hanpama/graphy/internal/eventbus"
	events "github.com/hanpama/graphy/internal/events"
	"github.com/hanpama/graphy/internal/language"
	reqid "github.com/hanpama/graphy/internal/reqid"
	"github.com/hanpama/graphy/internal/schema"
	"github.com/hanpama/graphy/internal/selection"
	"github.com/hanpama/graphy/internal/transport"
)

// Vars maps variable names to values. Values are sent as JSON variables,
// never inlined into the document.
type Vars = map[string]any

// MapVariablesToTypes declares one "$key: Type" variable per key of vars,
// using the rendered argument types of op. Keys are sorted.
func MapVariablesToTypes(vars Vars, op *schema.Operation) (builder.Params, error) {
	keys := sortedKeys(vars)
	params := make(builder.Params, 0, len(keys))
	for _, k := range keys {
		typ, ok := op.ArgumentType(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q is not an argument of %s", ErrUnsupportedArgument, k, op.Name)
		}
		params = append(params, builder.Param{Key: "$" + k, Value: typ})
	}
	return params, nil
}

// callArguments passes each declared variable to the argument of the same
// name, in declaration order.
func callArguments(decls builder.Params) builder.Params {
	keys := decls.Keys()
	params := make(builder.Params, len(keys))
	for i, k := range keys {
		params[i] = builder.Param{Key: strings.TrimPrefix(k, "$"), Value: k}
	}
	return params
}

func sortedKeys(vars Vars) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type operation struct {
	client *Client
	op     *schema.Operation
	kind   language.Operation
}

func (o *operation) Name() string                 { return o.op.Name }
func (o *operation) Operation() *schema.Operation { return o.op }

// request builds the document for sel and the given variables. A nil vars
// produces an anonymous operation without declarations.
func (o *operation) request(sel []selection.SelectionField, vars Vars) (transport.Request, error) {
	b := builder.New()
	req := transport.Request{Variables: map[string]any{}}
	if vars != nil {
		decls, err := MapVariablesToTypes(vars, o.op)
		if err != nil {
			return transport.Request{}, err
		}
		b.Operation(o.kind, o.op.Name, decls).Query(o.op.Name, "", callArguments(decls))
		for k, v := range vars {
			req.Variables[k] = v
		}
		req.OperationName = o.op.Name
	} else {
		b.Operation(o.kind, "", nil).Query(o.op.Name, "", nil)
	}
	req.Query = b.Fields(sel).Generate()

	if o.client.settings.CheckSyntax {
		if err := language.CheckSyntax(req.Query, o.kind); err != nil {
			return transport.Request{}, fmt.Errorf("client: %s %s: %w", o.kind, o.op.Name, err)
		}
	}
	return req, nil
}

func (o *operation) send(ctx context.Context, req transport.Request) (*transport.Response, error) {
	ctx, _ = reqid.Renew(ctx)
	start := time.Now()
	eventbus.Publish(ctx, events.OperationStart{
		Query:         req.Query,
		OperationName: o.op.Name,
		OperationType: string(o.kind),
		Variables:     len(req.Variables),
	})
	resp, err := o.client.transport.Post(ctx, o.client.endpoint, req)
	var gqlErrs []error
	if resp != nil {
		for _, e := range resp.Errors {
			gqlErrs = append(gqlErrs, e)
		}
	}
	eventbus.Publish(ctx, events.OperationFinish{
		Query:         req.Query,
		OperationName: o.op.Name,
		OperationType: string(o.kind),
		Errors:        gqlErrs,
		Err:           err,
		Duration:      time.Since(start),
	})
	return resp, err
}

// QueryOperation calls one root query field.
type QueryOperation struct {
	operation
}

// Build returns the request Call would send.
//
// A nil sel is replaced by the default selection of the return type. When
// none can be discovered the query is built without a selection if the
// return type is a scalar or enum, and fails with ErrMissingSelection
// otherwise. A non-nil where declares one variable per key.
func (q *QueryOperation) Build(sel []selection.SelectionField, where Vars) (transport.Request, error) {
	if sel == nil {
		settings := q.client.settings
		types := q.client.schema.Types
		if !settings.DisableSelectionLookup {
			sel = selection.DiscoverOrNil(q.op.ReturnType.BaseName(), types, settings.MaxRecursionDepth)
		}
		if sel == nil && !schema.IsLeaf(q.op.ReturnType, types) {
			return transport.Request{}, fmt.Errorf("%w: query %s returns %s", ErrMissingSelection, q.op.Name, q.op.ReturnType)
		}
	}
	return q.request(sel, where)
}

// Call builds the query and posts it. Transport errors are returned as is.
func (q *QueryOperation) Call(ctx context.Context, sel []selection.SelectionField, where Vars) (*transport.Response, error) {
	req, err := q.Build(sel, where)
	if err != nil {
		return nil, err
	}
	return q.send(ctx, req)
}

// Go is Call without waiting for the response. Build errors resolve the
// handle immediately.
func (q *QueryOperation) Go(ctx context.Context, sel []selection.SelectionField, where Vars) *transport.Pending {
	req, err := q.Build(sel, where)
	if err != nil {
		return transport.Resolved(nil, err)
	}
	return transport.Defer(ctx, func(ctx context.Context) (*transport.Response, error) {
		return q.send(ctx, req)
	})
}

// MutationOperation calls one root mutation field.
type MutationOperation struct {
	operation
}

// Build returns the request Call would send. data is required; a nil sel
// selects nothing, since mutations never discover a default selection.
func (m *MutationOperation) Build(sel []selection.SelectionField, data Vars) (transport.Request, error) {
	if data == nil {
		return transport.Request{}, fmt.Errorf("%w: mutation %s", ErrMissingData, m.op.Name)
	}
	return m.request(sel, data)
}

// Call builds the mutation and posts it. Transport errors are returned as is.
func (m *MutationOperation) Call(ctx context.Context, sel []selection.SelectionField, data Vars) (*transport.Response, error) {
	req, err := m.Build(sel, data)
	if err != nil {
		return nil, err
	}
	return m.send(ctx, req)
}

// Go is Call without waiting for the response.
func (m *MutationOperation) Go(ctx context.Context, sel []selection.SelectionField, data Vars) *transport.Pending {
	req, err := m.Build(sel, data)
	if err != nil {
		return transport.Resolved(nil, err)
	}
	return transport.Defer(ctx, func(ctx context.Context) (*transport.Response, error) {
		return m.send(ctx, req)
	})
}
