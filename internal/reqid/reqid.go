package reqid

import (
	"context"
	"math/rand/v2"
)

// key is the context key for the operation ID.
type key struct{}

// NewContext returns a copy of parent carrying a new random operation ID.
// An ID already present in parent is kept so nested calls share it.
func NewContext(parent context.Context) (context.Context, int64) {
	if id, ok := FromContext(parent); ok {
		return parent, id
	}
	id := New()
	return context.WithValue(parent, key{}, id), id
}

// Renew returns a copy of parent carrying a new operation ID, replacing any
// ID already present. Concurrent operations started from one context each
// call Renew so their events stay apart.
func Renew(parent context.Context) (context.Context, int64) {
	id := New()
	return context.WithValue(parent, key{}, id), id
}

// New returns a random ID without attaching it to a context.
func New() int64 { return rand.Int64() }

// FromContext extracts the operation ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(key{})
	id, ok := v.(int64)
	return id, ok
}
