package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	eventbus "github.com/hanpama/graphy/internal/eventbus"
	events "github.com/hanpama/graphy/internal/events"
	reqid "github.com/hanpama/graphy/internal/reqid"
	"github.com/hanpama/graphy/internal/transport"
)

func TestOperationEvents(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var (
		starts   []events.OperationStart
		finishes []events.OperationFinish
		ids      []int64
	)
	eventbus.On(bus, func(ctx context.Context, e events.OperationStart) {
		starts = append(starts, e)
		id, ok := reqid.FromContext(ctx)
		require.True(t, ok)
		ids = append(ids, id)
	})
	eventbus.On(bus, func(ctx context.Context, e events.OperationFinish) {
		finishes = append(finishes, e)
		id, _ := reqid.FromContext(ctx)
		ids = append(ids, id)
	})

	mock := transport.NewMockTransport(`{"data":null,"errors":[{"message":"denied"}]}`)
	c := newTestClient(t, mock)
	op, err := c.Mutation().Get("deleteUser")
	require.NoError(t, err)
	_, err = op.Call(context.Background(), nil, Vars{"id": "1"})
	require.NoError(t, err)

	require.Len(t, starts, 1)
	require.Equal(t, "deleteUser", starts[0].OperationName)
	require.Equal(t, "mutation", starts[0].OperationType)
	require.Equal(t, 1, starts[0].Variables)

	require.Len(t, finishes, 1)
	require.Len(t, finishes[0].Errors, 1)
	require.ErrorContains(t, finishes[0].Errors[0], "denied")
	require.NoError(t, finishes[0].Err)

	require.Len(t, ids, 2)
	require.Equal(t, ids[0], ids[1], "start and finish share the operation id")
}

func TestConcurrentOperationsGetDistinctIDs(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var (
		mu     sync.Mutex
		starts = map[int64]string{}
	)
	eventbus.On(bus, func(ctx context.Context, e events.OperationStart) {
		id, _ := reqid.FromContext(ctx)
		mu.Lock()
		defer mu.Unlock()
		starts[id] = e.OperationName
	})

	mock := transport.NewMockTransport(`{"data":{"hello":"a"}}`, `{"data":{"hello":"b"}}`)
	c := newTestClient(t, mock)
	op, err := c.Query().Get("hello")
	require.NoError(t, err)

	shared, parent := reqid.NewContext(context.Background())
	first := op.Go(shared, nil, nil)
	second := op.Go(shared, nil, nil)
	_, err = first.Wait()
	require.NoError(t, err)
	_, err = second.Wait()
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, starts, 2)
	require.NotContains(t, starts, parent)
}
