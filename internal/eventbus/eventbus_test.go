package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ n int }
type pong struct{}

func TestEmitDispatchesByType(t *testing.T) {
	b := New()
	var pings []int
	var pongs int
	On(b, func(_ context.Context, p ping) { pings = append(pings, p.n) })
	On(b, func(_ context.Context, _ pong) { pongs++ })

	Emit(context.Background(), b, ping{n: 1})
	Emit(context.Background(), b, ping{n: 2})
	Emit(context.Background(), b, pong{})

	require.Equal(t, []int{1, 2}, pings)
	require.Equal(t, 1, pongs)
}

func TestUnsubscribeRemovesOnlyThatHandler(t *testing.T) {
	b := New()
	var a, c int
	unsubA := On(b, func(context.Context, ping) { a++ })
	On(b, func(context.Context, ping) { c++ })

	Emit(context.Background(), b, ping{})
	unsubA()
	unsubA()
	Emit(context.Background(), b, ping{})

	require.Equal(t, 1, a)
	require.Equal(t, 2, c)
}

func TestGlobalBus(t *testing.T) {
	t.Cleanup(func() { Use(nil) })

	Use(nil)
	called := false
	Subscribe(func(context.Context, ping) { called = true })
	Publish(context.Background(), ping{})
	require.False(t, called, "no bus installed")

	Use(New())
	unsub := Subscribe(func(context.Context, ping) { called = true })
	defer unsub()
	Publish(context.Background(), ping{})
	require.True(t, called)
}

func TestNilBus(t *testing.T) {
	var b *Bus
	unsub := On(b, func(context.Context, ping) {})
	unsub()
	Emit(context.Background(), b, ping{})
}
