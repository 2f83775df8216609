package transport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeferPost(t *testing.T) {
	mock := NewMockTransport(`{"data":{"ok":true}}`)
	p := DeferPost(context.Background(), mock, "http://x", Request{Query: "{ ok }"})

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("pending never resolved")
	}
	resp, err := p.Wait()
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(resp.Data))
	require.Len(t, mock.Calls(), 1)
}

func TestDeferReturnsErrors(t *testing.T) {
	boom := errors.New("boom")
	p := Defer(context.Background(), func(context.Context) (*Response, error) { return nil, boom })
	_, err := p.Wait()
	require.Equal(t, boom, err)
}

func TestResolved(t *testing.T) {
	boom := errors.New("boom")
	p := Resolved(nil, boom)
	select {
	case <-p.Done():
	default:
		t.Fatal("resolved handle must be done")
	}
	_, err := p.Await(context.Background())
	require.Equal(t, boom, err)
}

func TestAwaitContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	p := Defer(context.Background(), func(context.Context) (*Response, error) {
		<-block
		return &Response{}, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := p.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockTransport(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockTransportWithErrors([]string{`{"data":1}`, `{"data":2}`}, []error{nil, boom})

	vars := map[string]any{"a": 1}
	resp, err := mock.Post(context.Background(), "e", Request{Query: "q", Variables: vars})
	require.NoError(t, err)
	require.Equal(t, "1", string(resp.Data))
	vars["a"] = 2

	_, err = mock.Post(context.Background(), "e", Request{})
	require.Equal(t, boom, err)

	_, err = mock.Post(context.Background(), "e", Request{})
	require.ErrorContains(t, err, "no more responses")

	calls := mock.Calls()
	require.Len(t, calls, 3)
	require.Equal(t, 1, calls[0].Request.Variables["a"], "variables are copied")
}
