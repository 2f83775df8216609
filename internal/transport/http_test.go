package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	eventbus "github.com/hanpama/graphy/internal/eventbus"
	events "github.com/hanpama/graphy/internal/events"
)

func TestHTTPPost(t *testing.T) {
	type captured struct {
		method string
		header http.Header
		body   map[string]any
	}
	seen := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{method: r.Method, header: r.Header.Clone()}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &c.body)
		seen <- c
		_, _ = w.Write([]byte(`{"data":{"hello":"world"},"errors":null}`))
	}))
	defer srv.Close()

	tr := New(WithUserAgent("graphy/1.2.3"), WithHeader("Authorization", "Bearer t"))
	resp, err := tr.Post(context.Background(), srv.URL, Request{Query: "query { hello }", OperationName: ""})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, resp.Parsed)
	require.JSONEq(t, `{"hello":"world"}`, string(resp.Data))
	require.Empty(t, resp.Errors)

	var out struct {
		Hello string `json:"hello"`
	}
	require.NoError(t, resp.Decode(&out))
	require.Equal(t, "world", out.Hello)

	got := <-seen
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "application/json", got.header.Get("Content-Type"))
	require.Equal(t, "graphy/1.2.3", got.header.Get("User-Agent"))
	require.Equal(t, "Bearer t", got.header.Get("Authorization"))
	require.Equal(t, map[string]any{"query": "query { hello }", "variables": map[string]any{}, "operationName": ""}, got.body)
}

func TestHTTPPostErrorsAndResponseKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"n":1},"errors":[{"message":"careful","path":["n"]}]}`))
	}))
	defer srv.Close()

	resp, err := New(WithResponseKey("result")).Post(context.Background(), srv.URL, Request{Query: "{ n }"})
	require.NoError(t, err)
	require.JSONEq(t, `{"n":1}`, string(resp.Data))
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "careful", resp.Errors[0].Message)
}

func TestHTTPRawResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	resp, err := New(WithRawResponse(true)).Post(context.Background(), srv.URL, Request{Query: "{ a }"})
	require.NoError(t, err)
	require.False(t, resp.Parsed)
	require.Equal(t, "not json", string(resp.Body))
	require.NoError(t, resp.Decode(&struct{}{}))

	_, err = New().Post(context.Background(), srv.URL, Request{Query: "{ a }"})
	require.ErrorContains(t, err, "decode response")
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream down`))
	}))
	defer srv.Close()

	_, err := New().Post(context.Background(), srv.URL, Request{Query: "{ a }"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	require.Equal(t, "upstream down", string(statusErr.Body))
	require.Contains(t, err.Error(), "502 Bad Gateway")
}

func TestHTTPEmptyEndpoint(t *testing.T) {
	_, err := New().Post(context.Background(), "", Request{})
	require.ErrorIs(t, err, ErrEmptyEndpoint)
}

func TestHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(WithTimeout(20*time.Millisecond)).Post(context.Background(), srv.URL, Request{Query: "{ a }"})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New().Post(ctx, srv.URL, Request{Query: "{ a }"})
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPEvents(t *testing.T) {
	bus := eventbus.New()
	eventbus.Use(bus)
	t.Cleanup(func() { eventbus.Use(nil) })

	var starts []events.HTTPRequestStart
	var finishes []events.HTTPRequestFinish
	eventbus.On(bus, func(_ context.Context, e events.HTTPRequestStart) { starts = append(starts, e) })
	eventbus.On(bus, func(_ context.Context, e events.HTTPRequestFinish) { finishes = append(finishes, e) })

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New().Post(context.Background(), srv.URL, Request{Query: "{ a }", OperationName: "A"})
	require.Error(t, err)

	require.Len(t, starts, 1)
	require.Equal(t, "A", starts[0].OperationName)
	require.Len(t, finishes, 1)
	require.Equal(t, http.StatusInternalServerError, finishes[0].Status)
	var statusErr *StatusError
	require.True(t, errors.As(finishes[0].Err, &statusErr))
	require.Equal(t, starts[0].RequestID, finishes[0].RequestID)

	_, _ = New().Post(context.Background(), srv.URL, Request{Query: "{ a }"})
	require.Len(t, starts, 2)
	require.NotEqual(t, starts[0].RequestID, starts[1].RequestID)
}
