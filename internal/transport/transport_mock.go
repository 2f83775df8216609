package transport

import (
	"context"
	"fmt"
	"sync"
)

// CallRecord captures a single Post invocation for assertions.
type CallRecord struct {
	Endpoint string
	Request  Request
}

// MockTransport implements Transport and returns pre-seeded bodies in order,
// while recording Post invocations for inspection.
type MockTransport struct {
	mu     sync.Mutex
	bodies []string
	errs   []error
	idx    int
	calls  []CallRecord
}

// NewMockTransport creates a MockTransport that returns the provided JSON
// bodies in order for successive Post() invocations.
func NewMockTransport(bodies ...string) *MockTransport {
	cp := make([]string, len(bodies))
	copy(cp, bodies)
	return &MockTransport{bodies: cp}
}

// NewMockTransportWithErrors allows seeding per-call errors alongside bodies.
// For call i, if errs[i] is non-nil, Post returns that error.
func NewMockTransportWithErrors(bodies []string, errs []error) *MockTransport {
	m := NewMockTransport(bodies...)
	m.errs = append([]error(nil), errs...)
	return m
}

// Post records the invocation and returns the next queued body, parsed the
// same way the HTTP transport parses with default options.
func (m *MockTransport) Post(ctx context.Context, endpoint string, req Request) (*Response, error) {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	vars := make(map[string]any, len(req.Variables))
	for k, v := range req.Variables {
		vars[k] = v
	}
	req.Variables = vars
	m.calls = append(m.calls, CallRecord{Endpoint: endpoint, Request: req})

	if m.idx >= len(m.bodies) && m.idx >= len(m.errs) {
		return nil, fmt.Errorf("mock transport: no more responses")
	}
	if m.idx < len(m.errs) {
		if err := m.errs[m.idx]; err != nil {
			m.idx++
			return nil, err
		}
	}
	body := `{"data":null}`
	if m.idx < len(m.bodies) {
		body = m.bodies[m.idx]
	}
	m.idx++

	resp := &Response{StatusCode: 200, Body: []byte(body)}
	data, errs, err := parse(resp.Body, "data")
	if err != nil {
		return nil, err
	}
	resp.Parsed = true
	resp.Data = data
	resp.Errors = errs
	return resp, nil
}

// Calls returns a snapshot of recorded Post invocations.
func (m *MockTransport) Calls() []CallRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CallRecord, len(m.calls))
	copy(out, m.calls)
	return out
}
