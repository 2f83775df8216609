package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	eventbus "github.com/hanpama/graphy/internal/eventbus"
	events "github.com/hanpama/graphy/internal/events"
	reqid "github.com/hanpama/graphy/internal/reqid"
)

// HTTP posts GraphQL requests as JSON. It applies a default timeout when the
// caller's context carries no deadline and never retries.
type HTTP struct {
	opts *Options
}

func New(opts ...Option) *HTTP {
	o := defaultOptions()
	for _, f := range opts {
		f(o)
	}
	if o.Client == nil {
		o.Client = &http.Client{}
	}
	if o.ResponseKey == "" {
		o.ResponseKey = "data"
	}
	return &HTTP{opts: o}
}

var _ Transport = (*HTTP)(nil)

func (t *HTTP) Post(ctx context.Context, endpoint string, req Request) (resp *Response, err error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}
	if _, ok := ctx.Deadline(); !ok && t.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.Timeout)
		defer cancel()
	}
	if req.Variables == nil {
		req.Variables = map[string]any{}
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("transport: encode request: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	for k, vs := range t.opts.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("Content-Type", "application/json")
	if hreq.Header.Get("Accept") == "" {
		hreq.Header.Set("Accept", "application/json")
	}
	if t.opts.UserAgent != "" {
		hreq.Header.Set("User-Agent", t.opts.UserAgent)
	}

	ctx, _ = reqid.NewContext(ctx)
	requestID := reqid.New()
	status := 0
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPRequestStart{RequestID: requestID, Endpoint: endpoint, OperationName: req.OperationName})
	defer func() {
		eventbus.Publish(ctx, events.HTTPRequestFinish{
			RequestID:     requestID,
			Endpoint:      endpoint,
			OperationName: req.OperationName,
			Status:        status,
			Err:           err,
			Duration:      time.Since(start),
		})
	}()

	hresp, err := t.opts.Client.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer hresp.Body.Close()
	status = hresp.StatusCode

	body, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read body: %w", err)
	}
	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err = &StatusError{StatusCode: hresp.StatusCode, Body: body}
		return nil, err
	}

	resp = &Response{StatusCode: hresp.StatusCode, Header: hresp.Header, Body: body}
	if t.opts.RawResponse {
		return resp, nil
	}
	data, errs, perr := parse(body, t.opts.ResponseKey)
	if perr != nil {
		err = fmt.Errorf("transport: decode response: %w", perr)
		return nil, err
	}
	resp.Parsed = true
	resp.Data = data
	resp.Errors = errs
	return resp, nil
}
