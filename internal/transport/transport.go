package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Transport sends one GraphQL request to an endpoint.
// Implementations MUST be safe for concurrent use.
//
// Provided implementations:
// - HTTP: JSON over net/http
// - MockTransport: recorded requests and queued responses for tests
type Transport interface {
	Post(ctx context.Context, endpoint string, req Request) (*Response, error)
}

// Request is the wire payload POSTed to the endpoint.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Response holds the transport result. Body is always the raw bytes.
// Data and Errors are populated only when Parsed is true; a transport
// configured for raw responses leaves them empty.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	Parsed bool
	Data   json.RawMessage
	Errors gqlerror.List
}

// Decode unmarshals Data into v. A nil Data leaves v untouched.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// parse splits a GraphQL response body into the member named by key and
// the errors list.
func parse(body []byte, key string) (json.RawMessage, gqlerror.List, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, nil, err
	}
	var errs gqlerror.List
	if raw, ok := envelope["errors"]; ok && len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &errs); err != nil {
			return nil, nil, err
		}
	}
	return envelope[key], errs, nil
}
