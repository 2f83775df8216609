package events

import "time"

// HTTPRequestStart is emitted before the transport sends a request.
// RequestID is unique per request; the operation ID travels on the context.
type HTTPRequestStart struct {
	RequestID     int64
	Endpoint      string
	OperationName string
}

// HTTPRequestFinish is emitted after the transport returns, successful or not.
// Status is 0 when no response was received.
type HTTPRequestFinish struct {
	RequestID     int64
	Endpoint      string
	OperationName string
	Status        int
	Err           error
	Duration      time.Duration
}
