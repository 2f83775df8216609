package events

import "time"

// OperationStart is emitted once a query or mutation string has been built
// and is about to be handed to the transport.
type OperationStart struct {
	Query         string
	OperationName string
	OperationType string
	Variables     int
}

// OperationFinish is emitted after the transport call for an operation.
// Errors holds GraphQL errors from the response payload.
type OperationFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Err           error
	Duration      time.Duration
}

// IntrospectionFinish is emitted after an introspection fetch.
type IntrospectionFinish struct {
	Endpoint string
	Bytes    int
	Err      error
	Duration time.Duration
}
