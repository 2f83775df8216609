package client

import "errors"

var (
	// ErrMissingEndpoint indicates New was called without an endpoint.
	ErrMissingEndpoint = errors.New("client: no endpoint specified")
	// ErrUnsupportedOperation indicates the schema has no root field of that name.
	ErrUnsupportedOperation = errors.New("client: unsupported operation")
	// ErrUnsupportedArgument indicates a variable the operation does not declare.
	ErrUnsupportedArgument = errors.New("client: unsupported argument")
	// ErrMissingSelection indicates no selection was given and none could be discovered.
	ErrMissingSelection = errors.New("client: missing selection")
	// ErrMissingData indicates a mutation was called without data.
	ErrMissingData = errors.New("client: no data specified")
	// ErrSubscriptionUnsupported is returned for any subscription access.
	ErrSubscriptionUnsupported = errors.New("client: subscriptions are not supported")
)
