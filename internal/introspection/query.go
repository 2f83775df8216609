package introspection

import (
	"context"
	"fmt"
	"time"

	eventbus "github.com/hanpama/graphy/internal/eventbus"
	events "github.com/hanpama/graphy/internal/events"
	transport "github.com/hanpama/graphy/internal/transport"
)

// OperationName is the operation name sent with Query.
const OperationName = "IntrospectionQuery"

// Query is the standard introspection query. TypeRef nests seven levels of
// ofType, which covers any realistic chain such as [[T!]!]!.
const Query = `
query IntrospectionQuery {
	__schema {
		queryType { name }
		mutationType { name }
		subscriptionType { name }
		types {
			...FullType
		}
		directives {
			name
			description
			locations
			args {
				...InputValue
			}
		}
	}
}

fragment FullType on __Type {
	kind
	name
	description
	fields(includeDeprecated: true) {
		name
		description
		args {
			...InputValue
		}
		type {
			...TypeRef
		}
		isDeprecated
		deprecationReason
	}
	inputFields {
		...InputValue
	}
	interfaces {
		...TypeRef
	}
	enumValues(includeDeprecated: true) {
		name
		description
		isDeprecated
		deprecationReason
	}
	possibleTypes {
		...TypeRef
	}
}

fragment InputValue on __InputValue {
	name
	description
	type { ...TypeRef }
	defaultValue
}

fragment TypeRef on __Type {
	kind
	name
	ofType {
		kind
		name
		ofType {
			kind
			name
			ofType {
				kind
				name
				ofType {
					kind
					name
					ofType {
						kind
						name
						ofType {
							kind
							name
							ofType {
								kind
								name
							}
						}
					}
				}
			}
		}
	}
}
`

// Fetch posts the introspection query to endpoint and returns the raw
// response body. A parsed response carrying only errors is a failure.
func Fetch(ctx context.Context, t transport.Transport, endpoint string) ([]byte, error) {
	start := time.Now()
	resp, err := t.Post(ctx, endpoint, transport.Request{
		Query:         Query,
		Variables:     map[string]any{},
		OperationName: OperationName,
	})
	if err == nil && resp.Parsed && len(resp.Errors) > 0 && isNull(resp.Data) {
		err = resp.Errors
	}
	if err != nil {
		eventbus.Publish(ctx, events.IntrospectionFinish{Endpoint: endpoint, Err: err, Duration: time.Since(start)})
		return nil, fmt.Errorf("introspection: fetch %s: %w", endpoint, err)
	}
	eventbus.Publish(ctx, events.IntrospectionFinish{Endpoint: endpoint, Bytes: len(resp.Body), Duration: time.Since(start)})
	return resp.Body, nil
}

func isNull(raw []byte) bool { return len(raw) == 0 || string(raw) == "null" }
