package client

import (
	"log/slog"

	"github.com/hanpama/graphy/internal/schema"
	"github.com/hanpama/graphy/internal/selection"
	"github.com/hanpama/graphy/internal/transport"
)

// Settings tunes how operations are built and how the default transport
// reports results.
//
// Defaults:
// - MaxRecursionDepth: 2
// - ResponseKey:       "data"
type Settings struct {
	// MaxRecursionDepth bounds default selection discovery.
	MaxRecursionDepth int
	// ResponseKey is the member of the response body copied into
	// transport.Response.Data.
	ResponseKey string
	// ReturnRawResponse leaves the response body undecoded.
	ReturnRawResponse bool
	// DisableSelectionLookup turns off default selection discovery.
	DisableSelectionLookup bool
	// CheckSyntax parses every generated document before it is sent.
	CheckSyntax bool
}

func DefaultSettings() Settings {
	return Settings{
		MaxRecursionDepth: selection.DefaultMaxDepth,
		ResponseKey:       "data",
	}
}

// Options configures a Client.
type Options struct {
	Settings Settings

	// Transport replaces the default HTTP transport. ResponseKey and
	// ReturnRawResponse are then up to the transport.
	Transport        transport.Transport
	TransportOptions []transport.Option

	// Schema skips introspection of the endpoint.
	Schema *schema.Schema

	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{Settings: DefaultSettings()}
}

func WithSettings(s Settings) Option             { return func(o *Options) { o.Settings = s } }
func WithTransport(t transport.Transport) Option { return func(o *Options) { o.Transport = t } }
func WithSchema(s *schema.Schema) Option         { return func(o *Options) { o.Schema = s } }
func WithLogger(l *slog.Logger) Option           { return func(o *Options) { o.Logger = l } }

// WithTransportOptions configures the default HTTP transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *Options) { o.TransportOptions = append(o.TransportOptions, opts...) }
}
