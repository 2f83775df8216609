package transport

import (
	"net/http"
	"time"
)

// Options configures the HTTP transport behavior.
//
// Defaults:
// - Client:      a dedicated http.Client
// - Timeout:     0 (only applied if the incoming context has no deadline)
// - ResponseKey: "data"
// - UserAgent:   "graphy"
//
// All options are safe to leave zero-valued to use defaults.
type Options struct {
	Client *http.Client

	Timeout     time.Duration
	Header      http.Header
	UserAgent   string
	ResponseKey string

	// RawResponse skips decoding of the GraphQL envelope.
	RawResponse bool
}

// Option mutates Options.
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Client:      &http.Client{},
		Header:      http.Header{},
		UserAgent:   "graphy",
		ResponseKey: "data",
	}
}

func WithHTTPClient(c *http.Client) Option { return func(o *Options) { o.Client = c } }
func WithTimeout(d time.Duration) Option   { return func(o *Options) { o.Timeout = d } }
func WithUserAgent(ua string) Option       { return func(o *Options) { o.UserAgent = ua } }
func WithRawResponse(raw bool) Option      { return func(o *Options) { o.RawResponse = raw } }
func WithResponseKey(key string) Option    { return func(o *Options) { o.ResponseKey = key } }
func WithHeader(name, value string) Option { return func(o *Options) { o.Header.Add(name, value) } }
