package transport

import "context"

// Pending is a deferred transport result. It is returned immediately and
// resolves once the underlying Post returns.
type Pending struct {
	done chan struct{}
	resp *Response
	err  error
}

// Defer starts fn in its own goroutine and returns a handle to its result.
func Defer(ctx context.Context, fn func(context.Context) (*Response, error)) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.resp, p.err = fn(ctx)
	}()
	return p
}

// DeferPost is Defer for a single Post on t.
func DeferPost(ctx context.Context, t Transport, endpoint string, req Request) *Pending {
	return Defer(ctx, func(ctx context.Context) (*Response, error) {
		return t.Post(ctx, endpoint, req)
	})
}

// Resolved returns a Pending that is already settled. It is used when a
// request fails before any I/O.
func Resolved(resp *Response, err error) *Pending {
	p := &Pending{done: make(chan struct{}), resp: resp, err: err}
	close(p.done)
	return p
}

// Done is closed once the result is available.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the result is available.
func (p *Pending) Wait() (*Response, error) {
	<-p.done
	return p.resp, p.err
}

// Await is Wait bounded by ctx. Cancelling ctx does not stop the request.
func (p *Pending) Await(ctx context.Context) (*Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
