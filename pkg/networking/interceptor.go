package networking

import "sync"

// Interceptor observes and rewrites traffic around every request.
//
// InterceptRequest returns the request the next interceptor (and finally the
// transport) will see. InterceptResponse is observation only; resp and body
// are nil when the transport failed. Implementations must not panic.
type Interceptor interface {
	InterceptRequest(req Request) Request
	InterceptResponse(resp *Response, body []byte, err error)
}

// Chain runs interceptors in registration order. It is append-only.
type Chain struct {
	mu           sync.RWMutex
	interceptors []Interceptor
}

// NewChain returns a chain seeded with interceptors, skipping nils.
func NewChain(interceptors ...Interceptor) *Chain {
	c := &Chain{}
	for _, i := range interceptors {
		c.Add(i)
	}
	return c
}

// Add appends an interceptor. Passes already in flight keep their snapshot.
func (c *Chain) Add(i Interceptor) {
	if i == nil {
		return
	}
	c.mu.Lock()
	c.interceptors = append(c.interceptors, i)
	c.mu.Unlock()
}

// Len reports the number of registered interceptors.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.interceptors)
}

func (c *Chain) snapshot() []Interceptor {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.interceptors[:len(c.interceptors):len(c.interceptors)]
}

// InterceptRequest folds req through every interceptor in order.
func (c *Chain) InterceptRequest(req Request) Request {
	for _, i := range c.snapshot() {
		req = i.InterceptRequest(req.Clone())
	}
	return req
}

// InterceptResponse hands the outcome to every interceptor in order.
func (c *Chain) InterceptResponse(resp *Response, body []byte, err error) {
	for _, i := range c.snapshot() {
		i.InterceptResponse(resp, body, err)
	}
}
