package networking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// Service is the surface the rest of the application depends on.
type Service interface {
	Do(ctx context.Context, target Target) (*Result, error)
}

// Result is a validated 2xx response.
type Result struct {
	Response *Response
	Body     []byte
}

// ConnectivityChecker reports whether a network path is currently available.
type ConnectivityChecker interface {
	IsConnected() bool
}

// Client builds requests from Targets, runs them through the interceptor
// chain and a Transport, and validates the outcome. It is safe for concurrent use.
type Client struct {
	cfg          Configuration
	transport    Transport
	chain        *Chain
	connectivity ConnectivityChecker
}

// Option customises a Client.
type Option func(*Client)

// WithChain sets the interceptor chain.
func WithChain(chain *Chain) Option {
	return func(c *Client) { c.chain = chain }
}

// WithConnectivity fails requests fast with ErrNoConnection while checker
// reports no network path.
func WithConnectivity(checker ConnectivityChecker) Option {
	return func(c *Client) { c.connectivity = checker }
}

// NewClient returns a Client; cfg is copied and never changes afterwards.
func NewClient(cfg Configuration, transport Transport, opts ...Option) *Client {
	headers := make(map[string]string, len(cfg.DefaultHeaders))
	for k, v := range cfg.DefaultHeaders {
		headers[k] = v
	}
	cfg.DefaultHeaders = headers

	c := &Client{cfg: cfg, transport: transport}
	for _, opt := range opts {
		opt(c)
	}
	if c.chain == nil {
		c.chain = NewChain()
	}
	return c
}

// Chain exposes the interceptor chain so interceptors can be added after construction.
func (c *Client) Chain() *Chain { return c.chain }

// Configuration returns the client's configuration.
func (c *Client) Configuration() Configuration { return c.cfg }

// Do performs exactly one transport call for target.
func (c *Client) Do(ctx context.Context, target Target) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := BuildRequest(c.cfg, target)
	if err != nil {
		return nil, err
	}

	req = c.chain.InterceptRequest(req)

	if c.connectivity != nil && !c.connectivity.IsConnected() {
		netErr := &Error{Kind: KindNoConnection}
		c.chain.InterceptResponse(nil, nil, netErr)
		return nil, netErr
	}

	body, resp, err := c.transport.Send(ctx, req)
	if err != nil {
		netErr := mapTransportError(ctx, err)
		c.chain.InterceptResponse(nil, nil, netErr)
		return nil, netErr
	}
	if resp == nil {
		netErr := &Error{Kind: KindInvalidResponse}
		c.chain.InterceptResponse(nil, body, netErr)
		return nil, netErr
	}

	c.chain.InterceptResponse(resp, body, nil)

	if err := validateStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return &Result{Response: resp, Body: body}, nil
}

func validateStatus(code int, body []byte) error {
	switch {
	case code >= 200 && code <= 299:
		return nil
	case code == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, StatusCode: code, Body: body}
	default:
		return HTTPError(code, body)
	}
}

// Fetch runs target through svc and decodes the JSON body into T.
func Fetch[T any](ctx context.Context, svc Service, target Target) (T, error) {
	var out T
	if svc == nil {
		return out, &Error{Kind: KindUnknown, Err: errors.New("nil networking service")}
	}
	res, err := svc.Do(ctx, target)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return out, &Error{Kind: KindDecoding, Err: err}
	}
	return out, nil
}

// Raw runs target through svc and returns the undecoded body.
func Raw(ctx context.Context, svc Service, target Target) ([]byte, error) {
	if svc == nil {
		return nil, &Error{Kind: KindUnknown, Err: errors.New("nil networking service")}
	}
	res, err := svc.Do(ctx, target)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}
