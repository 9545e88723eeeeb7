package networking

import (
	"context"

	"github.com/atomic-arch/ghusers/pkg/httpclient"
)

// Transport sends one request and returns the raw body with response metadata.
// A nil Response with a nil error is reported as an invalid response.
type Transport interface {
	Send(ctx context.Context, req Request) ([]byte, *Response, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req Request) ([]byte, *Response, error)

func (f TransportFunc) Send(ctx context.Context, req Request) ([]byte, *Response, error) {
	return f(ctx, req)
}

// HTTPTransport sends requests through an httpclient.Client.
type HTTPTransport struct {
	client httpclient.Client
}

// NewHTTPTransport wraps client.
func NewHTTPTransport(client httpclient.Client) *HTTPTransport {
	return &HTTPTransport{client: client}
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) ([]byte, *Response, error) {
	resp, err := t.client.Do(ctx, string(req.Method), req.URL, req.Header, req.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp == nil {
		return nil, nil, nil
	}
	return resp.Body(), &Response{StatusCode: resp.StatusCode(), Header: resp.Header()}, nil
}
