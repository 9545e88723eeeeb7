package networking

import "strings"

// HeaderInterceptor sets a fixed set of headers on every request,
// overriding values already present.
type HeaderInterceptor struct {
	headers map[string]string
}

// NewHeaderInterceptor copies headers, dropping blank keys and values.
func NewHeaderInterceptor(headers map[string]string) *HeaderInterceptor {
	cp := make(map[string]string, len(headers))
	for k, v := range headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		cp[k] = v
	}
	return &HeaderInterceptor{headers: cp}
}

// BearerToken injects "Authorization: Bearer <token>". A blank token yields
// an interceptor that leaves requests untouched.
func BearerToken(token string) *HeaderInterceptor {
	token = strings.TrimSpace(token)
	if token == "" {
		return NewHeaderInterceptor(nil)
	}
	return NewHeaderInterceptor(map[string]string{"Authorization": "Bearer " + token})
}

func (h *HeaderInterceptor) InterceptRequest(req Request) Request {
	for k, v := range h.headers {
		req = req.WithHeader(k, v)
	}
	return req
}

func (*HeaderInterceptor) InterceptResponse(*Response, []byte, error) {}
