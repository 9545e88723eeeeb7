package networking

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorKind classifies a networking failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidURL
	KindInvalidResponse
	KindHTTP
	KindDecoding
	KindNetwork
	KindUnauthorized
	KindTimeout
	KindCancelled
	KindSSLPinningFailed
	KindNoConnection
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindInvalidResponse:
		return "invalid_response"
	case KindHTTP:
		return "http_error"
	case KindDecoding:
		return "decoding_error"
	case KindNetwork:
		return "network_error"
	case KindUnauthorized:
		return "unauthorized"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	case KindSSLPinningFailed:
		return "ssl_pinning_failed"
	case KindNoConnection:
		return "no_connection"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by Client. StatusCode and Body are set
// for KindHTTP and KindUnauthorized; Err carries the underlying cause.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Body       []byte
	Err        error
}

// Sentinels for errors.Is. ErrHTTP matches any status code.
var (
	ErrInvalidURL       = &Error{Kind: KindInvalidURL}
	ErrInvalidResponse  = &Error{Kind: KindInvalidResponse}
	ErrHTTP             = &Error{Kind: KindHTTP}
	ErrDecoding         = &Error{Kind: KindDecoding}
	ErrNetwork          = &Error{Kind: KindNetwork}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrTimeout          = &Error{Kind: KindTimeout}
	ErrCancelled        = &Error{Kind: KindCancelled}
	ErrSSLPinningFailed = &Error{Kind: KindSSLPinningFailed}
	ErrNoConnection     = &Error{Kind: KindNoConnection}
	ErrUnknown          = &Error{Kind: KindUnknown}
)

// HTTPError builds a KindHTTP error; as an errors.Is target it matches the status code only.
func HTTPError(statusCode int, body []byte) *Error {
	return &Error{Kind: KindHTTP, StatusCode: statusCode, Body: body}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		if e.Err != nil {
			return "invalid URL: " + e.Err.Error()
		}
		return "invalid URL"
	case KindInvalidResponse:
		return "invalid response from server"
	case KindHTTP:
		return fmt.Sprintf("HTTP error with status code: %d", e.StatusCode)
	case KindDecoding:
		return "failed to decode response: " + errString(e.Err)
	case KindNetwork:
		return "network error: " + errString(e.Err)
	case KindUnauthorized:
		return "unauthorized access"
	case KindTimeout:
		return "request timed out"
	case KindCancelled:
		return "request was cancelled"
	case KindSSLPinningFailed:
		return "SSL certificate validation failed"
	case KindNoConnection:
		return "no internet connection available"
	default:
		if e.Err != nil {
			return "unknown error occurred: " + e.Err.Error()
		}
		return "unknown error occurred"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is compares by kind, plus status code for HTTP targets that carry one.
// Wrapped causes never take part in the comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	if e.Kind == KindHTTP && t.StatusCode != 0 {
		return e.StatusCode == t.StatusCode
	}
	return true
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) ErrorKind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return KindUnknown
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}

// mapTransportError classifies a transport failure. ctx is consulted so a
// cancellation surfacing as a generic I/O error is still reported as cancelled.
func mapTransportError(ctx context.Context, err error) *Error {
	var ne *Error
	if errors.As(err, &ne) {
		return ne
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &Error{Kind: KindCancelled, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	}
	if ctx != nil {
		switch ctx.Err() {
		case context.Canceled:
			return &Error{Kind: KindCancelled, Err: err}
		case context.DeadlineExceeded:
			return &Error{Kind: KindTimeout, Err: err}
		}
	}

	if isCertificateError(err) {
		return &Error{Kind: KindSSLPinningFailed, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}

	if isNoConnection(err) {
		return &Error{Kind: KindNoConnection, Err: err}
	}

	return &Error{Kind: KindNetwork, Err: err}
}

func isCertificateError(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		invalidCert      x509.CertificateInvalidError
		hostname         x509.HostnameError
		verification     *tls.CertificateVerificationError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &invalidCert) ||
		errors.As(err, &hostname) ||
		errors.As(err, &verification)
}

func isNoConnection(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETDOWN) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
