package networking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
)

// Logger defines the logging surface the networking package relies on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

const (
	maxLoggedPayloadBytes = 4 << 10
	redacted              = "[REDACTED]"
)

var sensitiveHeaders = map[string]struct{}{
	"Authorization":       {},
	"Proxy-Authorization": {},
	"Cookie":              {},
	"Set-Cookie":          {},
}

// LoggingInterceptor records every request and response without changing them.
type LoggingInterceptor struct {
	log Logger
}

// NewLoggingInterceptor returns an interceptor writing to log.
func NewLoggingInterceptor(log Logger) *LoggingInterceptor {
	return &LoggingInterceptor{log: ensureLogger(log)}
}

func (l *LoggingInterceptor) InterceptRequest(req Request) Request {
	l.log.InfoObj("http request", "http_request", map[string]any{
		"endpoint": req.URL,
		"method":   string(req.Method),
		"headers":  redactHeaders(req.Header),
	})
	return req
}

func (l *LoggingInterceptor) InterceptResponse(resp *Response, body []byte, err error) {
	fields := map[string]any{
		"payload": prettyPayload(body),
	}
	if resp != nil {
		fields["status_code"] = resp.StatusCode
	}
	if err != nil {
		fields["error"] = err.Error()
		l.log.ErrorObj("http response failed", "http_response", fields)
		return
	}
	l.log.InfoObj("http response", "http_response", fields)
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if _, ok := sensitiveHeaders[http.CanonicalHeaderKey(k)]; ok {
			out[k] = redacted
			continue
		}
		out[k] = strings.Join(v, ", ")
	}
	return out
}

// prettyPayload indents JSON payloads and quotes anything else, truncating large bodies.
func prettyPayload(body []byte) string {
	if len(body) == 0 {
		return "no data received"
	}
	truncated := false
	if len(body) > maxLoggedPayloadBytes {
		body = body[:maxLoggedPayloadBytes]
		truncated = true
	}

	var out string
	var buf bytes.Buffer
	if !truncated && json.Indent(&buf, body, "", "  ") == nil {
		out = buf.String()
	} else {
		out = strings.TrimSpace(string(body))
	}
	if truncated {
		out += "...(truncated)"
	}
	return out
}
