package networking

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

type logEntry struct {
	level string
	msg   string
	obj   interface{}
}

type recordingLogger struct {
	entries []logEntry
}

func (r *recordingLogger) add(level, msg string, obj interface{}) {
	r.entries = append(r.entries, logEntry{level: level, msg: msg, obj: obj})
}

func (r *recordingLogger) InfoObj(msg, _ string, obj interface{})  { r.add("info", msg, obj) }
func (r *recordingLogger) DebugObj(msg, _ string, obj interface{}) { r.add("debug", msg, obj) }
func (r *recordingLogger) WarnObj(msg, _ string, obj interface{})  { r.add("warn", msg, obj) }
func (r *recordingLogger) ErrorObj(msg, _ string, obj interface{}) { r.add("error", msg, obj) }

func TestLoggingInterceptorRedactsAuthorization(t *testing.T) {
	log := &recordingLogger{}
	interceptor := NewLoggingInterceptor(log)

	req := Request{Method: MethodGet, URL: "https://api.github.com/users", Header: http.Header{}}
	req = req.WithHeader("Authorization", "Bearer secret").WithHeader("Accept", "application/json")
	out := interceptor.InterceptRequest(req)

	if out.Header.Get("Authorization") != "Bearer secret" {
		t.Fatalf("logging interceptor must not alter the request")
	}
	if len(log.entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(log.entries))
	}
	fields := log.entries[0].obj.(map[string]any)
	headers := fields["headers"].(map[string]string)
	if headers["Authorization"] != redacted {
		t.Fatalf("authorization leaked: %q", headers["Authorization"])
	}
	if headers["Accept"] != "application/json" {
		t.Fatalf("accept = %q", headers["Accept"])
	}
}

func TestLoggingInterceptorLogsErrorsAtErrorLevel(t *testing.T) {
	log := &recordingLogger{}
	NewLoggingInterceptor(log).InterceptResponse(nil, nil, errors.New("offline"))

	if len(log.entries) != 1 || log.entries[0].level != "error" {
		t.Fatalf("unexpected entries %+v", log.entries)
	}
	fields := log.entries[0].obj.(map[string]any)
	if fields["error"] != "offline" || fields["payload"] != "no data received" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestLoggingInterceptorPrettyPrintsJSON(t *testing.T) {
	log := &recordingLogger{}
	NewLoggingInterceptor(log).InterceptResponse(&Response{StatusCode: 200}, []byte(`{"a":1}`), nil)

	fields := log.entries[0].obj.(map[string]any)
	if fields["status_code"] != 200 {
		t.Fatalf("status_code = %v", fields["status_code"])
	}
	if fields["payload"] != "{\n  \"a\": 1\n}" {
		t.Fatalf("payload = %q", fields["payload"])
	}
}

func TestPrettyPayloadTruncates(t *testing.T) {
	body := []byte(strings.Repeat("x", maxLoggedPayloadBytes+10))
	got := prettyPayload(body)
	if !strings.HasSuffix(got, "...(truncated)") {
		t.Fatalf("expected truncation marker")
	}
}

func TestBearerTokenBlankIsNoop(t *testing.T) {
	req := BearerToken("  ").InterceptRequest(Request{Method: MethodGet})
	if req.Header.Get("Authorization") != "" {
		t.Fatalf("blank token must not set Authorization")
	}
}
