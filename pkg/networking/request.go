package networking

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
)

// Request is a fully-formed outgoing request. Interceptors receive it by value
// and return the request the next stage should see.
type Request struct {
	Method Method
	URL    string
	Header http.Header
	Body   []byte
}

// Clone returns a deep copy so mutations never leak between stages.
func (r Request) Clone() Request {
	out := r
	out.Header = r.Header.Clone()
	if out.Header == nil {
		out.Header = http.Header{}
	}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}

// WithHeader returns a copy of r with key set to value.
func (r Request) WithHeader(key, value string) Request {
	out := r
	out.Header = r.Header.Clone()
	if out.Header == nil {
		out.Header = http.Header{}
	}
	out.Header.Set(key, value)
	return out
}

// Response is the metadata of a received response; the body travels separately.
type Response struct {
	StatusCode int
	Header     http.Header
}

// BuildRequest turns a Target into a Request against cfg.
func BuildRequest(cfg Configuration, target Target) (Request, error) {
	rawURL := cfg.BaseURL + target.Path
	u, err := url.Parse(rawURL)
	if err != nil {
		return Request{}, &Error{Kind: KindInvalidURL, Err: fmt.Errorf("parse %q: %w", rawURL, err)}
	}

	req := Request{
		Method: target.Method,
		Header: mergeHeaders(cfg.DefaultHeaders, target.Headers),
	}
	if req.Method == "" {
		req.Method = MethodGet
	}

	switch target.Task.Kind {
	case TaskPlain:
	case TaskParameters:
		u.RawQuery = appendQuery(u.RawQuery, target.Task.Parameters)
	case TaskBody:
		req.Body = target.Task.Body
	case TaskEncoded:
		req.Body = target.Task.Body
		if target.Task.ContentType != "" && req.Header.Get(headerContentType) == "" {
			req.Header.Set(headerContentType, target.Task.ContentType)
		}
	case TaskComposite:
		u.RawQuery = appendQuery(u.RawQuery, target.Task.Parameters)
		req.Body = target.Task.Body
	default:
		return Request{}, &Error{Kind: KindUnknown, Err: fmt.Errorf("unsupported task kind %s", target.Task.Kind)}
	}

	req.URL = u.String()
	return req, nil
}

// mergeHeaders layers target headers over defaults; target wins on collision.
func mergeHeaders(defaults, overrides map[string]string) http.Header {
	h := make(http.Header, len(defaults)+len(overrides))
	for k, v := range defaults {
		h.Set(k, v)
	}
	for k, v := range overrides {
		h.Set(k, v)
	}
	return h
}

func appendQuery(existing string, params map[string]any) string {
	if len(params) == 0 {
		return existing
	}
	values, err := url.ParseQuery(existing)
	if err != nil {
		// Keep an unparseable query verbatim and append after it.
		return existing + "&" + appendQuery("", params)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := params[k].(type) {
		case nil:
			values.Set(k, "")
		case []string:
			for _, s := range v {
				values.Add(k, s)
			}
		case []any:
			for _, s := range v {
				values.Add(k, fmt.Sprint(s))
			}
		default:
			values.Set(k, fmt.Sprint(v))
		}
	}
	return values.Encode()
}

// String renders the request line for logs.
func (r Request) String() string {
	return string(r.Method) + " " + r.URL
}
