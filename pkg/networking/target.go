// Package networking implements a Target-based HTTP client with an ordered
// interceptor chain and typed errors.
package networking

import (
	"encoding/json"
	"fmt"
)

// Method is the HTTP verb of a Target.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// TaskKind identifies how a Target's payload is put on the wire.
type TaskKind int

const (
	TaskPlain TaskKind = iota
	TaskParameters
	TaskBody
	TaskEncoded
	TaskComposite
)

func (k TaskKind) String() string {
	switch k {
	case TaskPlain:
		return "plain"
	case TaskParameters:
		return "parameters"
	case TaskBody:
		return "body"
	case TaskEncoded:
		return "encoded"
	case TaskComposite:
		return "composite"
	default:
		return fmt.Sprintf("task(%d)", int(k))
	}
}

// Task is a tagged variant; only the fields relevant to Kind are read.
type Task struct {
	Kind        TaskKind
	Parameters  map[string]any
	Body        []byte
	ContentType string
}

// Plain sends neither a body nor query parameters.
func Plain() Task { return Task{Kind: TaskPlain} }

// Parameters encodes params as the URL query string, whatever the method.
func Parameters(params map[string]any) Task {
	return Task{Kind: TaskParameters, Parameters: params}
}

// Body sends raw bytes untouched.
func Body(body []byte) Task { return Task{Kind: TaskBody, Body: body} }

// Encoded sends an already-serialized payload with its content type.
func Encoded(contentType string, payload []byte) Task {
	return Task{Kind: TaskEncoded, Body: payload, ContentType: contentType}
}

// JSON marshals v at the call site and returns an application/json Encoded task.
func JSON(v any) (Task, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return Task{}, fmt.Errorf("encode json task: %w", err)
	}
	return Encoded(contentTypeJSON, payload), nil
}

// Composite applies both query parameters and a raw body.
func Composite(params map[string]any, body []byte) Task {
	return Task{Kind: TaskComposite, Parameters: params, Body: body}
}

// Target describes one endpoint call. It is built per call and never mutated.
type Target struct {
	Path    string
	Method  Method
	Task    Task
	Headers map[string]string
}

// Configuration is fixed at client construction.
type Configuration struct {
	BaseURL        string
	DefaultHeaders map[string]string
}

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)
