package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/atomic-arch/ghusers/internal/domain"
)

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "json", []domain.User{{ID: 1, Login: "mojombo"}}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), `"login": "mojombo"`) {
		t.Fatalf("unexpected json %s", buf.String())
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := render(&buf, "YAML", domain.User{ID: 1, Login: "mojombo"}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "login: mojombo") {
		t.Fatalf("unexpected yaml %s", buf.String())
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if err := render(&bytes.Buffer{}, "xml", nil); err == nil {
		t.Fatalf("expected error for xml")
	}
}
