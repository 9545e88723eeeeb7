package github

import (
	"net/url"
	"testing"

	"github.com/atomic-arch/ghusers/pkg/networking"
)

var apiConfig = networking.Configuration{BaseURL: "https://api.github.com"}

func TestListUsersTarget(t *testing.T) {
	req, err := networking.BuildRequest(apiConfig, ListUsers(50, 0))
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if req.Method != networking.MethodGet {
		t.Fatalf("method = %s", req.Method)
	}
	u, _ := url.Parse(req.URL)
	if u.Host != "api.github.com" || u.Path != "/users" {
		t.Fatalf("url = %s", req.URL)
	}
	if u.RawQuery != "per_page=50&since=0" {
		t.Fatalf("query = %q", u.RawQuery)
	}
}

func TestUserDetailTarget(t *testing.T) {
	req, err := networking.BuildRequest(apiConfig, UserDetail("octocat"))
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	if req.URL != "https://api.github.com/users/octocat" {
		t.Fatalf("url = %q", req.URL)
	}
	if req.Method != networking.MethodGet {
		t.Fatalf("method = %s", req.Method)
	}
}
