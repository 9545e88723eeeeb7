package github

import (
	"net/url"
	"strconv"

	"github.com/atomic-arch/ghusers/pkg/networking"
)

// ListUsers targets GET /users?per_page=&since=.
func ListUsers(perPage, since int) networking.Target {
	return networking.Target{
		Path:   "/users",
		Method: networking.MethodGet,
		Task: networking.Parameters(map[string]any{
			"per_page": strconv.Itoa(perPage),
			"since":    strconv.Itoa(since),
		}),
	}
}

// UserDetail targets GET /users/{login}.
func UserDetail(login string) networking.Target {
	return networking.Target{
		Path:   "/users/" + url.PathEscape(login),
		Method: networking.MethodGet,
		Task:   networking.Plain(),
	}
}
