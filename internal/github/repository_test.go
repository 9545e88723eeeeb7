package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atomic-arch/ghusers/internal/domain"
	"github.com/atomic-arch/ghusers/pkg/httpclient"
	"github.com/atomic-arch/ghusers/pkg/networking"
)

// stubService answers every target with the handler's result.
type stubService struct {
	handler func(networking.Target) (*networking.Result, error)
	targets []networking.Target
}

func (s *stubService) Do(_ context.Context, target networking.Target) (*networking.Result, error) {
	s.targets = append(s.targets, target)
	return s.handler(target)
}

func okBody(body string) func(networking.Target) (*networking.Result, error) {
	return func(networking.Target) (*networking.Result, error) {
		return &networking.Result{Response: &networking.Response{StatusCode: 200}, Body: []byte(body)}, nil
	}
}

func TestRepositoryListUsersMapsResponses(t *testing.T) {
	svc := &stubService{handler: okBody(`[{"id":1,"login":"mojombo","avatar_url":"https://a/1","html_url":"https://github.com/mojombo"},{"id":2}]`)}
	users, err := NewRepository(svc).ListUsers(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	want := []domain.User{
		{ID: 1, Login: "mojombo", AvatarURL: "https://a/1", HTMLURL: "https://github.com/mojombo"},
		{ID: 2},
	}
	if len(users) != len(want) || users[0] != want[0] || users[1] != want[1] {
		t.Fatalf("users = %+v", users)
	}
	if svc.targets[0].Path != "/users" {
		t.Fatalf("path = %q", svc.targets[0].Path)
	}
}

func TestRepositoryListUsersPropagatesNoConnection(t *testing.T) {
	svc := &stubService{handler: func(networking.Target) (*networking.Result, error) {
		return nil, networking.ErrNoConnection
	}}
	_, err := NewRepository(svc).ListUsers(context.Background(), 10, 0)
	if !errors.Is(err, networking.ErrNoConnection) {
		t.Fatalf("expected no connection, got %v", err)
	}
}

func TestRepositoryUserDefaultsMissingFields(t *testing.T) {
	svc := &stubService{handler: okBody(`{"id":1,"login":"test","name":"Test User","public_repos":3,"blog":null}`)}
	detail, err := NewRepository(svc).User(context.Background(), "test")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	want := domain.UserDetail{ID: 1, Login: "test", Name: "Test User", PublicRepos: 3}
	if detail != want {
		t.Fatalf("detail = %+v", detail)
	}
}

func TestRepositoryUserNotFound(t *testing.T) {
	svc := &stubService{handler: func(networking.Target) (*networking.Result, error) {
		return nil, networking.HTTPError(http.StatusNotFound, []byte(`{"message":"Not Found"}`))
	}}
	_, err := NewRepository(svc).User(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if !errors.Is(err, networking.HTTPError(http.StatusNotFound, nil)) {
		t.Fatalf("http cause should stay reachable, got %v", err)
	}
}

func TestRepositoryUserDecodingError(t *testing.T) {
	svc := &stubService{handler: okBody(`not json`)}
	_, err := NewRepository(svc).User(context.Background(), "test")
	if !errors.Is(err, networking.ErrDecoding) {
		t.Fatalf("expected decoding error, got %v", err)
	}
}

func TestRepositoryAgainstHTTPServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octocat":
			_, _ = w.Write([]byte(`{"id":583231,"login":"octocat","avatar_url":"https://avatars.githubusercontent.com/u/583231","html_url":"https://github.com/octocat","followers":100}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	defer srv.Close()

	client := networking.NewClient(
		networking.Configuration{BaseURL: srv.URL},
		networking.NewHTTPTransport(httpclient.NewRestyClient(2*time.Second)),
	)
	uc := domain.NewUserUseCase(NewRepository(client))

	detail, err := uc.User(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("User: %v", err)
	}
	if detail.ID != 583231 || detail.Followers != 100 {
		t.Fatalf("detail = %+v", detail)
	}

	if _, err := uc.User(context.Background(), "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
