package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/atomic-arch/ghusers/internal/domain"
	"github.com/atomic-arch/ghusers/pkg/networking"
)

// Repository reads users from the GitHub REST API.
type Repository struct {
	svc networking.Service
}

var _ domain.UserRepository = (*Repository)(nil)

// NewRepository wires a repository over svc.
func NewRepository(svc networking.Service) *Repository {
	return &Repository{svc: svc}
}

// ListUsers fetches one page of users.
func (r *Repository) ListUsers(ctx context.Context, perPage, since int) ([]domain.User, error) {
	resp, err := networking.Fetch[[]UserResponse](ctx, r.svc, ListUsers(perPage, since))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(resp))
	for _, u := range resp {
		users = append(users, u.ToDomain())
	}
	return users, nil
}

// User fetches a single profile. A 404 is reported as domain.ErrUserNotFound.
func (r *Repository) User(ctx context.Context, login string) (domain.UserDetail, error) {
	resp, err := networking.Fetch[UserDetailResponse](ctx, r.svc, UserDetail(login))
	if err != nil {
		if errors.Is(err, networking.HTTPError(http.StatusNotFound, nil)) {
			return domain.UserDetail{}, fmt.Errorf("user %q: %w", login, errors.Join(domain.ErrUserNotFound, err))
		}
		return domain.UserDetail{}, fmt.Errorf("get user %q: %w", login, err)
	}
	return resp.ToDomain(), nil
}
