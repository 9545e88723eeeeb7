package github

import "github.com/atomic-arch/ghusers/internal/domain"

// UserResponse is one element of GET /users.
type UserResponse struct {
	ID        int     `json:"id"`
	Login     *string `json:"login"`
	AvatarURL *string `json:"avatar_url"`
	HTMLURL   *string `json:"html_url"`
}

// ToDomain maps the DTO, defaulting missing strings to empty.
func (r UserResponse) ToDomain() domain.User {
	return domain.User{
		ID:        r.ID,
		Login:     deref(r.Login),
		AvatarURL: deref(r.AvatarURL),
		HTMLURL:   deref(r.HTMLURL),
	}
}

// UserDetailResponse is the body of GET /users/{login}.
type UserDetailResponse struct {
	ID          int     `json:"id"`
	Login       *string `json:"login"`
	AvatarURL   *string `json:"avatar_url"`
	HTMLURL     *string `json:"html_url"`
	Name        *string `json:"name"`
	Company     *string `json:"company"`
	Blog        *string `json:"blog"`
	Location    *string `json:"location"`
	Email       *string `json:"email"`
	Bio         *string `json:"bio"`
	PublicRepos *int    `json:"public_repos"`
	PublicGists *int    `json:"public_gists"`
	Followers   *int    `json:"followers"`
	Following   *int    `json:"following"`
}

// ToDomain maps the DTO, defaulting missing strings to empty and counts to zero.
func (r UserDetailResponse) ToDomain() domain.UserDetail {
	return domain.UserDetail{
		ID:          r.ID,
		Login:       deref(r.Login),
		AvatarURL:   deref(r.AvatarURL),
		HTMLURL:     deref(r.HTMLURL),
		Name:        deref(r.Name),
		Company:     deref(r.Company),
		Blog:        deref(r.Blog),
		Location:    deref(r.Location),
		Email:       deref(r.Email),
		Bio:         deref(r.Bio),
		PublicRepos: deref(r.PublicRepos),
		PublicGists: deref(r.PublicGists),
		Followers:   deref(r.Followers),
		Following:   deref(r.Following),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
