package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]{1,39}$`)
	emailPattern    = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ValidateUsername checks GitHub's login rules.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePagination requires a positive page size and a non-negative cursor.
func ValidatePagination(perPage, since int) error {
	if perPage <= 0 || since < 0 {
		return ErrInvalidPagination
	}
	return nil
}

// ValidateUser checks a listing entry.
func ValidateUser(u User) error {
	if err := ValidateUsername(u.Login); err != nil {
		return fmt.Errorf("user %d: %w", u.ID, err)
	}
	if !isURL(u.AvatarURL) || !isURL(u.HTMLURL) {
		return fmt.Errorf("user %q urls: %w", u.Login, ErrInvalidUserData)
	}
	return nil
}

// ValidateUserDetail checks a full profile. Blog and email may be empty.
func ValidateUserDetail(u UserDetail) error {
	if err := ValidateUsername(u.Login); err != nil {
		return fmt.Errorf("user %d: %w", u.ID, err)
	}
	if !isURL(u.AvatarURL) || !isURL(u.HTMLURL) {
		return fmt.Errorf("user %q urls: %w", u.Login, ErrInvalidUserData)
	}
	if u.Blog != "" && !isURL(u.Blog) {
		return fmt.Errorf("user %q blog: %w", u.Login, ErrInvalidUserData)
	}
	if u.Email != "" && !emailPattern.MatchString(u.Email) {
		return fmt.Errorf("user %q email: %w", u.Login, ErrInvalidUserData)
	}
	return nil
}

func isURL(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}
	_, err := url.Parse(raw)
	return err == nil
}
