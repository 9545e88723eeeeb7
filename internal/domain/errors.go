package domain

import "errors"

var (
	ErrInvalidUsername   = errors.New("username must be between 1 and 39 characters and contain only alphanumeric characters and hyphens")
	ErrInvalidPagination = errors.New("pagination parameters must be positive numbers")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidUserData   = errors.New("invalid user data")
)
