package domain

import (
	"context"
	"fmt"
)

// UserRepository is the data source for users.
type UserRepository interface {
	ListUsers(ctx context.Context, perPage, since int) ([]User, error)
	User(ctx context.Context, login string) (UserDetail, error)
}

// UserUseCase validates inputs and outputs around the repository.
type UserUseCase struct {
	repo UserRepository
}

// NewUserUseCase wires a use case over repo.
func NewUserUseCase(repo UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// ListUsers returns one page of users starting after the user id since.
func (uc *UserUseCase) ListUsers(ctx context.Context, perPage, since int) ([]User, error) {
	if uc == nil || uc.repo == nil {
		return nil, fmt.Errorf("user use case is not initialized")
	}
	if err := ValidatePagination(perPage, since); err != nil {
		return nil, err
	}

	users, err := uc.repo.ListUsers(ctx, perPage, since)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if err := ValidateUser(u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// User returns the profile for login.
func (uc *UserUseCase) User(ctx context.Context, login string) (UserDetail, error) {
	if uc == nil || uc.repo == nil {
		return UserDetail{}, fmt.Errorf("user use case is not initialized")
	}
	if err := ValidateUsername(login); err != nil {
		return UserDetail{}, err
	}

	user, err := uc.repo.User(ctx, login)
	if err != nil {
		return UserDetail{}, err
	}
	if err := ValidateUserDetail(user); err != nil {
		return UserDetail{}, err
	}
	return user, nil
}
