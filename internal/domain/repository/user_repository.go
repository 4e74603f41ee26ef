// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"registryauth/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the subset of the user store the plugin relies on.
type UserRepository interface {
	// FindByCredentials returns the first user whose username and stored digest
	// both equal the given values. Both predicates go into one query.
	FindByCredentials(ctx context.Context, username, digest string) (*entity.User, error)

	// Count returns the number of users in the store.
	Count(ctx context.Context) (int64, error)

	// Create persists a new user. ID and timestamps are filled in on success.
	Create(ctx context.Context, user *entity.User) error
}
