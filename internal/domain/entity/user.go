// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registry account as kept by the user store.
type User struct {
	ID        uuid.UUID // Store-wide unique identifier.
	Username  string    // Unique login name.
	Password  string    // Digest produced by the PasswordHasher, never the plaintext unless hashing is disabled.
	CreatedAt time.Time
	UpdatedAt time.Time
}
