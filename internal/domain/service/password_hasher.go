// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher turns a plaintext password into the digest kept in the user store.
type PasswordHasher interface {
	// Hash is deterministic: the same password always yields the same digest,
	// so digests can be compared by equality.
	Hash(password string) string
}
