// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha512"
	"encoding/hex"

	"registryauth/config"
	"registryauth/internal/domain/service"

	"golang.org/x/crypto/pbkdf2"
)

const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLength  = 64
)

// pbkdf2Hasher derives digests with PBKDF2-HMAC-SHA512, using the shared secret as salt.
type pbkdf2Hasher struct {
	secret []byte
}

// NewPBKDF2Hasher builds the hasher from the configured password secret.
func NewPBKDF2Hasher(cfg *config.Config) service.PasswordHasher {
	return NewPBKDF2HasherWithSecret(cfg.Auth.PasswordSecret)
}

// NewPBKDF2HasherWithSecret returns a hasher for the given secret.
// With an empty secret Hash returns the password unchanged.
func NewPBKDF2HasherWithSecret(secret string) service.PasswordHasher {
	return &pbkdf2Hasher{secret: []byte(secret)}
}

// Hash returns the lowercase hex digest of password.
func (h *pbkdf2Hasher) Hash(password string) string {
	if len(h.secret) == 0 {
		return password
	}

	key := pbkdf2.Key([]byte(password), h.secret, pbkdf2Iterations, pbkdf2KeyLength, sha512.New)

	return hex.EncodeToString(key)
}
