// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"registryauth/internal/domain/entity"
)

// --- Input DTOs ---

// CredentialsInput carries a login attempt.
type CredentialsInput struct {
	Username string
	Password string
}

// ChangePasswordInput carries a password change request.
type ChangePasswordInput struct {
	Username    string
	Password    string
	NewPassword string
}

// AccessInput pairs the requesting identity with the package being touched.
type AccessInput struct {
	User    entity.RemoteUser
	Package entity.PackageAccess
}

// --- Output DTOs ---

// AuthenticateOutput lists the user's group names in membership order.
// A nil entry stands for a group without a name.
type AuthenticateOutput struct {
	User   *entity.User
	Groups []*string
}

// AuthUsecase verifies credentials against the user store.
//
// Authenticate and CreateAccount report every failure as domainerrors.ErrAuthFailed.
type AuthUsecase interface {
	Authenticate(ctx context.Context, input *CredentialsInput) (*AuthenticateOutput, error)

	// CreateAccount inserts the user only while the store is empty, then checks the
	// credentials. On a non-empty store it is a plain credential check.
	CreateAccount(ctx context.Context, input *CredentialsInput) error

	// ChangePassword is not supported and always reports (false, nil).
	ChangePassword(ctx context.Context, input *ChangePasswordInput) (bool, error)
}

// AccessUsecase answers the host's per-package authorization hooks.
type AccessUsecase interface {
	AllowAccess(ctx context.Context, input *AccessInput) (bool, error)
	AllowPublish(ctx context.Context, input *AccessInput) (bool, error)
	AllowUnpublish(ctx context.Context, input *AccessInput) (bool, error)
}
