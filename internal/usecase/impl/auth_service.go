// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "registryauth/internal/delivery/context"
	"registryauth/internal/domain/entity"
	domainerrors "registryauth/internal/domain/errors"
	"registryauth/internal/domain/repository"
	"registryauth/internal/domain/service"
	"registryauth/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo  repository.UserRepository
	groupRepo repository.GroupRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	GroupRepo repository.GroupRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:  params.UserRepo,
		groupRepo: params.GroupRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate looks the user up by username and digest together and returns
// their group names.
func (srv *authService) Authenticate(ctx context.Context, input *usecase.CredentialsInput) (*usecase.AuthenticateOutput, error) {
	user, err := srv.userRepo.FindByCredentials(ctx, input.Username, srv.hasher.Hash(input.Password))
	if err != nil {
		srv.logFailure(ctx, "Authentication rejected", input.Username, err)

		return nil, domainerrors.ErrAuthFailed
	}

	groups, err := srv.groupRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		srv.logFailure(ctx, "Failed to load groups", input.Username, err)

		return nil, domainerrors.ErrAuthFailed
	}

	srv.log(ctx).Debug("Authenticated", slog.String("username", user.Username), slog.Int("groups", len(groups)))

	return &usecase.AuthenticateOutput{
		User:   user,
		Groups: entity.GroupNames(groups),
	}, nil
}

// CreateAccount has two paths. With an empty store it inserts the user first;
// either way it then requires the credentials to match a stored user.
func (srv *authService) CreateAccount(ctx context.Context, input *usecase.CredentialsInput) error {
	digest := srv.hasher.Hash(input.Password)

	count, err := srv.userRepo.Count(ctx)
	if err != nil {
		srv.logFailure(ctx, "Failed to count users", input.Username, err)

		return domainerrors.ErrAuthFailed
	}

	if count == 0 {
		user := &entity.User{Username: input.Username, Password: digest}
		if err := srv.userRepo.Create(ctx, user); err != nil {
			srv.logFailure(ctx, "Bootstrap user creation failed", input.Username, err)

			return domainerrors.ErrAuthFailed
		}

		srv.log(ctx).Info("Bootstrap user created", slog.String("username", user.Username), slog.Any("userID", user.ID))
	}

	if _, err := srv.userRepo.FindByCredentials(ctx, input.Username, digest); err != nil {
		srv.logFailure(ctx, "Account check rejected", input.Username, err)

		return domainerrors.ErrAuthFailed
	}

	return nil
}

// ChangePassword is not supported.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) (bool, error) {
	srv.log(ctx).Info("Password change is not supported", slog.String("username", input.Username))

	return false, nil
}

// logFailure records why a call failed; the caller only ever sees ErrAuthFailed.
func (srv *authService) logFailure(ctx context.Context, msg, username string, err error) {
	level := slog.LevelWarn
	if errors.Is(err, repository.ErrUserNotFound) {
		level = slog.LevelInfo
	}

	srv.log(ctx).LogAttrs(ctx, level, msg, slog.String("username", username), slog.Any("error", err))
}
