package impl

import (
	"context"
	"testing"

	"registryauth/internal/domain/entity"
	domainerrors "registryauth/internal/domain/errors"
	"registryauth/internal/domain/repository"
	mockRepo "registryauth/internal/mocks/repository"
	mockSvc "registryauth/internal/mocks/service"
	"registryauth/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service   usecase.AuthUsecase
	userRepo  *mockRepo.MockUserRepository
	groupRepo *mockRepo.MockGroupRepository
	hasher    *mockSvc.MockPasswordHasher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	groupRepo := mockRepo.NewMockGroupRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)

	service := NewAuthService(AuthServiceParams{
		UserRepo:  userRepo,
		GroupRepo: groupRepo,
		Hasher:    hasher,
		Logger:    newDiscardLogger(),
	})

	return authServiceFixtures{
		service:   service,
		userRepo:  userRepo,
		groupRepo: groupRepo,
		hasher:    hasher,
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Username: "alice", Password: "digest"}

	fx.hasher.EXPECT().Hash("pw1").Return("digest")
	fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").Return(user, nil)
	fx.groupRepo.EXPECT().FindByUserID(ctx, user.ID).Return([]entity.Group{
		{ID: uuid.New(), Name: strPtr("g1")},
		{ID: uuid.New(), Name: strPtr("g2")},
		{ID: uuid.New(), Name: nil},
	}, nil)

	output, err := fx.service.Authenticate(ctx, &usecase.CredentialsInput{Username: "alice", Password: "pw1"})

	require.NoError(t, err)
	assert.Same(t, user, output.User)
	require.Len(t, output.Groups, 3)
	assert.Equal(t, "g1", *output.Groups[0])
	assert.Equal(t, "g2", *output.Groups[1])
	assert.Nil(t, output.Groups[2])
}

func TestAuthService_Authenticate_NoGroups(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Username: "alice"}

	fx.hasher.EXPECT().Hash("pw1").Return("digest")
	fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").Return(user, nil)
	fx.groupRepo.EXPECT().FindByUserID(ctx, user.ID).Return([]entity.Group{}, nil)

	output, err := fx.service.Authenticate(ctx, &usecase.CredentialsInput{Username: "alice", Password: "pw1"})

	require.NoError(t, err)
	assert.NotNil(t, output.Groups)
	assert.Empty(t, output.Groups)
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx authServiceFixtures, ctx context.Context, user *entity.User)
	}{
		{
			name: "no matching user",
			setup: func(fx authServiceFixtures, ctx context.Context, _ *entity.User) {
				fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").Return(nil, repository.ErrUserNotFound)
			},
		},
		{
			name: "user lookup fails",
			setup: func(fx authServiceFixtures, ctx context.Context, _ *entity.User) {
				fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").
					Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("database is locked"), "failed"))
			},
		},
		{
			name: "group lookup fails",
			setup: func(fx authServiceFixtures, ctx context.Context, user *entity.User) {
				fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").Return(user, nil)
				fx.groupRepo.EXPECT().FindByUserID(ctx, user.ID).Return(nil, errors.New("no such table: groups"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			user := &entity.User{ID: uuid.New(), Username: "alice"}

			fx.hasher.EXPECT().Hash("pw1").Return("digest")
			tt.setup(fx, ctx, user)

			output, err := fx.service.Authenticate(ctx, &usecase.CredentialsInput{Username: "alice", Password: "pw1"})

			assert.Nil(t, output)
			assert.Same(t, domainerrors.ErrAuthFailed, err)
		})
	}
}

func TestAuthService_CreateAccount_EmptyStoreBootstraps(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	created := &entity.User{}

	fx.hasher.EXPECT().Hash("pw1").Return("digest")
	fx.userRepo.EXPECT().Count(ctx).Return(int64(0), nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "alice" && u.Password == "digest"
		})).
		Run(func(_ context.Context, u *entity.User) {
			u.ID = uuid.New()
			created = u
		}).
		Return(nil)
	fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").
		RunAndReturn(func(context.Context, string, string) (*entity.User, error) {
			return created, nil
		})

	err := fx.service.CreateAccount(ctx, &usecase.CredentialsInput{Username: "alice", Password: "pw1"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestAuthService_CreateAccount_NonEmptyStoreOnlyChecks(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("pw1").Return("digest")
	fx.userRepo.EXPECT().Count(ctx).Return(int64(1), nil)
	fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").
		Return(&entity.User{ID: uuid.New(), Username: "alice"}, nil)

	err := fx.service.CreateAccount(ctx, &usecase.CredentialsInput{Username: "alice", Password: "pw1"})

	require.NoError(t, err)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_CreateAccount_NonEmptyStoreUnknownUser(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("pw2").Return("digest2")
	fx.userRepo.EXPECT().Count(ctx).Return(int64(1), nil)
	fx.userRepo.EXPECT().FindByCredentials(ctx, "bob", "digest2").Return(nil, repository.ErrUserNotFound)

	err := fx.service.CreateAccount(ctx, &usecase.CredentialsInput{Username: "bob", Password: "pw2"})

	assert.Same(t, domainerrors.ErrAuthFailed, err)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_CreateAccount_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx authServiceFixtures, ctx context.Context)
	}{
		{
			name: "count fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.userRepo.EXPECT().Count(ctx).Return(int64(0), errors.New("connection refused"))
			},
		},
		{
			name: "bootstrap insert loses uniqueness race",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.userRepo.EXPECT().Count(ctx).Return(int64(0), nil)
				fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
					Return(domainerrors.ErrUserAlreadyExists.WrapMessage("username already exists"))
			},
		},
		{
			name: "verification lookup fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.userRepo.EXPECT().Count(ctx).Return(int64(0), nil)
				fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).Return(nil)
				fx.userRepo.EXPECT().FindByCredentials(ctx, "alice", "digest").
					Return(nil, errors.New("database is locked"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()

			fx.hasher.EXPECT().Hash("pw1").Return("digest")
			tt.setup(fx, ctx)

			err := fx.service.CreateAccount(ctx, &usecase.CredentialsInput{Username: "alice", Password: "pw1"})

			assert.Same(t, domainerrors.ErrAuthFailed, err)
		})
	}
}

func TestAuthService_ChangePassword_AlwaysUnsupported(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	inputs := []*usecase.ChangePasswordInput{
		{Username: "alice", Password: "pw1", NewPassword: "pw2"},
		{Username: "alice", Password: "pw1", NewPassword: "pw1"},
		{},
	}

	for _, input := range inputs {
		ok, err := fx.service.ChangePassword(ctx, input)

		assert.False(t, ok)
		assert.NoError(t, err)
	}
}
