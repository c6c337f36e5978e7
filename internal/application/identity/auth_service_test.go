package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]identity.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Helper function to create a test user
func createTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("testuser", "test@example.com", "Password123")
	require.NoError(t, err)
	return user
}

// Helper function to create auth service with an in-memory blacklist
func createAuthService(userRepo *MockUserRepository) *AuthService {
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtCfg)

	return NewAuthService(
		userRepo,
		jwtService,
		auth.NewInMemoryTokenBlacklist(),
		zap.NewNop(),
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
		IP:       "127.0.0.1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "testuser", result.User.Username)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.NotNil(t, user.LastLoginAt)

	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "wrongpassword",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	userRepo.On("FindByUsername", ctx, "ghost").Return(nil, errors.New("record not found"))

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "ghost",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	// Missing users report the same error as bad passwords
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t)
	require.NoError(t, user.Deactivate())

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)

	authService := createAuthService(userRepo)

	result, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	login, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})
	require.NoError(t, err)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	userRepo.AssertExpectations(t)
}

func TestAuthService_RefreshToken_Invalid(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	authService := createAuthService(userRepo)

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: "not-a-token",
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_RefreshToken_DeactivatedAccount(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t)

	userRepo.On("FindByUsername", ctx, "testuser").Return(user, nil)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	userRepo.On("Save", ctx, user).Return(nil)

	authService := createAuthService(userRepo)

	login, err := authService.Login(ctx, LoginInput{
		Username: "testuser",
		Password: "Password123",
	})
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())

	result, err := authService.RefreshToken(ctx, RefreshTokenInput{
		RefreshToken: login.RefreshToken,
	})

	require.Error(t, err)
	assert.Nil(t, result)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	authService := NewAuthService(userRepo, auth.NewJWTService(jwtCfg), blacklist, zap.NewNop())

	err := authService.Logout(ctx, LogoutInput{
		UserID:      uuid.New(),
		TokenID:     "some-jti",
		TokenExpiry: time.Now().Add(10 * time.Minute),
	})
	require.NoError(t, err)

	revoked, err := blacklist.IsRevoked(ctx, "some-jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	blacklist := auth.NewInMemoryTokenBlacklist()
	jwtCfg := config.JWTConfig{
		Secret:                 "test-secret-key-32-characters-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	}
	authService := NewAuthService(userRepo, auth.NewJWTService(jwtCfg), blacklist, zap.NewNop())

	err := authService.Logout(ctx, LogoutInput{
		UserID:      uuid.New(),
		TokenID:     "stale-jti",
		TokenExpiry: time.Now().Add(-1 * time.Minute),
	})
	require.NoError(t, err)

	revoked, err := blacklist.IsRevoked(ctx, "stale-jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("changes password and revokes outstanding tokens", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestUser(t)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
		userRepo.On("Save", ctx, user).Return(nil)

		authService := createAuthService(userRepo)

		err := authService.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "Password123",
			NewPassword: "NewPassword456",
		})

		require.NoError(t, err)
		assert.True(t, user.CheckPassword("NewPassword456"))
		assert.False(t, user.CheckPassword("Password123"))
		userRepo.AssertExpectations(t)
	})

	t.Run("fails with wrong current password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		user := createTestUser(t)

		userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

		authService := createAuthService(userRepo)

		err := authService.ChangePassword(ctx, ChangePasswordInput{
			UserID:      user.ID,
			OldPassword: "wrong",
			NewPassword: "NewPassword456",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)

	user := createTestUser(t)
	userRepo.On("FindByID", ctx, user.ID).Return(user, nil)

	authService := createAuthService(userRepo)

	info, err := authService.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "testuser", info.Username)
	assert.Equal(t, "test@example.com", info.Email)
}
