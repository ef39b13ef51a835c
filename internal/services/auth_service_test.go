package services_test

import (
	"context"
	"errors"
	"testing"

	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"
	"streetbazaar/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo *MockUserRepository) (*services.AuthService, *services.TokenService) {
	tokens := services.NewTokenService(testJWTSecret, services.DefaultTokenTTL)
	return services.NewAuthService(repo, services.NewPasswordHasher(bcrypt.MinCost), tokens, nil), tokens
}

func registerInput() services.RegisterInput {
	return services.RegisterInput{
		Email:        "test@example.com",
		Password:     "password123",
		Name:         "Test User",
		Role:         models.RoleVendor,
		BusinessName: "Test Stall",
	}
}

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService, _ := newAuthService(mockRepo)

		var stored *models.User
		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).
			Run(func(args mock.Arguments) {
				u := *args.Get(1).(*models.User)
				stored = &u
			}).
			Return(nil).Once()

		user, err := authService.RegisterUser(ctx, registerInput())
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, models.RoleVendor, user.Role)
		assert.Empty(t, user.PasswordHash, "hash must not leave the service")
		assert.False(t, user.CreatedAt.IsZero())

		require.NotNil(t, stored)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService, _ := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()

		_, err := authService.RegisterUser(ctx, registerInput())
		assert.ErrorIs(t, err, services.ErrEmailTaken)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService, _ := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, repositories.ErrNotFound).Once()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicate).Once()

		_, err := authService.RegisterUser(ctx, registerInput())
		assert.ErrorIs(t, err, services.ErrEmailTaken)
	})

	t.Run("lookup failure", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService, _ := newAuthService(mockRepo)

		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, errors.New("connection reset")).Once()

		_, err := authService.RegisterUser(ctx, registerInput())
		assert.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrEmailTaken)
	})
}

func TestAuthService_LoginUser(t *testing.T) {
	ctx := context.Background()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	storedUser := func() *models.User {
		return &models.User{
			ID:           "user-123",
			Email:        "test@example.com",
			PasswordHash: string(hashedPassword),
			Role:         models.RoleSupplier,
		}
	}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService, tokens := newAuthService(mockRepo)
		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(storedUser(), nil).Once()

		user, token, err := authService.LoginUser(ctx, "test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "user-123", user.ID)
		assert.Empty(t, user.PasswordHash)

		subject, err := tokens.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", subject)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		authService, _ := newAuthService(mockRepo)
		mockRepo.On("GetByEmail", ctx, "test@example.com").Return(storedUser(), nil).Once()
		mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repositories.ErrNotFound).Once()

		_, token, wrongPassword := authService.LoginUser(ctx, "test@example.com", "wrongpassword")
		assert.Empty(t, token)
		_, _, unknownEmail := authService.LoginUser(ctx, "nobody@example.com", "password123")

		assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
		assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_ResolveUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService, _ := newAuthService(mockRepo)

	mockRepo.On("GetByID", ctx, "user-123").
		Return(&models.User{ID: "user-123", PasswordHash: "secret"}, nil).Once()
	mockRepo.On("GetByID", ctx, "ghost").Return(nil, repositories.ErrNotFound).Once()

	user, err := authService.ResolveUser(ctx, "user-123")
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = authService.ResolveUser(ctx, "ghost")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
