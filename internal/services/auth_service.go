package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"streetbazaar/internal/models"
	"streetbazaar/internal/repositories"

	"github.com/google/uuid"
)

// RegisterInput carries a registration candidate.
type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	Phone        string
	Role         models.Role
	BusinessName string
	City         string
	State        string
}

// AuthService is the user directory: registration, login and identity lookup.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, hasher *PasswordHasher, tokens *TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   resolveLogger(logger),
	}
}

// RegisterUser stores a new account. Email comparison is exact and case-sensitive.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrEmailTaken
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         in.Role,
		BusinessName: in.BusinessName,
		City:         in.City,
		State:        in.State,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race against a concurrent registration of the same email
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "user_type", user.Role)
	user.PasswordHash = ""
	return user, nil
}

// LoginUser checks credentials and issues a token. An unknown email and a wrong
// password produce the same ErrInvalidCredentials.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.hasher.burn(password)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// ResolveUser loads the account a validated token refers to.
func (s *AuthService) ResolveUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// ValidateToken returns the user id carried by a bearer token.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	return s.tokens.Validate(tokenString)
}
