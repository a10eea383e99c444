package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roamly/roamly/internal/auth"
	"github.com/roamly/roamly/internal/models"
	"github.com/roamly/roamly/internal/storage"
)

// AuthService handles registration, login and profile changes, issuing
// JWT tokens.
type AuthService struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(store storage.Store, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		store:         store,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new user account and returns the user with a token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	if email == "" || displayName == "" {
		return nil, "", fmt.Errorf("%w: email and display name required", ErrInvalidInput)
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns the user with a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("login failed", "email", email)
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// Profile returns the account behind userID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, storage.ErrNotFound)
	}
	return user, nil
}

// UpdateProfile changes the account's display name. Member roster entries
// keep their own names; renaming the account does not touch them.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, displayName string) (*models.User, error) {
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name required", ErrInvalidInput)
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = displayName
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
