// Package service implements the application logic between the HTTP layer
// and the store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/petrossemanhica07/app-poupanca/internal/auth"
	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// ErrInvalidInput marks malformed or missing request data.
var ErrInvalidInput = errors.New("invalid input")

// Credentials of the bootstrap administrator. Created on first run with an
// empty users table; a deployment must rotate the password immediately.
const (
	bootstrapAdminEmail    = "admin@local"
	bootstrapAdminPassword = "admin123"
)

// AuthService handles login and the first-run admin bootstrap.
type AuthService struct {
	store         storage.Store
	authenticator *auth.PasswordAuthenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store storage.Store, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:         store,
		authenticator: auth.NewPasswordAuthenticator(store),
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Bootstrap creates the default administrator when the users table is empty.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(bootstrapAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Admin",
		Email:        bootstrapAdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	s.logger.Warn("Bootstrap admin created with well-known password, rotate it now",
		"email", bootstrapAdminEmail)
	return nil
}

// Login authenticates a user and returns a signed token plus the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email)
		return "", nil, auth.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return "", nil, err
	}

	if err := s.store.AppendAudit(ctx, &models.AuditEntry{
		UserID:      user.ID,
		Action:      "login",
		TargetTable: "users",
		TargetID:    user.ID,
	}); err != nil {
		s.logger.Error("Failed to audit login", "user_id", user.ID, "error", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}
