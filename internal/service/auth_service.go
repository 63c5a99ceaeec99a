// Package service holds the business logic between the HTTP handlers and
// the repositories and content packages.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursecms/coursesite/internal/auth"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/repository"
	"github.com/coursecms/coursesite/internal/utils"
)

// AuthService handles signup, login and token verification
type AuthService struct {
	userRepo    repository.UserRepository
	tokens      auth.TokenIssuer
	passwordCfg *auth.PasswordConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, tokens auth.TokenIssuer, passwordCfg *auth.PasswordConfig) *AuthService {
	if passwordCfg == nil {
		passwordCfg = auth.DefaultPasswordConfig()
	}
	return &AuthService{
		userRepo:    userRepo,
		tokens:      tokens,
		passwordCfg: passwordCfg,
	}
}

// Signup creates an identity together with its unpaid profile and signs it in.
//
// Parameters:
//   - ctx: Context for the operation
//   - reg: Email and password of the new identity
//
// Returns:
//   - The access token and the sanitized user
//   - A duplicate error when the email is taken, a validation error for a weak password
func (s *AuthService) Signup(ctx context.Context, reg *models.UserRegistration) (*models.AuthResponse, error) {
	if reg.Password != reg.ConfirmPassword {
		return nil, utils.NewValidationError("confirm_password", "Passwords do not match")
	}
	if err := utils.ValidatePassword(reg.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		utils.LogAuth(constants.LogEventRegister, 0, email, false, "email taken")
		return nil, utils.NewDuplicateError("User", constants.ColumnEmail, email)
	}

	passwordHash, salt, err := auth.HashPassword(reg.Password, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email)
	user.PasswordHash = passwordHash
	user.Salt = salt

	if _, err := s.userRepo.CreateWithProfile(ctx, user); err != nil {
		if utils.IsDuplicateError(err) {
			// Lost a race with a concurrent signup for the same email
			utils.LogAuth(constants.LogEventRegister, 0, email, false, "email taken")
		}
		return nil, err
	}

	utils.LogAuth(constants.LogEventRegister, user.ID, user.Email, true, "")

	return s.issue(user)
}

// Login verifies credentials and returns a fresh access token
func (s *AuthService) Login(ctx context.Context, creds *models.UserCredentials) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventLogin, 0, creds.Email, false, "user not found")
			return nil, utils.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	match, err := auth.VerifyPassword(creds.Password, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, false, "invalid password")
		return nil, utils.NewInvalidCredentialsError()
	}

	utils.LogAuth(constants.LogEventLogin, user.ID, user.Email, true, "")

	return s.issue(user)
}

// Verify returns the identity behind a validated token
func (s *AuthService) Verify(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

func (s *AuthService) issue(user *models.User) (*models.AuthResponse, error) {
	accessToken, _, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.AuthResponse{
		User:        user.Sanitize(),
		AccessToken: accessToken,
		TokenType:   strings.TrimSpace(constants.BearerTokenPrefix),
		ExpiresIn:   s.tokens.ExpiresIn(),
	}, nil
}
