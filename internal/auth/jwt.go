package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/utils"
)

// JWT errors
var (
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrMissingSecret        = errors.New("jwt secret is not configured")
)

// LearnerClaims identify a signed-in learner. The paid flag is deliberately
// absent: access is always resolved from the stored profile.
type LearnerClaims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService signs and checks learner access tokens (HS256).
type JWTService struct {
	Config *config.JWTSettings
	parser *jwt.Parser
}

// NewJWTService creates a new JWTService instance
func NewJWTService(config *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: config,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// GetConfig returns the token settings, falling back to defaults when unset.
func (s *JWTService) GetConfig() *config.JWTSettings {
	if s.Config == nil {
		return &config.JWTSettings{
			Expiry: constants.DefaultJWTExpiry,
			Issuer: constants.DefaultJWTIssuer,
		}
	}
	return s.Config
}

func (s *JWTService) key() ([]byte, error) {
	secret := s.GetConfig().Secret
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return []byte(secret), nil
}

// GenerateAccessToken generates a new JWT access token for an identity.
//
// Returns:
//   - The signed token string
//   - The token ID (jti)
//   - An error if no secret is configured or signing fails
func (s *JWTService) GenerateAccessToken(userID int64, email string) (string, string, error) {
	key, err := s.key()
	if err != nil {
		return "", "", err
	}

	cfg := s.GetConfig()
	now := time.Now()
	claims := LearnerClaims{
		UserID:    userID,
		Email:     email,
		TokenType: constants.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   utils.FormatInt64(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims.ID, nil
}

// ValidateToken checks signature, expiry, issuer and token type and returns
// the claims. Expired tokens map to utils.ErrExpiredToken, everything else to
// utils.ErrInvalidToken.
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*LearnerClaims, error) {
	key, err := s.key()
	if err != nil {
		return nil, utils.NewInvalidTokenError()
	}

	parser := s.parser
	if parser == nil {
		parser = jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}

	claims := &LearnerClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return key, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, utils.NewExpiredTokenError()
	case err != nil, !token.Valid:
		return nil, utils.NewInvalidTokenError()
	}

	issuer := s.GetConfig().Issuer
	if issuer != "" && !claims.VerifyIssuer(issuer, true) {
		return nil, utils.NewInvalidTokenError()
	}
	if claims.TokenType != expectedType {
		return nil, utils.NewInvalidTokenError()
	}
	return claims, nil
}

// ExpiresIn returns the lifetime of access tokens in seconds
func (s *JWTService) ExpiresIn() int64 {
	return int64(s.GetConfig().Expiry.Seconds())
}
