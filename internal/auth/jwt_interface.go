package auth

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string, expectedType string) (*LearnerClaims, error)
}

// TokenIssuer issues access tokens after signup or login
type TokenIssuer interface {
	GenerateAccessToken(userID int64, email string) (string, string, error)
	ExpiresIn() int64
}
