package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/constants"
)

// ErrMalformedHash is returned when a stored hash or salt cannot be decoded.
var ErrMalformedHash = errors.New("malformed password hash")

// PasswordConfig holds the Argon2id parameters used for learner passwords.
type PasswordConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultPasswordConfig returns the production Argon2id parameters.
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Memory:      constants.DefaultPasswordHashMemory,
		Iterations:  constants.DefaultPasswordHashIterations,
		Parallelism: constants.DefaultPasswordHashParallelism,
		SaltLength:  constants.DefaultPasswordHashSaltLength,
		KeyLength:   constants.DefaultPasswordHashKeyLength,
	}
}

// ConfigFromAppConfig reads the password_hash section. An unset section
// yields the defaults.
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	if cfg == nil || cfg.PasswordHash.Memory == 0 {
		return DefaultPasswordConfig()
	}
	h := cfg.PasswordHash
	return &PasswordConfig{
		Memory:      h.Memory,
		Iterations:  h.Iterations,
		Parallelism: h.Parallelism,
		SaltLength:  h.SaltLength,
		KeyLength:   h.KeyLength,
	}
}

// derive runs Argon2id with keyLen output bytes.
func (c *PasswordConfig) derive(password string, salt []byte, keyLen uint32) []byte {
	return argon2.IDKey([]byte(password), salt, c.Iterations, c.Memory, c.Parallelism, keyLen)
}

// HashPassword hashes password with a fresh random salt.
//
// Returns:
//   - The base64 encoded hash
//   - The base64 encoded salt, stored next to the hash
//   - An error if no random salt could be read
func HashPassword(password string, cfg *PasswordConfig) (string, string, error) {
	salt := make([]byte, cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := cfg.derive(password, salt, cfg.KeyLength)
	return base64.StdEncoding.EncodeToString(hash), base64.StdEncoding.EncodeToString(salt), nil
}

// VerifyPassword reports whether password matches the stored hash and salt.
// The comparison key length follows the stored hash, so raising KeyLength in
// configuration does not lock out existing learners.
func VerifyPassword(password, encodedHash, encodedSalt string, cfg *PasswordConfig) (bool, error) {
	hash, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil || len(hash) == 0 {
		return false, fmt.Errorf("%w: hash", ErrMalformedHash)
	}
	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, fmt.Errorf("%w: salt", ErrMalformedHash)
	}

	candidate := cfg.derive(password, salt, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, candidate) == 1, nil
}
