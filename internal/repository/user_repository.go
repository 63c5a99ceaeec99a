package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/database"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// UserRepository defines methods for interacting with identities
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User) (*models.UserProfile, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// SQLUserRepository is the database/sql implementation of UserRepository
type SQLUserRepository struct {
	db   *database.Pool
	crud *database.CRUD
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &SQLUserRepository{
		db:   db,
		crud: database.NewCRUD(db),
	}
}

// CreateWithProfile inserts a user together with its default profile in one
// transaction, so an identity never exists without its paid flag.
func (r *SQLUserRepository) CreateWithProfile(ctx context.Context, user *models.User) (*models.UserProfile, error) {
	startTime := time.Now()

	now := time.Now()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.CreatedAt = now
	user.UpdatedAt = now

	var profile *models.UserProfile
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		crud := r.crud.WithTx(tx)
		if err := crud.Create(ctx, user); err != nil {
			return err
		}

		profile = models.NewUserProfile(user.ID)
		return crud.Create(ctx, profile)
	})

	utils.LogDBQuery(
		"INSERT INTO users ...; INSERT INTO user_profiles ...",
		[]interface{}{user.Email, constants.LogRedactedValue},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, utils.NewDuplicateError("User", constants.ColumnEmail, user.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64(constants.UserIDContextKey, user.ID).
		Msg("User created")

	return profile, nil
}

// GetByID retrieves a user by ID
func (r *SQLUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	if err := r.crud.GetByID(ctx, user, id); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email, ignoring case
func (r *SQLUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	query := r.db.Rebind(`
        SELECT user_id, email, password_hash, salt, created_at, updated_at
        FROM users
        WHERE LOWER(email) = LOWER(?)
    `)

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Salt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", utils.MaskEmail(email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user with the given email exists
func (r *SQLUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	startTime := time.Now()

	query := r.db.Rebind(`SELECT COUNT(*) FROM users WHERE LOWER(email) = LOWER(?)`)

	var count int
	err := r.db.QueryRowContext(ctx, query, email).Scan(&count)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return count > 0, nil
}
