package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/database"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// ProfileRepository defines methods for the per-identity profile document
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	EnsureDefault(ctx context.Context, userID int64) (*models.UserProfile, error)
	SetPaid(ctx context.Context, userID int64) error
}

// SQLProfileRepository is the database/sql implementation of ProfileRepository
type SQLProfileRepository struct {
	db   *database.Pool
	crud *database.CRUD
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *database.Pool) ProfileRepository {
	return &SQLProfileRepository{
		db:   db,
		crud: database.NewCRUD(db),
	}
}

// GetByUserID retrieves the profile of a user
func (r *SQLProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	if err := r.crud.GetByID(ctx, profile, userID); err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("UserProfile", userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// EnsureDefault returns the profile of a user, creating the unpaid default
// when none exists yet. Identities created before profiles existed, or whose
// profile write was lost, recover here.
func (r *SQLProfileRepository) EnsureDefault(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !utils.IsNotFoundError(err) {
		return nil, err
	}

	profile = models.NewUserProfile(userID)
	if err := r.crud.Create(ctx, profile); err != nil {
		// A concurrent request created it first
		if utils.IsDuplicateKeyError(err) {
			return r.GetByUserID(ctx, userID)
		}
		return nil, fmt.Errorf("failed to create default profile: %w", err)
	}

	log.Info().Int64(constants.UserIDContextKey, userID).Msg("Created default profile")
	return profile, nil
}

// SetPaid marks the user as paid. The write merges into an existing profile
// and creates one when missing; repeated calls leave the flag set.
func (r *SQLProfileRepository) SetPaid(ctx context.Context, userID int64) error {
	startTime := time.Now()
	now := time.Now()

	query := r.db.Rebind(`
        INSERT INTO user_profiles (user_id, has_paid, created_at, updated_at)
        VALUES (?, ?, ?, ?)` +
		r.db.Upsert([]string{constants.ColumnUserID}, []string{constants.ColumnHasPaid, constants.ColumnUpdatedAt}))

	_, err := r.db.ExecContext(ctx, query, userID, true, now, now)

	utils.LogDBQuery(query, []interface{}{userID, true, now, now}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to set paid flag: %w", err)
	}

	log.Info().Int64(constants.UserIDContextKey, userID).Msg("Profile marked as paid")
	return nil
}
