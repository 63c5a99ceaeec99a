// Package scripts provides utility scripts for database and system management.
//
// This package implements database seeding functionality to populate initial data
// required for the application to function properly. The seeding system works
// similarly to migrations, tracking executed seeds to ensure they only run once,
// making the process idempotent and safe to run on both new and existing databases.
package scripts

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/content"
	"github.com/coursecms/coursesite/internal/database"
	"github.com/coursecms/coursesite/internal/models"
)

// Seeder handles database seeding.
// It provides methods to run seeds that populate the database
// with initial required data.
type Seeder struct {
	db *database.Pool
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - db: A database connection pool to use for seeding
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(db *database.Pool) *Seeder {
	return &Seeder{
		db: db,
	}
}

// SeedDatabase seeds the database with initial data.
// It creates the seeds tracking table if it doesn't exist, then runs
// all seed functions that haven't been executed yet.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	if err := s.createSeedsTable(ctx); err != nil {
		return fmt.Errorf("failed to create seeds table: %w", err)
	}

	executedSeeds, err := s.getExecutedSeeds(ctx)
	if err != nil {
		return fmt.Errorf("failed to get executed seeds: %w", err)
	}

	seeds := []struct {
		Name     string
		SeedFunc func(ctx context.Context, tx *sql.Tx) error
	}{
		{"draft_baseline", s.seedDraftBaseline},
	}

	for _, seed := range seeds {
		if !executedSeeds[seed.Name] {
			log.Info().Str("seed", seed.Name).Msg("Running seed")
			if err := s.runSeed(ctx, seed.Name, seed.SeedFunc); err != nil {
				return err
			}
		} else {
			log.Debug().Str("seed", seed.Name).Msg("Seed already executed")
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// createSeedsTable creates the seeds table if it doesn't exist.
// This table tracks which seed operations have been executed.
func (s *Seeder) createSeedsTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS seeds (
			name VARCHAR(255) PRIMARY KEY,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// getExecutedSeeds returns a map of executed seeds.
// The map keys are seed names and values are always true.
func (s *Seeder) getExecutedSeeds(ctx context.Context) (map[string]bool, error) {
	query := `SELECT name FROM seeds`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close rows")
		}
	}()

	seeds := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		seeds[name] = true
	}

	return seeds, rows.Err()
}

// runSeed runs a seed function within a transaction.
// If the seed operation fails, the transaction is rolled back.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//   - name: The name of the seed operation
//   - seedFunc: The function that performs the seeding
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) runSeed(ctx context.Context, name string, seedFunc func(ctx context.Context, tx *sql.Tx) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := seedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", name, err)
		}

		query := s.db.Rebind(`INSERT INTO seeds (name) VALUES (?)`)
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			return fmt.Errorf("failed to record seed: %w", err)
		}

		return nil
	})
}

// BaselineDocuments returns the canonical encoding of every slot's seed value.
func BaselineDocuments() (map[models.SlotName][]byte, error) {
	values := map[models.SlotName]interface{}{
		models.SlotSiteSettings:  content.SeedSiteSettings(),
		models.SlotLandingPage:   content.SeedLandingPage(),
		models.SlotCourseModules: content.SeedModules(),
		models.SlotCourseInfo:    content.SeedCourseInfo(),
		models.SlotCourseFAQs:    content.SeedFAQs(),
	}

	docs := make(map[models.SlotName][]byte, len(values))
	for slot, v := range values {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode seed for %s: %w", slot, err)
		}
		docs[slot] = bytes.TrimRight(buf.Bytes(), "\n")
	}
	return docs, nil
}

// seedDraftBaseline stores the seed document of every slot that has no draft
// yet. Existing drafts are never overwritten.
func (s *Seeder) seedDraftBaseline(ctx context.Context, tx *sql.Tx) error {
	docs, err := BaselineDocuments()
	if err != nil {
		return err
	}

	countQuery := s.db.Rebind(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`,
		constants.TableDrafts, constants.ColumnSlot))
	insertQuery := s.db.Rebind(fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)`,
		constants.TableDrafts, constants.ColumnSlot, constants.ColumnDocument, constants.ColumnUpdatedAt))

	insertedCount := 0
	for _, slot := range models.AllSlots {
		var count int
		if err := tx.QueryRowContext(ctx, countQuery, string(slot)).Scan(&count); err != nil {
			return fmt.Errorf("failed to check draft %s: %w", slot, err)
		}
		if count > 0 {
			continue
		}

		if _, err := tx.ExecContext(ctx, insertQuery, string(slot), string(docs[slot]), time.Now()); err != nil {
			return fmt.Errorf("failed to insert draft %s: %w", slot, err)
		}
		insertedCount++
	}

	log.Info().
		Int("inserted_drafts", insertedCount).
		Msg("Draft baseline seeding completed")

	return nil
}
