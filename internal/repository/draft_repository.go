package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/coursecms/coursesite/internal/constants"
	"github.com/coursecms/coursesite/internal/database"
	"github.com/coursecms/coursesite/internal/draftstore"
	"github.com/coursecms/coursesite/internal/models"
	"github.com/coursecms/coursesite/internal/utils"
)

// DraftRepository persists draft slot documents in the drafts table.
// It satisfies draftstore.Backend.
type DraftRepository struct {
	db *database.Pool
}

var _ draftstore.Backend = (*DraftRepository)(nil)

// NewDraftRepository creates a draft backend over the database pool
func NewDraftRepository(db *database.Pool) *DraftRepository {
	return &DraftRepository{db: db}
}

// Read returns the stored document of a slot. found is false for a slot
// that was never written.
func (r *DraftRepository) Read(ctx context.Context, slot models.SlotName) ([]byte, bool, error) {
	startTime := time.Now()

	query := r.db.Rebind(`SELECT document FROM drafts WHERE slot = ?`)

	var document string
	err := r.db.QueryRowContext(ctx, query, string(slot)).Scan(&document)

	utils.LogDBQuery(query, []interface{}{string(slot)}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read draft %s: %w", slot, err)
	}

	return []byte(document), true, nil
}

// Write replaces the stored document of a slot.
func (r *DraftRepository) Write(ctx context.Context, slot models.SlotName, data []byte) error {
	startTime := time.Now()

	query := r.db.Rebind(`INSERT INTO drafts (slot, document, updated_at) VALUES (?, ?, ?)` +
		r.db.Upsert([]string{constants.ColumnSlot}, []string{constants.ColumnDocument, constants.ColumnUpdatedAt}))

	args := []interface{}{string(slot), string(data), time.Now()}
	_, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to write draft %s: %w", slot, err)
	}
	return nil
}
