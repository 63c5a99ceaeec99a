// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines table and column names so SQL statements
// and migrations refer to the same identifiers.
package constants

// Table names.
const (
	// TableUsers stores identities (email + password hash).
	TableUsers = "users"

	// TableUserProfiles stores the per-identity profile document (paid flag).
	TableUserProfiles = "user_profiles"

	// TableDrafts stores the JSON document of every draft slot.
	TableDrafts = "drafts"
)

// Column names.
const (
	ColumnUserID       = "user_id"
	ColumnEmail        = "email"
	ColumnPasswordHash = "password_hash"
	ColumnSlot         = "slot"
	ColumnDocument     = "document"
	ColumnHasPaid      = "has_paid"
	ColumnCreatedAt    = "created_at"
	ColumnUpdatedAt    = "updated_at"
)
