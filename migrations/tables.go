package migrations

import (
	"fmt"

	"github.com/coursecms/coursesite/internal/constants"
)

// createUsersTable creates the users table
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   constants.TableUsers,
		Statements: func(d Dialect) []string {
			return []string{fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS users (
					user_id %s,
					email VARCHAR(255) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					salt VARCHAR(255) NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at %s,
					CONSTRAINT idx_email UNIQUE (email)
				)%s`, d.AutoIncrementKey(), d.UpdatedAt(), d.TableOptions())}
		},
	}
}

// createUserProfilesTable creates the per-identity profile table. A row is
// keyed by its user and removed with it.
func createUserProfilesTable() Migration {
	return Migration{
		Name:        "create_user_profiles_table",
		Description: "Creates the user_profiles table",
		TableName:   constants.TableUserProfiles,
		Statements: func(d Dialect) []string {
			return []string{fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS user_profiles (
					user_id BIGINT PRIMARY KEY,
					has_paid BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at %s,
					CONSTRAINT fk_profile_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
				)%s`, d.UpdatedAt(), d.TableOptions())}
		},
	}
}

// createDraftsTable creates the draft slot table, one row per slot.
func createDraftsTable() Migration {
	return Migration{
		Name:        "create_drafts_table",
		Description: "Creates the drafts table",
		TableName:   constants.TableDrafts,
		Statements: func(d Dialect) []string {
			return []string{fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS drafts (
					slot VARCHAR(64) PRIMARY KEY,
					document %s NOT NULL,
					updated_at %s
				)%s`, d.Document(), d.UpdatedAt(), d.TableOptions())}
		},
	}
}
