package migrations

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// createMockDBAndTx opens a mock database with a started transaction
func createMockDBAndTx(t *testing.T) (*sql.Tx, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	mock.ExpectBegin()
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	return tx, mock, func() {
		tx.Rollback()
		db.Close()
	}
}

func TestTableMigrationsRun(t *testing.T) {
	tests := []struct {
		migration Migration
		table     string
	}{
		{createUsersTable(), "users"},
		{createUserProfilesTable(), "user_profiles"},
		{createDraftsTable(), "drafts"},
	}

	for _, tt := range tests {
		for _, dialect := range []Dialect{{Postgres: true}, {Postgres: false}} {
			t.Run(tt.migration.Name, func(t *testing.T) {
				tx, mock, cleanup := createMockDBAndTx(t)
				defer cleanup()

				assert.Equal(t, tt.table, tt.migration.TableName)

				mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + tt.table).
					WillReturnResult(sqlmock.NewResult(0, 0))

				err := tt.migration.RunSQL(context.Background(), tx, dialect)

				assert.NoError(t, err)
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		}
	}
}

func TestDialectRendering(t *testing.T) {
	pg := strings.Join(createUsersTable().Statements(Dialect{Postgres: true}), "\n")
	assert.Contains(t, pg, "BIGSERIAL PRIMARY KEY")
	assert.NotContains(t, pg, "ENGINE=InnoDB")

	my := strings.Join(createUsersTable().Statements(Dialect{}), "\n")
	assert.Contains(t, my, "AUTO_INCREMENT")
	assert.Contains(t, my, "ON UPDATE CURRENT_TIMESTAMP")
	assert.Contains(t, my, "utf8mb4")

	drafts := strings.Join(createDraftsTable().Statements(Dialect{}), "\n")
	assert.Contains(t, drafts, "document LONGTEXT NOT NULL")
}
