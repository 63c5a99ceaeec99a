package migrations

// Dialect renders the column types that differ between PostgreSQL and MySQL.
type Dialect struct {
	Postgres bool
}

// AutoIncrementKey is a generated BIGINT primary key column type.
func (d Dialect) AutoIncrementKey() string {
	if d.Postgres {
		return "BIGSERIAL PRIMARY KEY"
	}
	return "BIGINT AUTO_INCREMENT PRIMARY KEY"
}

// Document is a column type able to hold a whole site slot. MySQL TEXT caps
// at 64KiB, which a module list with embed markup can exceed.
func (d Dialect) Document() string {
	if d.Postgres {
		return "TEXT"
	}
	return "LONGTEXT"
}

// UpdatedAt is a timestamp column kept current by the database where the
// dialect supports it.
func (d Dialect) UpdatedAt() string {
	if d.Postgres {
		return "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP"
	}
	return "TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"
}

// TableOptions is appended after a CREATE TABLE column list.
func (d Dialect) TableOptions() string {
	if d.Postgres {
		return ""
	}
	return " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci"
}

// CurrentSchema is the SQL expression naming the connected schema.
func (d Dialect) CurrentSchema() string {
	if d.Postgres {
		return "current_schema()"
	}
	return "DATABASE()"
}
