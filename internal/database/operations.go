package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrRecordNotFound is returned when a lookup or update matches no row.
var ErrRecordNotFound = errors.New("record not found")

// Table represents a database table with common methods
type Table interface {
	TableName() string
}

// CRUD provides generic database operations for models whose fields carry
// db tags. The key column is the first tag ending in _id.
type CRUD struct {
	DB *Pool
	q  Querier
}

// NewCRUD creates a new CRUD instance with the given database pool
func NewCRUD(db *Pool) *CRUD {
	return &CRUD{DB: db, q: db.DB}
}

// WithTx returns a CRUD that runs its statements inside tx.
func (c *CRUD) WithTx(tx *sql.Tx) *CRUD {
	return &CRUD{DB: c.DB, q: tx}
}

// column describes one db-tagged struct field.
type column struct {
	name  string
	value reflect.Value
}

// columnsOf lists the db-tagged fields of model along with its key column.
func columnsOf(model Table) (cols []column, key column) {
	modelType := reflect.TypeOf(model).Elem()
	modelValue := reflect.ValueOf(model).Elem()

	for i := 0; i < modelType.NumField(); i++ {
		tag := modelType.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		col := column{name: tag, value: modelValue.Field(i)}
		if key.name == "" && strings.HasSuffix(tag, "_id") {
			key = col
		}
		cols = append(cols, col)
	}
	return cols, key
}

// Create inserts a new record. A zero key is treated as database-generated
// and is written back into the model after the insert.
func (c *CRUD) Create(ctx context.Context, model Table) error {
	cols, key := columnsOf(model)
	generated := key.name != "" && isZeroValue(key.value)

	var names, placeholders []string
	var values []interface{}
	for _, col := range cols {
		if generated && col.name == key.name {
			continue
		}
		names = append(names, col.name)
		placeholders = append(placeholders, "?")
		values = append(values, col.value.Interface())
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		model.TableName(),
		strings.Join(names, ", "),
		strings.Join(placeholders, ", "),
	)

	start := time.Now()
	defer func() {
		log.Debug().Str("table", model.TableName()).Dur("duration", time.Since(start)).Msg("Creating database record")
	}()

	if !generated {
		if _, err := c.q.ExecContext(ctx, c.DB.Rebind(query), values...); err != nil {
			return fmt.Errorf("failed to create record in %s: %w", model.TableName(), err)
		}
		return nil
	}

	var id int64
	if c.DB.IsPostgres() {
		// lib/pq does not implement LastInsertId
		query += " RETURNING " + key.name
		if err := c.q.QueryRowContext(ctx, c.DB.Rebind(query), values...).Scan(&id); err != nil {
			return fmt.Errorf("failed to create record in %s: %w", model.TableName(), err)
		}
	} else {
		result, err := c.q.ExecContext(ctx, query, values...)
		if err != nil {
			return fmt.Errorf("failed to create record in %s: %w", model.TableName(), err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get last insert ID: %w", err)
		}
	}

	key.value.Set(reflect.ValueOf(id).Convert(key.value.Type()))
	return nil
}

// GetByID loads the record whose key column equals id into model.
// It returns ErrRecordNotFound when no row matches.
func (c *CRUD) GetByID(ctx context.Context, model Table, id interface{}) error {
	cols, key := columnsOf(model)
	if key.name == "" {
		return fmt.Errorf("%s has no key column", model.TableName())
	}

	names := make([]string, len(cols))
	dest := make([]interface{}, len(cols))
	for i, col := range cols {
		names[i] = col.name
		dest[i] = col.value.Addr().Interface()
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ?",
		strings.Join(names, ", "),
		model.TableName(),
		key.name,
	)

	log.Debug().
		Str("query", query).
		Interface("id", id).
		Str("table", model.TableName()).
		Msg("Getting database record by ID")

	if err := c.q.QueryRowContext(ctx, c.DB.Rebind(query), id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %v: %w", model.TableName(), id, ErrRecordNotFound)
		}
		return fmt.Errorf("failed to get record from %s: %w", model.TableName(), err)
	}

	return nil
}

// Update writes every non-key column of model. It returns ErrRecordNotFound
// when the key matches no row.
func (c *CRUD) Update(ctx context.Context, model Table) error {
	cols, key := columnsOf(model)
	if key.name == "" {
		return fmt.Errorf("%s has no key column", model.TableName())
	}

	var sets []string
	var values []interface{}
	for _, col := range cols {
		if col.name == key.name {
			continue
		}
		sets = append(sets, col.name+" = ?")
		values = append(values, col.value.Interface())
	}
	values = append(values, key.value.Interface())

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ?",
		model.TableName(),
		strings.Join(sets, ", "),
		key.name,
	)

	log.Debug().
		Str("query", query).
		Str("table", model.TableName()).
		Msg("Updating database record")

	result, err := c.q.ExecContext(ctx, c.DB.Rebind(query), values...)
	if err != nil {
		return fmt.Errorf("failed to update record in %s: %w", model.TableName(), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %v: %w", model.TableName(), key.value.Interface(), ErrRecordNotFound)
	}

	return nil
}

// Count gets the count of records in a table with optional conditions
func (c *CRUD) Count(ctx context.Context, model Table, conditions map[string]interface{}) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", model.TableName())

	var where []string
	var params []interface{}
	for key, value := range conditions {
		where = append(where, fmt.Sprintf("%s = ?", key))
		params = append(params, value)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	var count int64
	if err := c.q.QueryRowContext(ctx, c.DB.Rebind(query), params...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records in %s: %w", model.TableName(), err)
	}

	return count, nil
}

// isZeroValue reports whether v holds the zero value of its type
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return v.IsZero()
}
