package database

import (
	"database/sql"
	"fmt"
	"sync"
)

// SQLiteDatabase implements Database interface for SQLite.
type SQLiteDatabase struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteDatabase creates a new SQLite database instance.
func NewSQLiteDatabase() (Database, error) {
	return &SQLiteDatabase{}, nil
}

// Connect establishes connection to SQLite database.
func (s *SQLiteDatabase) Connect(connectionString string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// For now, return a placeholder implementation
	// In a real implementation, this would use a proper SQLite driver
	return fmt.Errorf("SQLite driver not available in this build")
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks database connectivity.
func (s *SQLiteDatabase) Ping() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	return s.db.Ping()
}

// BeginTransaction starts a new transaction.
func (s *SQLiteDatabase) BeginTransaction() (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	return &SQLiteTransaction{tx: tx}, nil
}

// Execute executes a query without returning rows.
func (s *SQLiteDatabase) Execute(query string, args ...interface{}) (Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return nil, err
	}

	return &SQLiteResult{result: result}, nil
}

// Query executes a query that returns rows.
func (s *SQLiteDatabase) Query(query string, args ...interface{}) (Rows, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, fmt.Errorf("database not connected")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	return &SQLiteRows{rows: rows}, nil
}

// QueryRow executes a query that returns a single row.
func (s *SQLiteDatabase) QueryRow(query string, args ...interface{}) Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return &SQLiteRow{err: fmt.Errorf("database not connected")}
	}

	row := s.db.QueryRow(query, args...)
	return &SQLiteRow{row: row}
}

// SQLiteTransaction implements Transaction interface for SQLite.
type SQLiteTransaction struct {
	tx *sql.Tx
}

// Commit commits the transaction.
func (t *SQLiteTransaction) Commit() error {
	return t.tx.Commit()
}

// Rollback rolls back the transaction.
func (t *SQLiteTransaction) Rollback() error {
	return t.tx.Rollback()
}

// Execute executes a query within the transaction.
func (t *SQLiteTransaction) Execute(query string, args ...interface{}) (Result, error) {
	result, err := t.tx.Exec(query, args...)
	if err != nil {
		return nil, err
	}
	return &SQLiteResult{result: result}, nil
}

// Query executes a query within the transaction.
func (t *SQLiteTransaction) Query(query string, args ...interface{}) (Rows, error) {
	rows, err := t.tx.Query(query, args...)
	if err != nil {
		return nil, err
	}
	return &SQLiteRows{rows: rows}, nil
}

// QueryRow executes a single-row query within the transaction.
func (t *SQLiteTransaction) QueryRow(query string, args ...interface{}) Row {
	row := t.tx.QueryRow(query, args...)
	return &SQLiteRow{row: row}
}

// SQLiteResult implements Result interface for SQLite.
type SQLiteResult struct {
	result sql.Result
}

// LastInsertID returns the last inserted ID.
func (r *SQLiteResult) LastInsertID() (int64, error) {
	return r.result.LastInsertId()
}

// RowsAffected returns the number of affected rows.
func (r *SQLiteResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}

// SQLiteRows implements Rows interface for SQLite.
type SQLiteRows struct {
	rows *sql.Rows
}

// Next advances to the next row.
func (r *SQLiteRows) Next() bool {
	return r.rows.Next()
}

// Scan copies column values into dest.
func (r *SQLiteRows) Scan(dest ...interface{}) error {
	return r.rows.Scan(dest...)
}

// Close closes the rows.
func (r *SQLiteRows) Close() error {
	return r.rows.Close()
}

// Columns returns column names.
func (r *SQLiteRows) Columns() ([]string, error) {
	return r.rows.Columns()
}

// Err returns any error encountered during iteration.
func (r *SQLiteRows) Err() error {
	return r.rows.Err()
}

// SQLiteRow implements Row interface for SQLite.
type SQLiteRow struct {
	row *sql.Row
	err error
}

// Scan copies column values into dest.
func (r *SQLiteRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	return r.row.Scan(dest...)
}

// Placeholder implementations for other database types
// These would be implemented when the corresponding drivers are available

// NewPostgreSQLDatabase creates a new PostgreSQL database instance.
func NewPostgreSQLDatabase() (Database, error) {
	return nil, fmt.Errorf("PostgreSQL support not yet implemented")
}

// NewMySQLDatabase creates a new MySQL database instance.
func NewMySQLDatabase() (Database, error) {
	return nil, fmt.Errorf("MySQL support not yet implemented")
}

// NewMongoDatabase creates a new MongoDB database instance.
func NewMongoDatabase() (Database, error) {
	return nil, fmt.Errorf("MongoDB support not yet implemented")
}

// NewRedisDatabase creates a new Redis database instance.
func NewRedisDatabase() (Database, error) {
	return nil, fmt.Errorf("Redis support not yet implemented")
}

// InMemoryDatabase implements an in-memory database for testing.
type InMemoryDatabase struct {
	tables map[string][]map[string]interface{}
	mu     sync.RWMutex
}

// NewInMemoryDatabase creates a new in-memory database instance.
func NewInMemoryDatabase() (Database, error) {
	return &InMemoryDatabase{
		tables: make(map[string][]map[string]interface{}),
	}, nil
}

// Connect is a no-op for in-memory database.
func (im *InMemoryDatabase) Connect(connectionString string) error {
	return nil
}

// Close is a no-op for in-memory database.
func (im *InMemoryDatabase) Close() error {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.tables = make(map[string][]map[string]interface{})
	return nil
}

// Ping always returns nil for in-memory database.
func (im *InMemoryDatabase) Ping() error {
	return nil
}

// BeginTransaction returns a mock transaction.
func (im *InMemoryDatabase) BeginTransaction() (Transaction, error) {
	return &InMemoryTransaction{db: im}, nil
}

// Execute executes a mock query.
func (im *InMemoryDatabase) Execute(query string, args ...interface{}) (Result, error) {
	// Simplified implementation for demo purposes
	return &InMemoryResult{lastID: 1, affected: 1}, nil
}

// Query executes a mock query that returns rows.
func (im *InMemoryDatabase) Query(query string, args ...interface{}) (Rows, error) {
	// Simplified implementation for demo purposes
	return &InMemoryRows{}, nil
}

// QueryRow executes a mock single-row query.
func (im *InMemoryDatabase) QueryRow(query string, args ...interface{}) Row {
	return &InMemoryRow{}
}

// InMemoryTransaction implements Transaction for in-memory database.
type InMemoryTransaction struct {
	db *InMemoryDatabase
}

func (t *InMemoryTransaction) Commit() error   { return nil }
func (t *InMemoryTransaction) Rollback() error { return nil }

func (t *InMemoryTransaction) Execute(query string, args ...interface{}) (Result, error) {
	return t.db.Execute(query, args...)
}

func (t *InMemoryTransaction) Query(query string, args ...interface{}) (Rows, error) {
	return t.db.Query(query, args...)
}

func (t *InMemoryTransaction) QueryRow(query string, args ...interface{}) Row {
	return t.db.QueryRow(query, args...)
}

// InMemoryResult implements Result for in-memory database.
type InMemoryResult struct {
	lastID   int64
	affected int64
}

func (r *InMemoryResult) LastInsertID() (int64, error) { return r.lastID, nil }
func (r *InMemoryResult) RowsAffected() (int64, error) { return r.affected, nil }

// InMemoryRows implements Rows for in-memory database.
type InMemoryRows struct {
	closed bool
}

func (r *InMemoryRows) Next() bool                     { return false }
func (r *InMemoryRows) Scan(dest ...interface{}) error { return nil }
func (r *InMemoryRows) Close() error                   { r.closed = true; return nil }
func (r *InMemoryRows) Columns() ([]string, error)     { return []string{}, nil }
func (r *InMemoryRows) Err() error                     { return nil }

// InMemoryRow implements Row for in-memory database.
type InMemoryRow struct{}

func (r *InMemoryRow) Scan(dest ...interface{}) error { return nil }
