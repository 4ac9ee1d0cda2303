// Package postgres implements the practice log store on PostgreSQL via lib/pq.
package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"practice-log/internal/errors"
	"practice-log/internal/logging"
	"practice-log/internal/repository"
	"practice-log/internal/repository/dbutil"
)

//go:embed schema.sql
var schemaSQL string

var (
	ErrInvalidConnectionString = stderrors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = stderrors.New("connection string must not contain a password")
)

// Store is a repository.Store backed by PostgreSQL.
type Store struct {
	db    *sql.DB
	table *dbutil.Table
}

var _ repository.Store = (*Store)(nil)

// ValidateConnString accepts URI or key=value DSNs and rejects embedded
// passwords; credentials belong in PGPASSWORD or ~/.pgpass.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return ErrEmbeddedCredentials
		}
		return nil
	}

	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

// Open validates connStr, connects and ensures the schema exists.
func Open(ctx context.Context, connStr string, timeouts dbutil.Timeouts) (*Store, error) {
	if err := ValidateConnString(connStr); err != nil {
		return nil, errors.NewValidationError("invalid postgres connection string", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") {
			return nil, errors.WrapError(err, errors.ErrorTypeDatabase,
				"failed to connect to database (hint: add sslmode=disable)")
		}
		return nil, errors.NewDatabaseError("connect", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("create schema", err)
	}
	logging.Debug("postgres store ready")

	return &Store{db: db, table: dbutil.NewTable(db, dbutil.Dollar, timeouts, nil)}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateRecord(ctx context.Context, rec *repository.Record) error {
	return s.table.Insert(ctx, rec)
}

func (s *Store) ListRecords(ctx context.Context, opts repository.ListOptions) (*repository.Page, error) {
	return s.table.List(ctx, opts)
}

func (s *Store) GetRecord(ctx context.Context, id string) (*repository.Record, error) {
	return s.table.Get(ctx, id)
}

func (s *Store) UpdateRecord(ctx context.Context, rec *repository.Record) error {
	return s.table.Update(ctx, rec)
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	return s.table.Delete(ctx, id)
}
