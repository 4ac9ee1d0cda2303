package sqlite

import (
	"context"
	"database/sql"
	"time"

	"practice-log/internal/errors"
	"practice-log/internal/repository"
	"practice-log/internal/repository/dbutil"
	"practice-log/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Options tunes a SQLite repository.
type Options struct {
	Timeouts dbutil.Timeouts
	// Now stamps created_at/updated_at; defaults to time.Now.
	Now func() time.Time
}

// SQLiteRepository implements repository.Store on a local SQLite file.
type SQLiteRepository struct {
	db    *sql.DB
	table *dbutil.Table
}

var _ repository.Store = (*SQLiteRepository)(nil)

// New opens dbPath with default options.
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens dbPath, runs pending migrations and returns the store.
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	if dbPath == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{
		db:    db,
		table: dbutil.NewTable(db, dbutil.QuestionMark, opts.Timeouts, opts.Now),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateRecord(ctx context.Context, rec *repository.Record) error {
	return r.table.Insert(ctx, rec)
}

func (r *SQLiteRepository) ListRecords(ctx context.Context, opts repository.ListOptions) (*repository.Page, error) {
	return r.table.List(ctx, opts)
}

func (r *SQLiteRepository) GetRecord(ctx context.Context, id string) (*repository.Record, error) {
	return r.table.Get(ctx, id)
}

func (r *SQLiteRepository) UpdateRecord(ctx context.Context, rec *repository.Record) error {
	return r.table.Update(ctx, rec)
}

func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id string) error {
	return r.table.Delete(ctx, id)
}
