// Package migrations evolves the practice_logs schema. Versions come from
// embedded NNNNNN_name.{up,down}.sql pairs and from Go steps registered in
// init; each version runs once, inside its own transaction.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"practice-log/internal/logging"
)

//go:embed *.sql
var sqlFiles embed.FS

// GoMigrationFunc runs a step that needs more than plain SQL.
type GoMigrationFunc func(tx *sql.Tx) error

// Migration is one schema version. Exactly one of the SQL pair or the Go
// pair is set.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
	UpFn    GoMigrationFunc
	DownFn  GoMigrationFunc
}

func (m Migration) up(tx *sql.Tx) error {
	if m.UpFn != nil {
		return m.UpFn(tx)
	}
	_, err := tx.Exec(m.Up)
	return err
}

func (m Migration) down(tx *sql.Tx) error {
	if m.DownFn != nil {
		return m.DownFn(tx)
	}
	_, err := tx.Exec(m.Down)
	return err
}

var registered = map[int]Migration{}

// RegisterGoMigration adds a code migration; called from init in this package.
func RegisterGoMigration(version int, name string, up, down GoMigrationFunc) {
	if _, dup := registered[version]; dup {
		panic(fmt.Sprintf("duplicate go migration version %d", version))
	}
	registered[version] = Migration{Version: version, Name: name, UpFn: up, DownFn: down}
}

const ledgerDDL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// RunMigrations applies every version not yet recorded in schema_migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	all, applied, err := prepare(ctx, db)
	if err != nil {
		return err
	}
	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if err := m.up(tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.Version, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		logging.Debug("applied migration", "version", m.Version, "name", m.Name)
	}
	return nil
}

// Rollback reverts applied versions above target, newest first.
func Rollback(ctx context.Context, db *sql.DB, target int) error {
	all, applied, err := prepare(ctx, db)
	if err != nil {
		return err
	}
	for i := len(all) - 1; i >= 0; i-- {
		m := all[i]
		if m.Version <= target || !applied[m.Version] {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if err := m.down(tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("revert migration %d (%s): %w", m.Version, m.Name, err)
		}
		logging.Debug("reverted migration", "version", m.Version, "name", m.Name)
	}
	return nil
}

func prepare(ctx context.Context, db *sql.DB) ([]Migration, map[int]bool, error) {
	if _, err := db.ExecContext(ctx, ledgerDDL); err != nil {
		return nil, nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	all, err := LoadMigrations()
	if err != nil {
		return nil, nil, fmt.Errorf("load migrations: %w", err)
	}
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	return all, applied, nil
}

// LoadMigrations merges the embedded SQL pairs with the registered Go
// steps, ordered by version. A version defined twice is an error.
func LoadMigrations() ([]Migration, error) {
	byVersion := make(map[int]Migration, len(registered))
	for v, m := range registered {
		byVersion[v] = m
	}

	ups, err := fs.Glob(sqlFiles, "*.up.sql")
	if err != nil {
		return nil, err
	}
	for _, upFile := range ups {
		version, name, ok := parseFilename(strings.TrimSuffix(upFile, ".up.sql"))
		if !ok {
			continue
		}
		if _, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("migration version %d defined twice", version)
		}
		up, err := sqlFiles.ReadFile(upFile)
		if err != nil {
			return nil, err
		}
		down, err := sqlFiles.ReadFile(strings.TrimSuffix(upFile, ".up.sql") + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %d has no down file: %w", version, err)
		}
		byVersion[version] = Migration{Version: version, Name: name, Up: string(up), Down: string(down)}
	}

	out := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// parseFilename splits "000001_create_practice_logs" into (1, "create_practice_logs").
func parseFilename(base string) (int, string, bool) {
	num, name, found := strings.Cut(base, "_")
	if !found {
		return 0, "", false
	}
	v, err := strconv.Atoi(num)
	if err != nil || v <= 0 {
		return 0, "", false
	}
	return v, name, true
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
