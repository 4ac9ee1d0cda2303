package dbutil

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"practice-log/internal/errors"
	"practice-log/internal/repository"
)

const entity = "practice log"

// Table runs the practice_logs statements for one SQL dialect. Both SQL
// stores delegate to it.
type Table struct {
	db       *sql.DB
	ph       Placeholder
	timeouts Timeouts
	now      func() time.Time
}

// NewTable wraps db. now stamps created_at/updated_at and defaults to
// time.Now.
func NewTable(db *sql.DB, ph Placeholder, timeouts Timeouts, now func() time.Time) *Table {
	if now == nil {
		now = time.Now
	}
	return &Table{db: db, ph: ph, timeouts: timeouts, now: now}
}

// rebind rewrites ? markers into the table's placeholder style.
func (t *Table) rebind(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(t.ph(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Insert stores rec under a fresh UUID and fills its ID and timestamps.
func (t *Table) Insert(ctx context.Context, rec *repository.Record) error {
	ctx, cancel := WithTimeout(ctx, t.timeouts.Write)
	defer cancel()

	now := t.now().UTC()
	id := uuid.NewString()
	query := t.rebind(`INSERT INTO practice_logs (` + RecordColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := t.db.ExecContext(ctx, query,
		id, rec.Date, rec.Category, rec.SubCategory, rec.Duration, rec.Location, rec.Notes,
		FormatTimeForDB(now), FormatTimeForDB(now))
	if err != nil {
		return HandleDatabaseError("insert practice log", err)
	}
	rec.ID = id
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return nil
}

// List returns one page in creation order.
func (t *Table) List(ctx context.Context, opts repository.ListOptions) (*repository.Page, error) {
	offset, err := repository.DecodeOffsetToken(opts.NextToken)
	if err != nil {
		return nil, err
	}
	limit := repository.PageLimit(opts)

	ctx, cancel := WithTimeout(ctx, t.timeouts.Query)
	defer cancel()

	query, args := BuildListQuery(t.ph, opts.Filter, limit, offset)
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("list practice logs", err)
	}
	defer rows.Close()

	items, err := ScanRecords(rows)
	if err != nil {
		return nil, HandleDatabaseError("scan practice logs", err)
	}
	return TrimPage(items, limit, offset), nil
}

func (t *Table) Get(ctx context.Context, id string) (*repository.Record, error) {
	ctx, cancel := WithTimeout(ctx, t.timeouts.Query)
	defer cancel()

	row := t.db.QueryRowContext(ctx, t.rebind(`SELECT `+RecordColumns+` FROM practice_logs WHERE id = ?`), id)
	rec, err := ScanRecord(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(entity, id)
	}
	if err != nil {
		return nil, HandleDatabaseError("get practice log", err)
	}
	return rec, nil
}

// Update overwrites every mutable column of rec and bumps updated_at.
func (t *Table) Update(ctx context.Context, rec *repository.Record) error {
	ctx, cancel := WithTimeout(ctx, t.timeouts.Write)
	defer cancel()

	now := t.now().UTC()
	query := t.rebind(`UPDATE practice_logs
	SET date = ?, category = ?, sub_category = ?, duration = ?, location = ?, notes = ?, updated_at = ?
	WHERE id = ?`)

	result, err := t.db.ExecContext(ctx, query,
		rec.Date, rec.Category, rec.SubCategory, rec.Duration, rec.Location, rec.Notes,
		FormatTimeForDB(now), rec.ID)
	if err != nil {
		return HandleDatabaseError("update practice log", err)
	}
	if err := requireRow(result, rec.ID); err != nil {
		return err
	}
	rec.UpdatedAt = now
	return nil
}

func (t *Table) Delete(ctx context.Context, id string) error {
	ctx, cancel := WithTimeout(ctx, t.timeouts.Write)
	defer cancel()

	result, err := t.db.ExecContext(ctx, t.rebind(`DELETE FROM practice_logs WHERE id = ?`), id)
	if err != nil {
		return HandleDatabaseError("delete practice log", err)
	}
	return requireRow(result, id)
}
