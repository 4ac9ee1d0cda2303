package dbutil

import (
	"fmt"

	"practice-log/internal/repository"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Rows is the iteration half of *sql.Rows.
type Rows interface {
	Scanner
	Next() bool
	Err() error
}

// RecordColumns is the column order ScanRecord expects.
const RecordColumns = `id, date, category, sub_category, duration, location, notes, created_at, updated_at`

// ScanRecord reads one row laid out as RecordColumns. Timestamps are stored
// as text and parsed here.
func ScanRecord(s Scanner) (*repository.Record, error) {
	var (
		r                    repository.Record
		createdAt, updatedAt string
	)
	dest := []any{&r.ID, &r.Date, &r.Category, &r.SubCategory, &r.Duration, &r.Location, &r.Notes, &createdAt, &updatedAt}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if r.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("practice log %s created_at: %w", r.ID, err)
	}
	if r.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("practice log %s updated_at: %w", r.ID, err)
	}
	return &r, nil
}

// ScanRecords drains rows. The caller closes them.
func ScanRecords(rows Rows) ([]*repository.Record, error) {
	var out []*repository.Record
	for rows.Next() {
		r, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
