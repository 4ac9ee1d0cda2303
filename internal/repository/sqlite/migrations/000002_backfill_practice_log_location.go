package migrations

import (
	"database/sql"
	"fmt"
	"strings"
)

func init() {
	RegisterGoMigration(2, "backfill_practice_log_location", Up_000002_backfill_practice_log_location, Down_000002_backfill_practice_log_location)
}

// LocationSeparator joins a drill name and its location in sub_category.
const LocationSeparator = " @ "

// Up_000002_backfill_practice_log_location copies the location out of
// "<drill> @ <where>" sub-categories for rows written before location had
// its own column value.
func Up_000002_backfill_practice_log_location(tx *sql.Tx) error {
	type row struct {
		id          string
		subCategory string
	}
	var pending []row

	rows, err := tx.Query(`SELECT id, sub_category FROM practice_logs WHERE location = '' AND sub_category LIKE ?`, "%"+LocationSeparator+"%")
	if err != nil {
		return fmt.Errorf("failed to query practice logs: %w", err)
	}
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.subCategory); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan practice log: %w", err)
		}
		pending = append(pending, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating practice logs: %w", err)
	}
	rows.Close()

	stmt, err := tx.Prepare(`UPDATE practice_logs SET location = ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare location update: %w", err)
	}
	defer stmt.Close()

	for _, r := range pending {
		loc := SplitLocation(r.subCategory)
		if loc == "" {
			continue
		}
		if _, err := stmt.Exec(loc, r.id); err != nil {
			return fmt.Errorf("failed to update practice log %s: %w", r.id, err)
		}
	}
	return nil
}

// Down_000002_backfill_practice_log_location is a no-op: the backfilled
// values are indistinguishable from ones written by the application.
func Down_000002_backfill_practice_log_location(tx *sql.Tx) error {
	return nil
}

// SplitLocation returns the trimmed text after the last separator, or "".
func SplitLocation(subCategory string) string {
	i := strings.LastIndex(subCategory, LocationSeparator)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(subCategory[i+len(LocationSeparator):])
}
