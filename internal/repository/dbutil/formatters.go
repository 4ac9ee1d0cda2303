package dbutil

import (
	"time"
)

// dbTimeLayout is fixed-width so created_at sorts lexically in SQL.
const dbTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTimeForDB formats a time.Time value in UTC for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeLayout)
}

// ParseTimeFromDB parses a stored timestamp. Plain RFC3339 values written
// by other tools are accepted as well.
func ParseTimeFromDB(s string) (time.Time, error) {
	if t, err := time.Parse(dbTimeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
