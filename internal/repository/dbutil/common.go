// Package dbutil holds the database/sql plumbing shared by the SQLite and
// PostgreSQL stores.
package dbutil

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"practice-log/internal/errors"
)

// Timeouts bounds individual statements. Zero disables a bound.
type Timeouts struct {
	Query time.Duration
	Write time.Duration
}

// WithTimeout derives a context bounded by d when d is positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// HandleDatabaseError classifies a driver error: deadlines become timeouts,
// everything else a database error.
func HandleDatabaseError(operation string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(operation, err.Error())
	}
	return errors.NewDatabaseError(operation, err)
}

// requireRow turns "nothing matched" into a not-found error for id.
func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return HandleDatabaseError("rows affected", err)
	}
	if n == 0 {
		return errors.NewNotFoundError(entity, id)
	}
	return nil
}
