package dbutil

import (
	"fmt"
	"strings"

	"practice-log/internal/repository"
)

// Placeholder renders the n-th (1-based) bind parameter for a dialect.
type Placeholder func(n int) string

// QuestionMark is the SQLite placeholder style.
func QuestionMark(int) string { return "?" }

// Dollar is the PostgreSQL placeholder style.
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// BuildListQuery renders one page of practice logs in creation order.
// It fetches limit+1 rows so the caller can tell whether another page exists.
func BuildListQuery(ph Placeholder, filter repository.Filter, limit, offset int) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, "category = "+ph(len(args)))
	}
	if filter.Date != "" {
		args = append(args, filter.Date)
		conditions = append(conditions, "date = "+ph(len(args)))
	}

	query := "SELECT " + RecordColumns + " FROM practice_logs"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, limit+1)
	query += " ORDER BY created_at ASC, id ASC LIMIT " + ph(len(args))
	args = append(args, offset)
	query += " OFFSET " + ph(len(args))

	return query, args
}

// TrimPage cuts a limit+1 result set down to one page and computes the
// next token.
func TrimPage(items []*repository.Record, limit, offset int) *repository.Page {
	page := &repository.Page{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		page.NextToken = repository.EncodeOffsetToken(offset + limit)
	}
	return page
}
