// Package repository declares the practice log data API shared by every
// storage backend (SQLite, PostgreSQL, the managed GraphQL service and the
// in-process memory store).
package repository

import (
	"context"
	"time"
)

// Record is a stored practice log as the backends see it.
type Record struct {
	ID          string
	Date        string
	Category    string
	SubCategory string
	Duration    int
	Location    string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows a list call. Empty fields match everything.
type Filter struct {
	Category string
	Date     string
}

// ListOptions controls one page of a list call.
type ListOptions struct {
	Limit     int
	NextToken string
	Filter    Filter
}

// Page is one page of records plus the token for the next page, which is
// empty on the last page.
type Page struct {
	Items     []*Record
	NextToken string
}

// Store is the create/list/get/update/delete surface of the practice log
// data API. Implementations must be safe for concurrent use.
type Store interface {
	// CreateRecord persists r and fills in ID, CreatedAt and UpdatedAt.
	CreateRecord(ctx context.Context, r *Record) error
	ListRecords(ctx context.Context, opts ListOptions) (*Page, error)
	GetRecord(ctx context.Context, id string) (*Record, error)
	// UpdateRecord overwrites the mutable fields and refreshes UpdatedAt.
	UpdateRecord(ctx context.Context, r *Record) error
	DeleteRecord(ctx context.Context, id string) error
	Close() error
}

// DefaultPageSize is used when ListOptions.Limit is not positive.
const DefaultPageSize = 100

// PageLimit returns the effective page size for opts.
func PageLimit(opts ListOptions) int {
	if opts.Limit <= 0 {
		return DefaultPageSize
	}
	return opts.Limit
}

// Matches reports whether r passes f.
func (f Filter) Matches(r *Record) bool {
	if f.Category != "" && f.Category != r.Category {
		return false
	}
	if f.Date != "" && f.Date != r.Date {
		return false
	}
	return true
}
