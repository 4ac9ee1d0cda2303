// Package memory is an in-process repository.Store used by tests and the
// "testing" environment.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"practice-log/internal/errors"
	"practice-log/internal/repository"
)

// Store keeps records in insertion order.
type Store struct {
	mu      sync.RWMutex
	records []*repository.Record
	now     func() time.Time
}

var _ repository.Store = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock creates an empty store that stamps records using now.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

func (s *Store) CreateRecord(ctx context.Context, r *repository.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	r.ID = uuid.NewString()
	r.CreatedAt = now
	r.UpdatedAt = now

	cp := *r
	s.records = append(s.records, &cp)
	return nil
}

func (s *Store) ListRecords(ctx context.Context, opts repository.ListOptions) (*repository.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offset, err := repository.DecodeOffsetToken(opts.NextToken)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*repository.Record
	for _, r := range s.records {
		if opts.Filter.Matches(r) {
			matched = append(matched, r)
		}
	}

	limit := repository.PageLimit(opts)
	page := &repository.Page{}
	if offset >= len(matched) {
		return page, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	for _, r := range matched[offset:end] {
		cp := *r
		page.Items = append(page.Items, &cp)
	}
	if end < len(matched) {
		page.NextToken = repository.EncodeOffsetToken(end)
	}
	return page, nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (*repository.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		cp := *s.records[i]
		return &cp, nil
	}
	return nil, errors.NewNotFoundError("practice log", id)
}

func (s *Store) UpdateRecord(ctx context.Context, r *repository.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(r.ID)
	if i < 0 {
		return errors.NewNotFoundError("practice log", r.ID)
	}
	r.CreatedAt = s.records[i].CreatedAt
	r.UpdatedAt = s.now().UTC()
	cp := *r
	s.records[i] = &cp
	return nil
}

func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("practice log", id)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
