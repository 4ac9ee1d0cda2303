package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/errors"
	"practice-log/internal/repository"
)

func TestStore_CreateAssignsIdentity(t *testing.T) {
	fixed := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time { return fixed })
	ctx := context.Background()

	r := &repository.Record{Date: "3/5/2024", Category: "Batting", SubCategory: "Batting in nets @ Nets", Duration: 45}
	require.NoError(t, s.CreateRecord(ctx, r))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, fixed, r.CreatedAt)
	assert.Equal(t, fixed, r.UpdatedAt)

	got, err := s.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)
	assert.NotSame(t, r, got)
}

func TestStore_ListPaginates(t *testing.T) {
	s := New()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.CreateRecord(ctx, &repository.Record{Category: "Fitness", SubCategory: "Burpees"}))
	}

	page, err := s.ListRecords(ctx, repository.ListOptions{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	require.NotEmpty(t, page.NextToken)

	seen := len(page.Items)
	for page.NextToken != "" {
		page, err = s.ListRecords(ctx, repository.ListOptions{Limit: 2, NextToken: page.NextToken})
		require.NoError(t, err)
		seen += len(page.Items)
	}
	assert.Equal(t, 5, seen)
}

func TestStore_ListFilters(t *testing.T) {
	s := New()
	ctx := context.Background()
	require.NoError(t, s.CreateRecord(ctx, &repository.Record{Category: "Batting"}))
	require.NoError(t, s.CreateRecord(ctx, &repository.Record{Category: "Bowling"}))

	page, err := s.ListRecords(ctx, repository.ListOptions{Filter: repository.Filter{Category: "Bowling"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Bowling", page.Items[0].Category)
	assert.Empty(t, page.NextToken)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	r := &repository.Record{Category: "Fielding", Duration: 10}
	require.NoError(t, s.CreateRecord(ctx, r))

	r.Duration = 20
	require.NoError(t, s.UpdateRecord(ctx, r))
	got, err := s.GetRecord(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.Duration)

	require.NoError(t, s.DeleteRecord(ctx, r.ID))
	assert.Equal(t, 0, s.Len())

	_, err = s.GetRecord(ctx, r.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.True(t, errors.IsErrorType(s.DeleteRecord(ctx, r.ID), errors.ErrorTypeNotFound))
	assert.True(t, errors.IsErrorType(s.UpdateRecord(ctx, r), errors.ErrorTypeNotFound))
}

func TestStore_CancelledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.CreateRecord(ctx, &repository.Record{}), context.Canceled)
	_, err := s.ListRecords(ctx, repository.ListOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}
