package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practice-log/internal/errors"
	"practice-log/internal/repository"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "pl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	rec := &repository.Record{
		Date:        "3/5/2024",
		Category:    "Batting",
		SubCategory: "Batting in nets @ Nets",
		Duration:    45,
		Location:    "Nets",
	}
	require.NoError(t, repo.CreateRecord(ctx, rec))
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)

	got, err := repo.GetRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Batting in nets @ Nets", got.SubCategory)
	assert.Equal(t, 45, got.Duration)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt))
}

func TestGetRecord_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetRecord(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestListRecords_PagesInCreationOrder(t *testing.T) {
	tick := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	repo, err := NewWithOptions(filepath.Join(t.TempDir(), "pl.db"), Options{
		Now: func() time.Time { tick = tick.Add(time.Second); return tick },
	})
	require.NoError(t, err)
	defer repo.Close()
	ctx := context.Background()

	for _, sub := range []string{"Pushups", "Squats", "Burpees"} {
		require.NoError(t, repo.CreateRecord(ctx, &repository.Record{Date: "3/5/2024", Category: "Fitness", SubCategory: sub}))
	}

	page, err := repo.ListRecords(ctx, repository.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Pushups", page.Items[0].SubCategory)
	require.NotEmpty(t, page.NextToken)

	page, err = repo.ListRecords(ctx, repository.ListOptions{Limit: 2, NextToken: page.NextToken})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Burpees", page.Items[0].SubCategory)
	assert.Empty(t, page.NextToken)
}

func TestListRecords_Filter(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateRecord(ctx, &repository.Record{Date: "3/5/2024", Category: "Batting"}))
	require.NoError(t, repo.CreateRecord(ctx, &repository.Record{Date: "3/6/2024", Category: "Batting"}))
	require.NoError(t, repo.CreateRecord(ctx, &repository.Record{Date: "3/5/2024", Category: "Bowling"}))

	page, err := repo.ListRecords(ctx, repository.ListOptions{Filter: repository.Filter{Category: "Batting", Date: "3/5/2024"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "3/5/2024", page.Items[0].Date)
}

func TestListRecords_BadToken(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.ListRecords(context.Background(), repository.ListOptions{NextToken: "%%%"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestUpdateAndDeleteRecord(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	rec := &repository.Record{Date: "3/5/2024", Category: "Fielding", SubCategory: "Catching practice @ Park", Duration: 15}
	require.NoError(t, repo.CreateRecord(ctx, rec))

	rec.Duration = 30
	rec.Notes = "high catches"
	require.NoError(t, repo.UpdateRecord(ctx, rec))

	got, err := repo.GetRecord(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Duration)
	assert.Equal(t, "high catches", got.Notes)

	require.NoError(t, repo.DeleteRecord(ctx, rec.ID))
	err = repo.DeleteRecord(ctx, rec.ID)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	missing := &repository.Record{ID: "missing"}
	assert.True(t, errors.IsErrorType(repo.UpdateRecord(ctx, missing), errors.ErrorTypeNotFound))
}

func TestCreateRecord_Concurrent(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.CreateRecord(ctx, &repository.Record{Date: "3/5/2024", Category: "Fitness", SubCategory: "Plank"}))
		}()
	}
	wg.Wait()

	page, err := repo.ListRecords(ctx, repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 8)
}

func TestInMemoryDatabase(t *testing.T) {
	repo, err := New(":memory:")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.CreateRecord(context.Background(), &repository.Record{Category: "Bowling"}))
	page, err := repo.ListRecords(context.Background(), repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}
