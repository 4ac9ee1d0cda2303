package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"practice-log/internal/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockStore is a testify mock of repository.Store.
type mockStore struct {
	mock.Mock
}

var _ repository.Store = (*mockStore)(nil)

func (m *mockStore) CreateRecord(ctx context.Context, r *repository.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockStore) ListRecords(ctx context.Context, opts repository.ListOptions) (*repository.Page, error) {
	args := m.Called(ctx, opts)
	page, _ := args.Get(0).(*repository.Page)
	return page, args.Error(1)
}

func (m *mockStore) GetRecord(ctx context.Context, id string) (*repository.Record, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*repository.Record)
	return rec, args.Error(1)
}

func (m *mockStore) UpdateRecord(ctx context.Context, r *repository.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockStore) DeleteRecord(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) Close() error {
	return m.Called().Error(0)
}
