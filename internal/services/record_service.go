package services

import (
	"context"
	"strings"

	"practice-log/internal/domain"
	"practice-log/internal/repository"
	"practice-log/internal/validation"
)

// recordServiceImpl implements the RecordService interface
type recordServiceImpl struct {
	store     repository.Store
	mapper    *domain.PracticeLogMapper
	validator *validation.RecordValidator
}

// NewRecordService creates a new RecordService instance
func NewRecordService(store repository.Store, validator *validation.RecordValidator) RecordService {
	if validator == nil {
		validator = validation.NewRecordValidator()
	}
	return &recordServiceImpl{
		store:     store,
		mapper:    domain.NewPracticeLogMapper(),
		validator: validator,
	}
}

func (r *recordServiceImpl) Get(ctx context.Context, id string) (*domain.PracticeLog, error) {
	id = strings.TrimSpace(id)
	if err := r.validator.ValidateID(id); err != nil {
		return nil, err
	}
	rec, err := r.store.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	log := r.mapper.FromRecord(rec)
	return &log, nil
}

// Update replaces the editable fields of an existing record.
func (r *recordServiceImpl) Update(ctx context.Context, id string, input domain.CreateRecordInput) (*domain.PracticeLog, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	id = current.ID
	if err := r.validator.ValidateForUpdate(id, r.mapper.ToInput(*current), input); err != nil {
		return nil, err
	}
	rec := r.mapper.InputToRecord(input)
	rec.ID = id
	if err := r.store.UpdateRecord(ctx, rec); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *recordServiceImpl) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := r.validator.ValidateID(id); err != nil {
		return err
	}
	return r.store.DeleteRecord(ctx, id)
}
