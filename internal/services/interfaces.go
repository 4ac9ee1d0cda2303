package services

import (
	"context"

	"practice-log/internal/config"
	"practice-log/internal/domain"
	"practice-log/internal/repository"
	"practice-log/internal/validation"
)

// HistoryQuery narrows a history read. Zero values match everything.
type HistoryQuery struct {
	Category domain.Category `json:"category,omitempty"`
	Date     string          `json:"date,omitempty"`
}

// CategorySummary totals the logged minutes of one category
type CategorySummary struct {
	Category     domain.Category `json:"category"`
	Sessions     int             `json:"sessions"`
	TotalMinutes int             `json:"total_minutes"`
}

// SubmissionService stores the entries of a completed logging form
type SubmissionService interface {
	// Submit creates one record per input concurrently and waits for all
	// of them. Any failure fails the whole submission without rollback.
	Submit(ctx context.Context, inputs []domain.CreateRecordInput) (*domain.SubmitResult, error)
}

// HistoryService reads every stored practice log, newest first
type HistoryService interface {
	History(ctx context.Context, query HistoryQuery) (*HistoryResult, error)
}

// RecordService exposes the maintenance operations on single records
type RecordService interface {
	Get(ctx context.Context, id string) (*domain.PracticeLog, error)
	Update(ctx context.Context, id string, input domain.CreateRecordInput) (*domain.PracticeLog, error)
	Delete(ctx context.Context, id string) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	SubmissionService SubmissionService
	HistoryService    HistoryService
	RecordService     RecordService
}

// NewServiceContainer wires every service to store using cfg limits
func NewServiceContainer(store repository.Store, cfg *config.Config) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	validator := validation.NewRecordValidatorWithConfig(cfg)

	return &ServiceContainer{
		SubmissionService: NewSubmissionService(store, validator, cfg.Submission.MaxConcurrency),
		HistoryService:    NewHistoryService(store, cfg.Remote.PageSize),
		RecordService:     NewRecordService(store, validator),
	}
}
