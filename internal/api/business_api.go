package api

import (
	"context"
	"time"

	"practice-log/internal/calendar"
	"practice-log/internal/config"
	"practice-log/internal/domain"
	"practice-log/internal/flow"
	"practice-log/internal/repository"
	"practice-log/internal/services"
)

// CategoryInfo describes a category and the drills logged under it
type CategoryInfo struct {
	Category domain.Category `json:"category"`
	Drills   []string        `json:"drills,omitempty"`
}

// BusinessAPI defines the business-logic-only interface for practice logging
type BusinessAPI interface {
	// ========== Logging Workflow ==========

	// NewLogFlow starts a logging flow using the configured date layout
	NewLogFlow() *flow.Flow

	// SubmitFlow submits the flow's form; the flow stays on the form on error
	SubmitFlow(ctx context.Context, f *flow.Flow) (*domain.SubmitResult, error)

	// ========== Query Operations ==========

	// GetHistory returns every practice log, newest first
	GetHistory(ctx context.Context, query services.HistoryQuery) (*services.HistoryResult, error)

	// GetRecord returns a single practice log by ID
	GetRecord(ctx context.Context, id string) (*domain.PracticeLog, error)

	// ========== Maintenance Operations ==========

	// UpdateRecord replaces the editable fields of a practice log
	UpdateRecord(ctx context.Context, id string, input domain.CreateRecordInput) (*domain.PracticeLog, error)

	// DeleteRecord removes a practice log
	DeleteRecord(ctx context.Context, id string) error

	// ========== Catalog and Calendar ==========

	// Categories lists the categories with their drills
	Categories() []CategoryInfo

	// Calendar builds the grid for a zero-based month
	Calendar(year, month int) calendar.Month

	// Today is the current local date, used as the calendar's default month
	Today() time.Time
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services *services.ServiceContainer
	config   *config.Config
	now      func() time.Time
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(store repository.Store, cfg *config.Config) BusinessAPI {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &businessAPIImpl{
		services: services.NewServiceContainer(store, cfg),
		config:   cfg,
		now:      time.Now,
	}
}

// ========== Logging Workflow ==========

func (b *businessAPIImpl) NewLogFlow() *flow.Flow {
	return flow.NewWithOptions(flow.Options{
		DateFormat:   b.config.Time.DateFormat,
		FitnessLines: b.config.Submission.FitnessLines,
	})
}

func (b *businessAPIImpl) SubmitFlow(ctx context.Context, f *flow.Flow) (*domain.SubmitResult, error) {
	return f.Submit(ctx, b.services.SubmissionService)
}

// ========== Query Operations ==========

func (b *businessAPIImpl) GetHistory(ctx context.Context, query services.HistoryQuery) (*services.HistoryResult, error) {
	return b.services.HistoryService.History(ctx, query)
}

func (b *businessAPIImpl) GetRecord(ctx context.Context, id string) (*domain.PracticeLog, error) {
	return b.services.RecordService.Get(ctx, id)
}

// ========== Maintenance Operations ==========

func (b *businessAPIImpl) UpdateRecord(ctx context.Context, id string, input domain.CreateRecordInput) (*domain.PracticeLog, error) {
	return b.services.RecordService.Update(ctx, id, input)
}

func (b *businessAPIImpl) DeleteRecord(ctx context.Context, id string) error {
	return b.services.RecordService.Delete(ctx, id)
}

// ========== Catalog and Calendar ==========

func (b *businessAPIImpl) Categories() []CategoryInfo {
	infos := make([]CategoryInfo, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		infos = append(infos, CategoryInfo{Category: c, Drills: domain.Drills(c)})
	}
	return infos
}

func (b *businessAPIImpl) Calendar(year, month int) calendar.Month {
	return calendar.Build(year, month)
}

func (b *businessAPIImpl) Today() time.Time {
	return b.now()
}
