package services

import (
	"context"
	"sort"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/logging"
	"practice-log/internal/repository"
)

// HistoryResult is a successful history read. Logs are newest first.
type HistoryResult struct {
	Logs []domain.PracticeLog `json:"logs"`
}

// Empty reports whether nothing has been logged yet.
func (h *HistoryResult) Empty() bool {
	return len(h.Logs) == 0
}

// Summary totals minutes per category in category display order, skipping
// categories with no sessions.
func (h *HistoryResult) Summary() []CategorySummary {
	totals := make(map[domain.Category]*CategorySummary)
	var extra []domain.Category
	for _, l := range h.Logs {
		s, ok := totals[l.Category]
		if !ok {
			s = &CategorySummary{Category: l.Category}
			totals[l.Category] = s
			if !l.Category.IsValid() {
				extra = append(extra, l.Category)
			}
		}
		s.Sessions++
		s.TotalMinutes += l.Duration
	}

	var out []CategorySummary
	for _, c := range append(append([]domain.Category{}, domain.Categories...), extra...) {
		if s, ok := totals[c]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// historyServiceImpl implements the HistoryService interface
type historyServiceImpl struct {
	store    repository.Store
	mapper   *domain.PracticeLogMapper
	pageSize int
}

// NewHistoryService creates a HistoryService reading pageSize records per call
func NewHistoryService(store repository.Store, pageSize int) HistoryService {
	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	return &historyServiceImpl{
		store:    store,
		mapper:   domain.NewPracticeLogMapper(),
		pageSize: pageSize,
	}
}

// History follows next tokens until the store reports the last page.
func (h *historyServiceImpl) History(ctx context.Context, query HistoryQuery) (*HistoryResult, error) {
	opts := repository.ListOptions{
		Limit:  h.pageSize,
		Filter: repository.Filter{Category: string(query.Category), Date: query.Date},
	}

	var records []*repository.Record
	seen := make(map[string]bool)
	pages := 0
	for {
		page, err := h.store.ListRecords(ctx, opts)
		if err != nil {
			return nil, errors.NewRemoteError("list practice logs", err).WithContext("pages", pages)
		}
		pages++
		records = append(records, page.Items...)

		if page.NextToken == "" {
			break
		}
		if seen[page.NextToken] {
			logging.Warn("history pagination repeated a token", "pages", pages)
			break
		}
		seen[page.NextToken] = true
		opts.NextToken = page.NextToken
	}
	logging.Debug("history loaded", "records", len(records), "pages", pages)

	logs := h.mapper.FromRecordSlice(records)
	SortNewestFirst(logs)
	return &HistoryResult{Logs: logs}, nil
}

// SortNewestFirst orders logs by CreatedAt descending, ties by ID descending.
func SortNewestFirst(logs []domain.PracticeLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].CreatedAt.Equal(logs[j].CreatedAt) {
			return logs[i].CreatedAt.After(logs[j].CreatedAt)
		}
		return logs[i].ID > logs[j].ID
	})
}
