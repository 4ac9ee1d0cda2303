package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"practice-log/internal/domain"
	"practice-log/internal/errors"
	"practice-log/internal/logging"
	"practice-log/internal/repository"
	"practice-log/internal/validation"
)

// submissionServiceImpl implements the SubmissionService interface
type submissionServiceImpl struct {
	store          repository.Store
	mapper         *domain.PracticeLogMapper
	validator      *validation.RecordValidator
	maxConcurrency int
}

// NewSubmissionService creates a SubmissionService running at most
// maxConcurrency creates at a time.
func NewSubmissionService(store repository.Store, validator *validation.RecordValidator, maxConcurrency int) SubmissionService {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if validator == nil {
		validator = validation.NewRecordValidator()
	}
	return &submissionServiceImpl{
		store:          store,
		mapper:         domain.NewPracticeLogMapper(),
		validator:      validator,
		maxConcurrency: maxConcurrency,
	}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, inputs []domain.CreateRecordInput) (*domain.SubmitResult, error) {
	if len(inputs) == 0 {
		return nil, errors.NewValidationError(domain.NoticeEmpty, nil)
	}
	for i, in := range inputs {
		if err := s.validator.ValidateForCreation(in); err != nil {
			if appErr, ok := errors.AsAppError(err); ok {
				appErr.WithContext("entry", i+1)
			}
			return nil, err
		}
	}

	start := time.Now()
	created := make([]*repository.Record, len(inputs))

	// Siblings are not cancelled when one create fails.
	var g errgroup.Group
	g.SetLimit(s.maxConcurrency)
	for i, in := range inputs {
		g.Go(func() error {
			rec := s.mapper.InputToRecord(in)
			if err := s.store.CreateRecord(ctx, rec); err != nil {
				return err
			}
			created[i] = rec
			return nil
		})
	}
	err := g.Wait()

	result := &domain.SubmitResult{}
	for _, rec := range created {
		if rec != nil {
			result.Created = append(result.Created, s.mapper.FromRecord(rec))
		}
	}

	if err != nil {
		remoteErr := errors.NewRemoteError("submit practice logs", err).
			WithContext("requested", len(inputs)).
			WithContext("created", len(result.Created))
		logging.Error("submission failed", remoteErr.KeyVals()...)
		result.Notice = fmt.Sprintf("failed to save practice log: %v", err)
		return result, remoteErr
	}

	logging.Info("submission saved", "count", len(result.Created), "elapsed", time.Since(start))
	result.Notice = domain.NoticeSaved
	return result, nil
}
