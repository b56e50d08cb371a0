package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// ProgressService manages a student's category choice and the
// content/resource completion state.
type ProgressService struct {
	userRepo    repositories.IUserRepository
	contentRepo repositories.IContentRepository
	txRunner    TxRunner
	logger      zerolog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	userRepo repositories.IUserRepository,
	contentRepo repositories.IContentRepository,
	txRunner TxRunner,
	logger zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		userRepo:    userRepo,
		contentRepo: contentRepo,
		txRunner:    txRunner,
		logger:      logger,
	}
}

// SelectCategory sets the student's preparation track. When the request
// asks for a reset, the category write and the progress zero-state land
// in a single atomic statement.
func (s *ProgressService) SelectCategory(ctx context.Context, studentID int64, req *dto.SelectCategoryRequest) (*dto.StudentProfileResponse, error) {
	if !req.Category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	if err := s.userRepo.SetCategory(ctx, studentID, req.Category, req.ResetProgress); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to set category: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Str("category", string(req.Category)).
		Bool("reset", req.ResetProgress).Msg("Student category updated")

	student, err := s.userRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload student: %w", err)
	}
	return dto.NewStudentProfileResponse(student), nil
}

// MarkContentCompleted idempotently adds a week to completedContent.
// The payload's studentId must match the session.
func (s *ProgressService) MarkContentCompleted(ctx context.Context, sessionUserID int64, req *dto.MarkContentCompletedRequest) (*models.Progress, error) {
	if req.StudentID != sessionUserID {
		return nil, apperrors.ErrOwnershipMismatch
	}

	var progress models.Progress
	err := s.txRunner.WithTransaction(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		student, err := s.userRepo.GetStudentForUpdate(txCtx, tx, req.StudentID)
		if err != nil {
			return err
		}

		student.Progress.AddCompletedContent(req.WeekNumber)
		if err := s.userRepo.UpdateProgress(txCtx, tx, req.StudentID, student.Progress); err != nil {
			return err
		}

		progress = student.Progress
		return nil
	})

	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to mark content completed: %w", err)
	}

	return &progress, nil
}

// MarkResourceCompleted sets or clears one resource's completion flag,
// then recomputes the week's completion against the week's content
// under the same row lock. A missing WeeklyContent for the student's
// (category, week) leaves completedContent untouched; the flag write
// still succeeds.
func (s *ProgressService) MarkResourceCompleted(ctx context.Context, sessionUserID int64, req *dto.MarkResourceRequest) (*models.Progress, error) {
	if req.StudentID != sessionUserID {
		return nil, apperrors.ErrOwnershipMismatch
	}

	var progress models.Progress
	err := s.txRunner.WithTransaction(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		student, err := s.userRepo.GetStudentForUpdate(txCtx, tx, req.StudentID)
		if err != nil {
			return err
		}

		key := models.ResourceKey(req.WeekNumber, req.ResourceIndex)
		if student.Progress.ResourceCompletions == nil {
			student.Progress.ResourceCompletions = map[string]bool{}
		}
		if req.Completed {
			student.Progress.ResourceCompletions[key] = true
		} else {
			delete(student.Progress.ResourceCompletions, key)
		}

		s.recomputeWeekCompletion(txCtx, student, req.WeekNumber)

		if err := s.userRepo.UpdateProgress(txCtx, tx, req.StudentID, student.Progress); err != nil {
			return err
		}

		progress = student.Progress
		return nil
	})

	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to mark resource completed: %w", err)
	}

	return &progress, nil
}

// recomputeWeekCompletion re-derives a week's completedContent entry
// from the per-resource flags and the week's resource count.
func (s *ProgressService) recomputeWeekCompletion(ctx context.Context, student *models.Student, week int) {
	if student.Category == nil {
		return
	}

	content, err := s.contentRepo.GetByCategoryAndWeek(ctx, *student.Category, week)
	if err != nil {
		if !errors.Is(err, apperrors.ErrContentNotFound) {
			s.logger.Warn().Err(err).Int("week", week).Msg("Could not load week content for completion recompute")
		}
		return
	}

	// A week with no resources is vacuously complete
	allDone := true
	for i := range content.Resources {
		if !student.Progress.ResourceCompletions[models.ResourceKey(week, i)] {
			allDone = false
			break
		}
	}

	if allDone {
		student.Progress.AddCompletedContent(week)
	} else {
		student.Progress.RemoveCompletedContent(week)
	}
}
