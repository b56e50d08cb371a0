package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
	"github.com/campus2corporate/portal/internal/pkg/grading"
)

// SubmissionService orchestrates the weekly task submission workflow:
// guards, grading, evaluation and the transactional write.
type SubmissionService struct {
	userRepo       repositories.IUserRepository
	taskRepo       repositories.ITaskRepository
	submissionRepo repositories.ISubmissionRepository
	evaluation     *EvaluationService
	txRunner       TxRunner
	logger         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	userRepo repositories.IUserRepository,
	taskRepo repositories.ITaskRepository,
	submissionRepo repositories.ISubmissionRepository,
	evaluation *EvaluationService,
	txRunner TxRunner,
	logger zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		evaluation:     evaluation,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// SubmitTask handles a single atomic submission payload. An existing
// submission for the task is returned as-is and never re-graded. The
// insert and the progress bump share one transaction.
func (s *SubmissionService) SubmitTask(ctx context.Context, studentID, taskID int64, req *dto.SubmitTaskRequest) (*dto.SubmissionResultResponse, error) {
	student, err := s.userRepo.GetStudentByUserID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	if student.Category == nil || *student.Category != req.Category {
		return nil, apperrors.ErrCategoryMismatch
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	// Duplicate guard before the deadline check: a graded task stays
	// graded, so a resubmit redirects to the stored row even after the
	// deadline has passed.
	if existing, err := s.submissionRepo.GetByStudentAndTask(ctx, studentID, taskID); err == nil {
		s.logger.Info().Int64("studentID", studentID).Int64("taskID", taskID).
			Msg("Returning existing submission for resubmitted task")
		return dto.NewSubmissionResultResponse(existing, true), nil
	} else if !errors.Is(err, apperrors.ErrSubmissionNotFound) {
		return nil, fmt.Errorf("failed to check for existing submission: %w", err)
	}

	if task.DeadlinePassed(time.Now()) {
		return nil, apperrors.ErrDeadlinePassed
	}

	mcqScore := grading.ScoreMCQ(req.MCQAnswers, task.MCQs)
	codingFeedback, codingSum := s.evaluation.EvaluateSolutions(ctx, task.CodingQuestions, req.CodingSolutions)
	codingScore := grading.RoundCodingScore(codingSum)
	totalScore := mcqScore + codingScore

	if codingFeedback == nil {
		codingFeedback = []models.CodingFeedback{}
	}

	submission := &models.StudentSubmission{
		StudentID:       studentID,
		TaskID:          taskID,
		Week:            task.Week,
		Category:        req.Category,
		SubmittedAt:     time.Now(),
		MCQAnswers:      req.MCQAnswers,
		CodingSolutions: req.CodingSolutions,
		MCQScore:        mcqScore,
		CodingScore:     codingScore,
		TotalScore:      totalScore,
		Evaluated:       true,
		CodingFeedback:  codingFeedback,
	}

	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		if err := s.submissionRepo.Insert(txCtx, tx, submission); err != nil {
			return err
		}

		applied, err := s.userRepo.ApplyTaskProgress(txCtx, tx, studentID, req.Category, task.Week, totalScore)
		if err != nil {
			return err
		}
		if !applied {
			// Category changed between the guard and the write; the
			// submission still stands, the progress bump is skipped.
			s.logger.Debug().Int64("studentID", studentID).Int64("taskID", taskID).
				Msg("Progress update skipped: student category changed mid-submission")
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateSubmission) {
			// A concurrent request won the unique-constraint race;
			// return its stored row instead of an error.
			existing, getErr := s.submissionRepo.GetByStudentAndTask(ctx, studentID, taskID)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load concurrent submission: %w", getErr)
			}
			return dto.NewSubmissionResultResponse(existing, true), nil
		}
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Int64("taskID", taskID).
		Int("mcqScore", mcqScore).Int("codingScore", codingScore).Int("totalScore", totalScore).
		Msg("Submission graded and stored")

	return dto.NewSubmissionResultResponse(submission, false), nil
}

// GetMySubmission returns the caller's stored submission for a task
func (s *SubmissionService) GetMySubmission(ctx context.Context, studentID, taskID int64) (*dto.SubmissionResultResponse, error) {
	submission, err := s.submissionRepo.GetByStudentAndTask(ctx, studentID, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubmissionNotFound) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}
	return dto.NewSubmissionResultResponse(submission, false), nil
}

// ListMySubmissions returns the caller's submissions, newest first
func (s *SubmissionService) ListMySubmissions(ctx context.Context, studentID int64) ([]*models.StudentSubmission, error) {
	submissions, err := s.submissionRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}
