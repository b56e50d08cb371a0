package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// TaskService serves the read surface for weekly tasks. Responses are
// always the sanitized views; answer keys stay server-side.
type TaskService struct {
	taskRepo       repositories.ITaskRepository
	submissionRepo repositories.ISubmissionRepository
	logger         zerolog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repositories.ITaskRepository,
	submissionRepo repositories.ISubmissionRepository,
	logger zerolog.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// ListTasks returns a category's weekly tasks ordered by week
func (s *TaskService) ListTasks(ctx context.Context, category models.Category) ([]dto.TaskResponse, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	tasks, err := s.taskRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly tasks: %w", err)
	}

	responses := make([]dto.TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = dto.NewTaskResponse(t)
	}
	return responses, nil
}

// GetTask returns a single task with the caller's submission state:
// submitted wins over expired, expired over notSubmitted.
func (s *TaskService) GetTask(ctx context.Context, taskID, studentID int64) (*dto.TaskDetailResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	status := dto.SubmissionStateNotSubmitted
	_, err = s.submissionRepo.GetByStudentAndTask(ctx, studentID, taskID)
	switch {
	case err == nil:
		status = dto.SubmissionStateSubmitted
	case errors.Is(err, apperrors.ErrSubmissionNotFound):
		if task.DeadlinePassed(time.Now()) {
			status = dto.SubmissionStateExpired
		}
	default:
		return nil, fmt.Errorf("failed to check submission state: %w", err)
	}

	return &dto.TaskDetailResponse{
		TaskResponse:     dto.NewTaskResponse(task),
		SubmissionStatus: status,
	}, nil
}
