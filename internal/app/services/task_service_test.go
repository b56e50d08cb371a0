package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

func TestTaskService_ListTasks_InvalidCategory(t *testing.T) {
	svc := NewTaskService(newMockTaskRepo(), newMockSubmissionRepo(), zerolog.Nop())

	_, err := svc.ListTasks(context.Background(), "Platinum Package")
	if !errors.Is(err, apperrors.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestTaskService_ListTasks_StripsAnswerKeys(t *testing.T) {
	task := testTask()
	svc := NewTaskService(newMockTaskRepo(task), newMockSubmissionRepo(), zerolog.Nop())

	tasks, err := svc.ListTasks(context.Background(), models.CategoryDreamPackage)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("task count = %d, want 1", len(tasks))
	}

	view := tasks[0]
	if len(view.MCQs) != len(task.MCQs) {
		t.Fatalf("mcq count = %d, want %d", len(view.MCQs), len(task.MCQs))
	}
	for i, q := range view.MCQs {
		if q.Question == "" || len(q.Options) == 0 {
			t.Errorf("mcq %d lost its question text or options: %+v", i, q)
		}
	}
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	svc := NewTaskService(newMockTaskRepo(), newMockSubmissionRepo(), zerolog.Nop())

	_, err := svc.GetTask(context.Background(), 99, 1)
	if !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskService_GetTask_NotSubmitted(t *testing.T) {
	svc := NewTaskService(newMockTaskRepo(testTask()), newMockSubmissionRepo(), zerolog.Nop())

	detail, err := svc.GetTask(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if detail.SubmissionStatus != dto.SubmissionStateNotSubmitted {
		t.Errorf("status = %q, want %q", detail.SubmissionStatus, dto.SubmissionStateNotSubmitted)
	}
}

func TestTaskService_GetTask_Expired(t *testing.T) {
	task := testTask()
	task.Deadline = time.Now().Add(-time.Hour)
	svc := NewTaskService(newMockTaskRepo(task), newMockSubmissionRepo(), zerolog.Nop())

	detail, err := svc.GetTask(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if detail.SubmissionStatus != dto.SubmissionStateExpired {
		t.Errorf("status = %q, want %q", detail.SubmissionStatus, dto.SubmissionStateExpired)
	}
}

func TestTaskService_GetTask_SubmittedWinsOverExpired(t *testing.T) {
	task := testTask()
	task.Deadline = time.Now().Add(-time.Hour)
	submissionRepo := newMockSubmissionRepo()
	submissionRepo.submissions[submissionKey(1, 10)] = &models.StudentSubmission{
		ID: 3, StudentID: 1, TaskID: 10,
	}
	svc := NewTaskService(newMockTaskRepo(task), submissionRepo, zerolog.Nop())

	detail, err := svc.GetTask(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if detail.SubmissionStatus != dto.SubmissionStateSubmitted {
		t.Errorf("status = %q, want %q", detail.SubmissionStatus, dto.SubmissionStateSubmitted)
	}
}
