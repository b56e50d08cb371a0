package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/db"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

func testCategory(c models.Category) *models.Category {
	return &c
}

func testTask() *models.WeeklyTask {
	return &models.WeeklyTask{
		ID:       10,
		Week:     1,
		Category: models.CategoryDreamPackage,
		Title:    "Week 1 Assessment",
		Deadline: time.Now().Add(24 * time.Hour),
		MCQs: []models.MCQQuestion{
			{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
			{Question: "Q2", Options: []string{"a", "b"}, CorrectAnswer: 0},
		},
		CodingQuestions: []models.CodingQuestion{
			{Question: "Reverse a string", TestCases: []models.TestCase{{Input: "ab", ExpectedOutput: "ba"}}},
		},
	}
}

func newSubmissionFixture(judge *scriptedJudge) (*SubmissionService, *mockUserRepo, *mockTaskRepo, *mockSubmissionRepo) {
	userRepo := newMockUserRepo()
	userRepo.addStudent(&models.Student{
		User:     models.User{Name: "Priya", Email: "priya@college.edu"},
		Category: testCategory(models.CategoryDreamPackage),
		Progress: models.NewProgress(),
	})

	taskRepo := newMockTaskRepo(testTask())
	submissionRepo := newMockSubmissionRepo()
	evaluation := NewEvaluationService(judge, time.Second, zerolog.Nop())

	svc := NewSubmissionService(userRepo, taskRepo, submissionRepo, evaluation, &fakeTxRunner{}, zerolog.Nop())
	return svc, userRepo, taskRepo, submissionRepo
}

func TestSubmissionService_SubmitTask_GradesAndStores(t *testing.T) {
	judge := &scriptedJudge{responses: []string{
		`{"score": 0.8, "feedback": "good", "passesAllTests": true, "performance": 90, "readability": 85, "correctness": 95, "identifiedIssues": []}`,
	}}
	svc, userRepo, _, submissionRepo := newSubmissionFixture(judge)

	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:            1,
		Category:        models.CategoryDreamPackage,
		MCQAnswers:      []int{1, 1},
		CodingSolutions: []string{"def reverse(s): return s[::-1]"},
	})
	if err != nil {
		t.Fatalf("SubmitTask failed: %v", err)
	}

	if result.MCQScore != 1 {
		t.Errorf("expected MCQ score 1, got %d", result.MCQScore)
	}
	if result.CodingScore != 1 {
		t.Errorf("expected coding score 1, got %d", result.CodingScore)
	}
	if result.TotalScore != 2 {
		t.Errorf("expected total score 2, got %d", result.TotalScore)
	}
	if !result.Evaluated {
		t.Error("expected submission to be marked evaluated")
	}
	if result.AlreadyExisted {
		t.Error("fresh submission should not report alreadyExisted")
	}
	if len(result.CodingFeedback) != 1 || result.CodingFeedback[0].Score != 0.8 {
		t.Errorf("unexpected coding feedback: %+v", result.CodingFeedback)
	}

	stored, err := submissionRepo.GetByStudentAndTask(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("submission was not stored: %v", err)
	}
	if stored.TotalScore != 2 {
		t.Errorf("stored total score = %d, want 2", stored.TotalScore)
	}

	student := userRepo.students[1]
	if student.Progress.CompletedTasks != 1 {
		t.Errorf("completedTasks = %d, want 1", student.Progress.CompletedTasks)
	}
	if student.Progress.WeeklyScores["1"] != 2 {
		t.Errorf("weeklyScores[1] = %d, want 2", student.Progress.WeeklyScores["1"])
	}
}

func TestSubmissionService_SubmitTask_CategoryMismatch(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, _, submissionRepo := newSubmissionFixture(judge)

	_, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:     1,
		Category: models.CategoryHigherStudies,
	})
	if !errors.Is(err, apperrors.ErrCategoryMismatch) {
		t.Fatalf("expected ErrCategoryMismatch, got %v", err)
	}
	if judge.calls != 0 {
		t.Error("judge must not be called on a category mismatch")
	}
	if len(submissionRepo.submissions) != 0 {
		t.Error("no submission should be stored on a category mismatch")
	}
}

func TestSubmissionService_SubmitTask_NoCategoryChosen(t *testing.T) {
	judge := &scriptedJudge{}
	svc, userRepo, _, _ := newSubmissionFixture(judge)
	userRepo.students[1].Category = nil

	_, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:     1,
		Category: models.CategoryDreamPackage,
	})
	if !errors.Is(err, apperrors.ErrCategoryMismatch) {
		t.Fatalf("expected ErrCategoryMismatch for category-less student, got %v", err)
	}
}

func TestSubmissionService_SubmitTask_DeadlinePassed(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, taskRepo, _ := newSubmissionFixture(judge)
	taskRepo.tasks[10].Deadline = time.Now().Add(-time.Hour)

	_, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:     1,
		Category: models.CategoryDreamPackage,
	})
	if !errors.Is(err, apperrors.ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
}

func TestSubmissionService_SubmitTask_TaskNotFound(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, _, _ := newSubmissionFixture(judge)

	_, err := svc.SubmitTask(context.Background(), 1, 99, &dto.SubmitTaskRequest{
		Week:     1,
		Category: models.CategoryDreamPackage,
	})
	if !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestSubmissionService_SubmitTask_ExistingReturnedAsIs(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, _, submissionRepo := newSubmissionFixture(judge)

	existing := &models.StudentSubmission{
		StudentID: 1, TaskID: 10, Week: 1,
		Category: models.CategoryDreamPackage,
		MCQScore: 2, CodingScore: 1, TotalScore: 3,
		Evaluated: true,
	}
	if err := submissionRepo.Insert(context.Background(), nil, existing); err != nil {
		t.Fatalf("failed to seed existing submission: %v", err)
	}

	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:            1,
		Category:        models.CategoryDreamPackage,
		MCQAnswers:      []int{0, 0},
		CodingSolutions: []string{"something new"},
	})
	if err != nil {
		t.Fatalf("SubmitTask failed: %v", err)
	}

	if !result.AlreadyExisted {
		t.Error("expected alreadyExisted to be set")
	}
	if result.TotalScore != 3 {
		t.Errorf("expected stored total score 3, got %d", result.TotalScore)
	}
	if judge.calls != 0 {
		t.Error("existing submissions must not be re-graded")
	}
}

func TestSubmissionService_SubmitTask_ExistingReturnedAfterDeadline(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, taskRepo, submissionRepo := newSubmissionFixture(judge)
	taskRepo.tasks[10].Deadline = time.Now().Add(-time.Hour)

	existing := &models.StudentSubmission{
		StudentID: 1, TaskID: 10, Week: 1,
		Category: models.CategoryDreamPackage,
		MCQScore: 2, CodingScore: 1, TotalScore: 3,
		Evaluated: true,
	}
	if err := submissionRepo.Insert(context.Background(), nil, existing); err != nil {
		t.Fatalf("failed to seed existing submission: %v", err)
	}

	// A graded task stays graded: the stored row wins over the deadline
	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:       1,
		Category:   models.CategoryDreamPackage,
		MCQAnswers: []int{0, 0},
	})
	if err != nil {
		t.Fatalf("resubmit of a graded task must redirect, got error: %v", err)
	}
	if !result.AlreadyExisted {
		t.Error("expected alreadyExisted to be set")
	}
	if result.TotalScore != 3 {
		t.Errorf("expected stored total score 3, got %d", result.TotalScore)
	}
	if judge.calls != 0 {
		t.Error("existing submissions must not be re-graded")
	}
}

func TestSubmissionService_SubmitTask_JudgeFailurePartialCredit(t *testing.T) {
	judge := &scriptedJudge{err: errors.New("upstream unavailable")}
	svc, _, _, _ := newSubmissionFixture(judge)

	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:            1,
		Category:        models.CategoryDreamPackage,
		MCQAnswers:      []int{1, 0},
		CodingSolutions: []string{"some attempt"},
	})
	if err != nil {
		t.Fatalf("judge failure must not fail the submission: %v", err)
	}

	if result.MCQScore != 2 {
		t.Errorf("expected MCQ score 2, got %d", result.MCQScore)
	}
	// 0.5 partial credit rounds up to 1
	if result.CodingScore != 1 {
		t.Errorf("expected coding score 1, got %d", result.CodingScore)
	}
	if len(result.CodingFeedback) != 1 {
		t.Fatalf("expected one feedback entry, got %d", len(result.CodingFeedback))
	}
	fb := result.CodingFeedback[0]
	if fb.Score != 0.5 || fb.Performance != 50 || fb.Readability != 50 || fb.Correctness != 50 {
		t.Errorf("unexpected partial credit values: %+v", fb)
	}
	if fb.PassesAllTests {
		t.Error("partial credit must not claim passing tests")
	}
	if fb.Feedback != "Error during automated evaluation. Partial credit awarded." {
		t.Errorf("unexpected partial credit message: %q", fb.Feedback)
	}
}

func TestSubmissionService_SubmitTask_EmptySolutionSkipped(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, _, _ := newSubmissionFixture(judge)

	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:            1,
		Category:        models.CategoryDreamPackage,
		MCQAnswers:      []int{1, 0},
		CodingSolutions: []string{"   "},
	})
	if err != nil {
		t.Fatalf("SubmitTask failed: %v", err)
	}

	if judge.calls != 0 {
		t.Error("blank solutions must not reach the judge")
	}
	if result.CodingScore != 0 {
		t.Errorf("expected coding score 0, got %d", result.CodingScore)
	}
	if len(result.CodingFeedback) != 0 {
		t.Errorf("expected no feedback entries, got %d", len(result.CodingFeedback))
	}
}

func TestSubmissionService_SubmitTask_ConcurrentDuplicate(t *testing.T) {
	judge := &scriptedJudge{responses: []string{
		`{"score": 1, "feedback": "ok", "passesAllTests": true, "performance": 100, "readability": 100, "correctness": 100, "identifiedIssues": []}`,
	}}
	svc, _, _, submissionRepo := newSubmissionFixture(judge)

	// Simulate a concurrent writer winning the unique-constraint race:
	// the insert trips the constraint while the stored row is readable.
	submissionRepo.insertErr = apperrors.ErrDuplicateSubmission
	submissionRepo.submissions[submissionKey(1, 10)] = &models.StudentSubmission{
		ID: 7, StudentID: 1, TaskID: 10, Week: 1,
		Category: models.CategoryDreamPackage, TotalScore: 5, Evaluated: true,
	}

	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:            1,
		Category:        models.CategoryDreamPackage,
		MCQAnswers:      []int{1, 0},
		CodingSolutions: []string{""},
	})
	if err != nil {
		t.Fatalf("concurrent duplicate must resolve to the stored row: %v", err)
	}
	if !result.AlreadyExisted {
		t.Error("expected alreadyExisted for the losing writer")
	}
	if result.SubmissionID != 7 || result.TotalScore != 5 {
		t.Errorf("expected the concurrent winner's row, got %+v", result)
	}
}

func TestSubmissionService_SubmitTask_CategoryChangedMidSubmission(t *testing.T) {
	judge := &scriptedJudge{}
	svc, userRepo, _, submissionRepo := newSubmissionFixture(judge)

	// The guard sees Dream Package; the transactional progress write
	// runs against a changed category and matches zero rows.
	svc.txRunner = txRunnerFunc(func(ctx context.Context, fn db.TransactionFn) error {
		userRepo.students[1].Category = testCategory(models.CategoryHigherStudies)
		return fn(ctx, nil)
	})

	result, err := svc.SubmitTask(context.Background(), 1, 10, &dto.SubmitTaskRequest{
		Week:            1,
		Category:        models.CategoryDreamPackage,
		MCQAnswers:      []int{1, 0},
		CodingSolutions: []string{""},
	})
	if err != nil {
		t.Fatalf("mid-submission category change must not fail the submission: %v", err)
	}
	if result.AlreadyExisted {
		t.Error("submission should be fresh")
	}
	if _, err := submissionRepo.GetByStudentAndTask(context.Background(), 1, 10); err != nil {
		t.Fatalf("submission row must still be stored: %v", err)
	}
	if userRepo.students[1].Progress.CompletedTasks != 0 {
		t.Error("progress bump must be skipped when the category changed")
	}
}

func TestSubmissionService_GetMySubmission_NotFound(t *testing.T) {
	judge := &scriptedJudge{}
	svc, _, _, _ := newSubmissionFixture(judge)

	_, err := svc.GetMySubmission(context.Background(), 1, 10)
	if !errors.Is(err, apperrors.ErrSubmissionNotFound) {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}
