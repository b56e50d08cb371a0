package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
	"github.com/campus2corporate/portal/internal/pkg/dberrors"
	"github.com/campus2corporate/portal/internal/pkg/logger"
)

// ISubmissionRepository defines the interface for submission operations
type ISubmissionRepository interface {
	Insert(ctx context.Context, tx pgx.Tx, submission *models.StudentSubmission) error
	GetByStudentAndTask(ctx context.Context, studentID, taskID int64) (*models.StudentSubmission, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentSubmission, error)
}

// SubmissionRepository handles submission database operations.
// Submissions are insert-only; nothing here updates or deletes rows.
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Insert writes a graded submission inside tx and sets the generated
// ID. A unique-constraint trip surfaces as ErrDuplicateSubmission so
// the caller can fall back to the stored row.
func (r *SubmissionRepository) Insert(ctx context.Context, tx pgx.Tx, submission *models.StudentSubmission) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO submissions
			(student_id, task_id, week, category, submitted_at,
			 mcq_answers, coding_solutions, mcq_score, coding_score, total_score,
			 evaluated, coding_feedback)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		submission.StudentID, submission.TaskID, submission.Week, submission.Category, submission.SubmittedAt,
		submission.MCQAnswers, submission.CodingSolutions, submission.MCQScore, submission.CodingScore, submission.TotalScore,
		submission.Evaluated, submission.CodingFeedback).Scan(&submission.ID)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "submissions_student_id_task_id_key") {
			logger.Warn().Int64("studentID", submission.StudentID).Int64("taskID", submission.TaskID).
				Msg("Concurrent duplicate submission detected")
			return apperrors.ErrDuplicateSubmission
		}
		logger.Error().Err(err).Int64("studentID", submission.StudentID).Int64("taskID", submission.TaskID).
			Msg("Error inserting submission")
		return fmt.Errorf("error inserting submission: %w", err)
	}

	return nil
}

// GetByStudentAndTask retrieves a student's submission for a task
func (r *SubmissionRepository) GetByStudentAndTask(ctx context.Context, studentID, taskID int64) (*models.StudentSubmission, error) {
	var s models.StudentSubmission
	sql, args, err := r.sb.Select("id", "student_id", "task_id", "week", "category", "submitted_at",
		"mcq_answers", "coding_solutions", "mcq_score", "coding_score", "total_score",
		"evaluated", "coding_feedback").
		From("submissions").
		Where(squirrel.Eq{"student_id": studentID, "task_id": taskID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get submission SQL")
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.StudentID, &s.TaskID, &s.Week, &s.Category, &s.SubmittedAt,
		&s.MCQAnswers, &s.CodingSolutions, &s.MCQScore, &s.CodingScore, &s.TotalScore,
		&s.Evaluated, &s.CodingFeedback)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("taskID", taskID).Msg("Error scanning submission row")
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}

	return &s, nil
}

// ListByStudent retrieves a student's submissions, newest first
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.StudentSubmission, error) {
	sql, args, err := r.sb.Select("id", "student_id", "task_id", "week", "category", "submitted_at",
		"mcq_answers", "coding_solutions", "mcq_score", "coding_score", "total_score",
		"evaluated", "coding_feedback").
		From("submissions").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("submitted_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list submissions SQL")
		return nil, fmt.Errorf("failed to build list submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying submissions")
		return nil, fmt.Errorf("error retrieving submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.StudentSubmission
	for rows.Next() {
		var s models.StudentSubmission
		if err := rows.Scan(
			&s.ID, &s.StudentID, &s.TaskID, &s.Week, &s.Category, &s.SubmittedAt,
			&s.MCQAnswers, &s.CodingSolutions, &s.MCQScore, &s.CodingScore, &s.TotalScore,
			&s.Evaluated, &s.CodingFeedback); err != nil {
			logger.Error().Err(err).Msg("Error scanning submission row")
			return nil, fmt.Errorf("error scanning submission: %w", err)
		}
		submissions = append(submissions, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}
