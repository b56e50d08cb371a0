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
	"github.com/campus2corporate/portal/internal/pkg/logger"
)

// ITaskRepository defines the interface for weekly task operations
type ITaskRepository interface {
	GetByCategory(ctx context.Context, category models.Category) ([]*models.WeeklyTask, error)
	GetByID(ctx context.Context, id int64) (*models.WeeklyTask, error)
	Create(ctx context.Context, task *models.WeeklyTask) error
}

// TaskRepository handles weekly task database operations
type TaskRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByCategory retrieves a category's weekly tasks ordered by week
func (r *TaskRepository) GetByCategory(ctx context.Context, category models.Category) ([]*models.WeeklyTask, error) {
	sql, args, err := r.sb.Select("id", "week", "category", "title", "description", "deadline", "mcqs", "coding_questions").
		From("weekly_tasks").
		Where(squirrel.Eq{"category": category}).
		OrderBy("week ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get tasks by category SQL")
		return nil, fmt.Errorf("failed to build get tasks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("category", string(category)).Msg("Error querying weekly tasks")
		return nil, fmt.Errorf("error retrieving weekly tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*models.WeeklyTask
	for rows.Next() {
		var t models.WeeklyTask
		if err := rows.Scan(&t.ID, &t.Week, &t.Category, &t.Title, &t.Description, &t.Deadline, &t.MCQs, &t.CodingQuestions); err != nil {
			logger.Error().Err(err).Msg("Error scanning weekly task row")
			return nil, fmt.Errorf("error scanning weekly task: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly task rows: %w", err)
	}

	return tasks, nil
}

// GetByID retrieves a single weekly task
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.WeeklyTask, error) {
	var t models.WeeklyTask
	sql, args, err := r.sb.Select("id", "week", "category", "title", "description", "deadline", "mcqs", "coding_questions").
		From("weekly_tasks").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get task by ID SQL")
		return nil, fmt.Errorf("failed to build get task query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&t.ID, &t.Week, &t.Category, &t.Title, &t.Description, &t.Deadline, &t.MCQs, &t.CodingQuestions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTaskNotFound
		}
		logger.Error().Err(err).Int64("taskID", id).Msg("Error scanning weekly task row")
		return nil, fmt.Errorf("error retrieving weekly task: %w", err)
	}

	return &t, nil
}

// Create inserts a weekly task; used by seeding and admin tooling
func (r *TaskRepository) Create(ctx context.Context, task *models.WeeklyTask) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO weekly_tasks (week, category, title, description, deadline, mcqs, coding_questions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (category, week) DO UPDATE SET title = EXCLUDED.title
		RETURNING id`,
		task.Week, task.Category, task.Title, task.Description, task.Deadline, task.MCQs, task.CodingQuestions).Scan(&task.ID)

	if err != nil {
		logger.Error().Err(err).Int("week", task.Week).Str("category", string(task.Category)).Msg("Error creating weekly task")
		return fmt.Errorf("error creating weekly task: %w", err)
	}

	return nil
}
