package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/dberrors"
	"github.com/campus2corporate/portal/internal/pkg/logger"
)

var (
	ErrRollNumberExists = errors.New("roll number already in use")
	ErrStudentNotFound  = ErrUserNotFound
)

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateStudent inserts a full student row and sets the generated ID
// on the model. The progress document starts at the zero state.
func (r *StudentRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	progressJSON, err := json.Marshal(student.Progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role", "roll_number", "branch", "school", "cgpa", "progress").
		Values(student.Name, student.Email, student.Password, models.RoleStudent,
			student.RollNumber, student.Branch, student.School, student.CGPA, progressJSON).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", student.Email).Msg("Attempted to create student with duplicate email")
			return ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_roll_number_key") {
			logger.Warn().Str("rollNumber", student.RollNumber).Msg("Attempted to create student with duplicate roll number")
			return ErrRollNumberExists
		}
		logger.Error().Err(err).Str("email", student.Email).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Int64("userID", student.ID).Str("rollNumber", student.RollNumber).Msg("Student created successfully")
	return nil
}

// GetStudentByUserID retrieves a full student row by user ID
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	var student models.Student
	sql, args, err := r.sb.Select("id", "name", "email", "password", "role", "created_at",
		"roll_number", "branch", "school", "cgpa", "category", "progress").
		From("users").
		Where(squirrel.Eq{"id": userID, "role": models.RoleStudent}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by user ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.Name, &student.Email, &student.Password, &student.Role, &student.CreatedAt,
		&student.RollNumber, &student.Branch, &student.School, &student.CGPA, &student.Category, &student.Progress)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("userID", userID).Msg("Student not found by user ID")
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetStudentForUpdate retrieves a student row inside tx with a row lock,
// for multi-step progress recomputation.
func (r *StudentRepository) GetStudentForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*models.Student, error) {
	var student models.Student
	err := tx.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at,
		       roll_number, branch, school, cgpa, category, progress
		FROM users
		WHERE id = $1 AND role = $2
		FOR UPDATE`,
		userID, models.RoleStudent).Scan(
		&student.ID, &student.Name, &student.Email, &student.Password, &student.Role, &student.CreatedAt,
		&student.RollNumber, &student.Branch, &student.School, &student.CGPA, &student.Category, &student.Progress)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error locking student row")
		return nil, fmt.Errorf("error retrieving student for update: %w", err)
	}

	return &student, nil
}

// UpdateStudentProfile updates the student-editable profile columns
func (r *StudentRepository) UpdateStudentProfile(ctx context.Context, userID int64, name, rollNumber, branch, school, cgpa string) error {
	sql, args, err := r.sb.Update("users").
		Set("name", name).
		Set("roll_number", rollNumber).
		Set("branch", branch).
		Set("school", school).
		Set("cgpa", cgpa).
		Where(squirrel.Eq{"id": userID, "role": models.RoleStudent}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update student profile SQL")
		return fmt.Errorf("failed to build update student profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_roll_number_key") {
			return ErrRollNumberExists
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update student profile query")
		return fmt.Errorf("error updating student profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// SetCategory writes the student's category and, when reset is set,
// replaces the progress document with the zero state in the same
// statement so both land atomically.
func (r *StudentRepository) SetCategory(ctx context.Context, userID int64, category models.Category, reset bool) error {
	zeroProgress, err := json.Marshal(models.NewProgress())
	if err != nil {
		return fmt.Errorf("failed to encode zero progress: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET category = $2,
		    progress = CASE WHEN $3 THEN $4::jsonb ELSE progress END
		WHERE id = $1 AND role = $5`,
		userID, category, reset, zeroProgress, models.RoleStudent)

	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Str("category", string(category)).Msg("Error setting student category")
		return fmt.Errorf("error setting category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// ApplyTaskProgress bumps completedTasks and records the week's score
// with one atomic statement, guarded by the submitted category. A
// student whose category changed since the submission started matches
// zero rows; the caller treats that as a silent skip.
func (r *StudentRepository) ApplyTaskProgress(ctx context.Context, tx pgx.Tx, userID int64, category models.Category, week, totalScore int) (bool, error) {
	cmdTag, err := tx.Exec(ctx, `
		UPDATE users
		SET progress = jsonb_set(
			jsonb_set(progress, '{completedTasks}',
				to_jsonb(COALESCE((progress->>'completedTasks')::int, 0) + 1)),
			ARRAY['weeklyScores', $3::text],
			to_jsonb($4::int))
		WHERE id = $1 AND role = $5 AND category = $2`,
		userID, category, fmt.Sprintf("%d", week), totalScore, models.RoleStudent)

	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int("week", week).Msg("Error applying task progress")
		return false, fmt.Errorf("error applying task progress: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// UpdateProgress replaces the full progress document inside tx. Callers
// pair it with GetStudentForUpdate so the read-modify-write is covered
// by the row lock.
func (r *StudentRepository) UpdateProgress(ctx context.Context, tx pgx.Tx, userID int64, progress models.Progress) error {
	progressJSON, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("failed to encode progress: %w", err)
	}

	cmdTag, err := tx.Exec(ctx, `
		UPDATE users
		SET progress = $2
		WHERE id = $1 AND role = $3`,
		userID, progressJSON, models.RoleStudent)

	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating progress")
		return fmt.Errorf("error updating progress: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// RollNumberExists checks if a roll number already exists
func (r *StudentRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	var exists bool
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"roll_number": rollNumber}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building roll number exists SQL")
		return false, fmt.Errorf("failed to build roll number exists query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		logger.Error().Err(err).Str("rollNumber", rollNumber).Msg("Error checking roll number existence")
		return false, fmt.Errorf("error checking roll number existence: %w", err)
	}

	return exists, nil
}
