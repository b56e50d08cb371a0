package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/dberrors"
	"github.com/campus2corporate/portal/internal/pkg/logger"
)

var ErrAlumniNotFound = ErrUserNotFound

// AlumniRepository handles alumni database operations
type AlumniRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAlumniRepository creates a new AlumniRepository
func NewAlumniRepository(db *pgxpool.Pool) *AlumniRepository {
	return &AlumniRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateAlumni inserts a full alumni row and sets the generated ID on
// the model.
func (r *AlumniRepository) CreateAlumni(ctx context.Context, alumni *models.Alumni) error {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password", "role", "company", "position", "graduation_year").
		Values(alumni.Name, alumni.Email, alumni.Password, models.RoleAlumni,
			alumni.Company, alumni.Position, alumni.GraduationYear).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create alumni SQL")
		return fmt.Errorf("failed to build create alumni query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&alumni.ID, &alumni.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			logger.Warn().Str("email", alumni.Email).Msg("Attempted to create alumni with duplicate email")
			return ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", alumni.Email).Msg("Error executing create alumni query")
		return fmt.Errorf("error creating alumni: %w", err)
	}

	logger.Info().Int64("userID", alumni.ID).Msg("Alumni created successfully")
	return nil
}

// GetAlumniByUserID retrieves a full alumni row by user ID
func (r *AlumniRepository) GetAlumniByUserID(ctx context.Context, userID int64) (*models.Alumni, error) {
	var alumni models.Alumni
	sql, args, err := r.sb.Select("id", "name", "email", "password", "role", "created_at",
		"company", "position", "graduation_year").
		From("users").
		Where(squirrel.Eq{"id": userID, "role": models.RoleAlumni}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get alumni by user ID SQL")
		return nil, fmt.Errorf("failed to build get alumni query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&alumni.ID, &alumni.Name, &alumni.Email, &alumni.Password, &alumni.Role, &alumni.CreatedAt,
		&alumni.Company, &alumni.Position, &alumni.GraduationYear)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.Warn().Int64("userID", userID).Msg("Alumni not found by user ID")
			return nil, ErrAlumniNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning alumni row")
		return nil, fmt.Errorf("error retrieving alumni: %w", err)
	}

	return &alumni, nil
}

// UpdateAlumniProfile updates the alumni-editable profile columns
func (r *AlumniRepository) UpdateAlumniProfile(ctx context.Context, userID int64, name, company, position string, graduationYear int) error {
	sql, args, err := r.sb.Update("users").
		Set("name", name).
		Set("company", company).
		Set("position", position).
		Set("graduation_year", graduationYear).
		Where(squirrel.Eq{"id": userID, "role": models.RoleAlumni}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update alumni profile SQL")
		return fmt.Errorf("failed to build update alumni profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update alumni profile query")
		return fmt.Errorf("error updating alumni profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrAlumniNotFound
	}

	return nil
}
