package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/logger"
)

// IExperienceRepository defines the interface for placement experience operations
type IExperienceRepository interface {
	Create(ctx context.Context, experience *models.PlacementExperience) error
	List(ctx context.Context, companyFilter string) ([]*models.PlacementExperience, error)
}

// ExperienceRepository handles placement experience database operations.
// Rows are insert-only.
type ExperienceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExperienceRepository creates a new ExperienceRepository
func NewExperienceRepository(db *pgxpool.Pool) *ExperienceRepository {
	return &ExperienceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a placement experience and sets the generated ID and
// creation time on the model.
func (r *ExperienceRepository) Create(ctx context.Context, experience *models.PlacementExperience) error {
	sql, args, err := r.sb.Insert("placement_experiences").
		Columns("alumni_id", "alumni_name", "company", "role", "package",
			"year_of_placement", "experience", "interview_process", "tips").
		Values(experience.AlumniID, experience.AlumniName, experience.Company, experience.Role, experience.Package,
			experience.YearOfPlacement, experience.Experience, experience.InterviewProcess, experience.Tips).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create experience SQL")
		return fmt.Errorf("failed to build create experience query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&experience.ID, &experience.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("alumniID", experience.AlumniID).Msg("Error creating placement experience")
		return fmt.Errorf("error creating placement experience: %w", err)
	}

	logger.Info().Int64("experienceID", experience.ID).Str("company", experience.Company).Msg("Placement experience created")
	return nil
}

// List retrieves placement experiences newest first, optionally
// filtered by company (case-insensitive substring match).
func (r *ExperienceRepository) List(ctx context.Context, companyFilter string) ([]*models.PlacementExperience, error) {
	builder := r.sb.Select("id", "alumni_id", "alumni_name", "company", "role", "package",
		"year_of_placement", "experience", "interview_process", "tips", "created_at").
		From("placement_experiences").
		OrderBy("created_at DESC")

	if companyFilter != "" {
		builder = builder.Where(squirrel.ILike{"company": "%" + companyFilter + "%"})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list experiences SQL")
		return nil, fmt.Errorf("failed to build list experiences query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying placement experiences")
		return nil, fmt.Errorf("error retrieving placement experiences: %w", err)
	}
	defer rows.Close()

	var experiences []*models.PlacementExperience
	for rows.Next() {
		var e models.PlacementExperience
		if err := rows.Scan(
			&e.ID, &e.AlumniID, &e.AlumniName, &e.Company, &e.Role, &e.Package,
			&e.YearOfPlacement, &e.Experience, &e.InterviewProcess, &e.Tips, &e.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning placement experience row")
			return nil, fmt.Errorf("error scanning placement experience: %w", err)
		}
		experiences = append(experiences, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placement experience rows: %w", err)
	}

	return experiences, nil
}
