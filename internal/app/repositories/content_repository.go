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

// IContentRepository defines the interface for weekly content operations
type IContentRepository interface {
	GetByCategory(ctx context.Context, category models.Category) ([]*models.WeeklyContent, error)
	GetByCategoryAndWeek(ctx context.Context, category models.Category, week int) (*models.WeeklyContent, error)
	Create(ctx context.Context, content *models.WeeklyContent) error
}

// ContentRepository handles weekly content database operations
type ContentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewContentRepository creates a new ContentRepository
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByCategory retrieves a category's weekly content ordered by week
func (r *ContentRepository) GetByCategory(ctx context.Context, category models.Category) ([]*models.WeeklyContent, error) {
	sql, args, err := r.sb.Select("id", "week", "category", "title", "description", "resources").
		From("weekly_content").
		Where(squirrel.Eq{"category": category}).
		OrderBy("week ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get content by category SQL")
		return nil, fmt.Errorf("failed to build get content query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("category", string(category)).Msg("Error querying weekly content")
		return nil, fmt.Errorf("error retrieving weekly content: %w", err)
	}
	defer rows.Close()

	var contents []*models.WeeklyContent
	for rows.Next() {
		var c models.WeeklyContent
		if err := rows.Scan(&c.ID, &c.Week, &c.Category, &c.Title, &c.Description, &c.Resources); err != nil {
			logger.Error().Err(err).Msg("Error scanning weekly content row")
			return nil, fmt.Errorf("error scanning weekly content: %w", err)
		}
		contents = append(contents, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating weekly content rows: %w", err)
	}

	return contents, nil
}

// GetByCategoryAndWeek retrieves one week's content for a category
func (r *ContentRepository) GetByCategoryAndWeek(ctx context.Context, category models.Category, week int) (*models.WeeklyContent, error) {
	var c models.WeeklyContent
	sql, args, err := r.sb.Select("id", "week", "category", "title", "description", "resources").
		From("weekly_content").
		Where(squirrel.Eq{"category": category, "week": week}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get content by week SQL")
		return nil, fmt.Errorf("failed to build get content query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Week, &c.Category, &c.Title, &c.Description, &c.Resources)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrContentNotFound
		}
		logger.Error().Err(err).Str("category", string(category)).Int("week", week).Msg("Error scanning weekly content row")
		return nil, fmt.Errorf("error retrieving weekly content: %w", err)
	}

	return &c, nil
}

// Create inserts a week of content; used by seeding and admin tooling
func (r *ContentRepository) Create(ctx context.Context, content *models.WeeklyContent) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO weekly_content (week, category, title, description, resources)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category, week) DO UPDATE SET title = EXCLUDED.title
		RETURNING id`,
		content.Week, content.Category, content.Title, content.Description, content.Resources).Scan(&content.ID)

	if err != nil {
		logger.Error().Err(err).Int("week", content.Week).Str("category", string(content.Category)).Msg("Error creating weekly content")
		return fmt.Errorf("error creating weekly content: %w", err)
	}

	return nil
}
