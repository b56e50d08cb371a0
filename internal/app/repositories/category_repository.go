package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/logger"
)

// ICategoryRepository defines the interface for track descriptor operations
type ICategoryRepository interface {
	GetAll(ctx context.Context) ([]*models.CategoryInfo, error)
	Ensure(ctx context.Context, name, description string) error
}

// CategoryRepository handles the read-only category descriptors
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetAll retrieves the track descriptors
func (r *CategoryRepository) GetAll(ctx context.Context) ([]*models.CategoryInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description
		FROM categories
		ORDER BY id ASC`)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying categories")
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.CategoryInfo
	for rows.Next() {
		var c models.CategoryInfo
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			logger.Error().Err(err).Msg("Error scanning category row")
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories = append(categories, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// Ensure upserts a track descriptor by name; used by seeding
func (r *CategoryRepository) Ensure(ctx context.Context, name, description string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description`,
		name, description)
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error ensuring category")
		return fmt.Errorf("error ensuring category: %w", err)
	}
	return nil
}
