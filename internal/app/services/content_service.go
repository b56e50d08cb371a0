package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// ContentService serves the read surface for tracks and weekly content
type ContentService struct {
	contentRepo  repositories.IContentRepository
	categoryRepo repositories.ICategoryRepository
	logger       zerolog.Logger
}

// NewContentService creates a new ContentService
func NewContentService(
	contentRepo repositories.IContentRepository,
	categoryRepo repositories.ICategoryRepository,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListCategories returns the track descriptors
func (s *ContentService) ListCategories(ctx context.Context) ([]*models.CategoryInfo, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListContent returns a category's weekly content ordered by week
func (s *ContentService) ListContent(ctx context.Context, category models.Category) ([]*models.WeeklyContent, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	contents, err := s.contentRepo.GetByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly content: %w", err)
	}
	return contents, nil
}
