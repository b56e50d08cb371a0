package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// mockCategoryRepo is a slice-backed ICategoryRepository
type mockCategoryRepo struct {
	categories []*models.CategoryInfo
}

func (m *mockCategoryRepo) GetAll(ctx context.Context) ([]*models.CategoryInfo, error) {
	return m.categories, nil
}

func (m *mockCategoryRepo) Ensure(ctx context.Context, name, description string) error {
	for _, c := range m.categories {
		if c.Name == name {
			return nil
		}
	}
	m.categories = append(m.categories, &models.CategoryInfo{
		ID:          int64(len(m.categories) + 1),
		Name:        name,
		Description: description,
	})
	return nil
}

func TestContentService_ListCategories(t *testing.T) {
	categoryRepo := &mockCategoryRepo{}
	tracks := []models.Category{
		models.CategoryDreamPackage,
		models.CategorySuperDreamPackage,
		models.CategoryHigherStudies,
	}
	for _, c := range tracks {
		if err := categoryRepo.Ensure(context.Background(), string(c), "desc"); err != nil {
			t.Fatalf("ensure failed: %v", err)
		}
	}
	svc := NewContentService(newMockContentRepo(), categoryRepo, zerolog.Nop())

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("category count = %d, want 3", len(categories))
	}
}

func TestContentService_ListContent_InvalidCategory(t *testing.T) {
	svc := NewContentService(newMockContentRepo(), &mockCategoryRepo{}, zerolog.Nop())

	_, err := svc.ListContent(context.Background(), "Ultra Package")
	if !errors.Is(err, apperrors.ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestContentService_ListContent_FiltersByCategory(t *testing.T) {
	contentRepo := newMockContentRepo(
		&models.WeeklyContent{Week: 1, Category: models.CategoryDreamPackage, Title: "Arrays"},
		&models.WeeklyContent{Week: 1, Category: models.CategoryHigherStudies, Title: "GRE Basics"},
	)
	svc := NewContentService(contentRepo, &mockCategoryRepo{}, zerolog.Nop())

	contents, err := svc.ListContent(context.Background(), models.CategoryDreamPackage)
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if len(contents) != 1 || contents[0].Title != "Arrays" {
		t.Errorf("contents = %+v, want only the Dream Package week", contents)
	}
}
