package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// ExperienceService handles the alumni placement experience board
type ExperienceService struct {
	userRepo       repositories.IUserRepository
	experienceRepo repositories.IExperienceRepository
	logger         zerolog.Logger
}

// NewExperienceService creates a new ExperienceService
func NewExperienceService(
	userRepo repositories.IUserRepository,
	experienceRepo repositories.IExperienceRepository,
	logger zerolog.Logger,
) *ExperienceService {
	return &ExperienceService{
		userRepo:       userRepo,
		experienceRepo: experienceRepo,
		logger:         logger,
	}
}

// Create stores a placement experience for the calling alumni; the
// alumni's display name is snapshotted onto the record.
func (s *ExperienceService) Create(ctx context.Context, alumniID int64, req *dto.CreateExperienceRequest) (*dto.ExperienceResponse, error) {
	alumni, err := s.userRepo.GetAlumniByUserID(ctx, alumniID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load alumni: %w", err)
	}

	experience := &models.PlacementExperience{
		AlumniID:         alumni.ID,
		AlumniName:       alumni.Name,
		Company:          req.Company,
		Role:             req.Role,
		Package:          req.Package,
		YearOfPlacement:  req.YearOfPlacement,
		Experience:       req.Experience,
		InterviewProcess: req.InterviewProcess,
		Tips:             req.Tips,
	}

	if err := s.experienceRepo.Create(ctx, experience); err != nil {
		return nil, fmt.Errorf("failed to create placement experience: %w", err)
	}

	response := dto.NewExperienceResponse(experience)
	return &response, nil
}

// List returns placement experiences newest first, optionally filtered
// by company name (case-insensitive).
func (s *ExperienceService) List(ctx context.Context, companyFilter string) ([]dto.ExperienceResponse, error) {
	experiences, err := s.experienceRepo.List(ctx, companyFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to list placement experiences: %w", err)
	}

	responses := make([]dto.ExperienceResponse, len(experiences))
	for i, e := range experiences {
		responses[i] = dto.NewExperienceResponse(e)
	}
	return responses, nil
}
