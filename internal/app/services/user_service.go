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
	"github.com/campus2corporate/portal/internal/pkg/validation"
)

// UserService handles profile operations
type UserService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile returns the caller's role-shaped profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (interface{}, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}

	switch user.Role {
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get student information: %w", err)
		}
		return dto.NewStudentProfileResponse(student), nil
	case models.RoleAlumni:
		alumni, err := s.userRepo.GetAlumniByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get alumni information: %w", err)
		}
		return dto.NewAlumniProfileResponse(alumni), nil
	}

	return user, nil
}

// UpdateProfile applies a role-discriminated profile update. Submitting
// the other role's field group is rejected; role, email, password,
// category and progress are never touched here.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (interface{}, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user information: %w", err)
	}

	switch user.Role {
	case models.RoleStudent:
		return s.updateStudentProfile(ctx, userID, req)
	case models.RoleAlumni:
		return s.updateAlumniProfile(ctx, userID, req)
	}

	return nil, apperrors.NewForbiddenError("profile updates are not supported for this role")
}

func (s *UserService) updateStudentProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (interface{}, error) {
	if req.HasAlumniFields() {
		return nil, apperrors.NewForbiddenError("students cannot set alumni profile fields")
	}
	if req.RollNumber != "" && !validation.IsValidRollNumber(req.RollNumber) {
		return nil, apperrors.ErrInvalidRollNumber
	}

	current, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student information: %w", err)
	}

	rollNumber := current.RollNumber
	if req.RollNumber != "" {
		rollNumber = req.RollNumber
	}
	branch := current.Branch
	if req.Branch != "" {
		branch = req.Branch
	}
	school := current.School
	if req.School != "" {
		school = req.School
	}
	cgpa := current.CGPA
	if req.CGPA != "" {
		cgpa = req.CGPA
	}

	if err := s.userRepo.UpdateStudentProfile(ctx, userID, req.Name, rollNumber, branch, school, cgpa); err != nil {
		if errors.Is(err, repositories.ErrRollNumberExists) {
			return nil, apperrors.NewConflictError("roll number already in use")
		}
		return nil, fmt.Errorf("failed to update student profile: %w", err)
	}

	updated, err := s.userRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload student profile: %w", err)
	}
	s.logger.Info().Int64("userID", userID).Msg("Student profile updated")
	return dto.NewStudentProfileResponse(updated), nil
}

func (s *UserService) updateAlumniProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (interface{}, error) {
	if req.HasStudentFields() {
		return nil, apperrors.NewForbiddenError("alumni cannot set student profile fields")
	}

	current, err := s.userRepo.GetAlumniByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alumni information: %w", err)
	}

	company := current.Company
	if req.Company != "" {
		company = req.Company
	}
	position := current.Position
	if req.Position != "" {
		position = req.Position
	}
	graduationYear := current.GraduationYear
	if req.GraduationYear != 0 {
		graduationYear = req.GraduationYear
	}

	if err := s.userRepo.UpdateAlumniProfile(ctx, userID, req.Name, company, position, graduationYear); err != nil {
		return nil, fmt.Errorf("failed to update alumni profile: %w", err)
	}

	updated, err := s.userRepo.GetAlumniByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload alumni profile: %w", err)
	}
	s.logger.Info().Int64("userID", userID).Msg("Alumni profile updated")
	return dto.NewAlumniProfileResponse(updated), nil
}
