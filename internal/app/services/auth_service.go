package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/repositories"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
	"github.com/campus2corporate/portal/internal/pkg/auth"
	"github.com/campus2corporate/portal/internal/pkg/validation"
)

// ITokenRepository is the slice of TokenRepository the auth service uses
type ITokenRepository interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
}

// AuthService handles registration, login and token rotation
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  ITokenRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo ITokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}

	return nil
}

// validateRegisterRequest applies the cross-field rules binding tags
// cannot express: the role decides which field group is required.
func (s *AuthService) validateRegisterRequest(req *dto.RegisterRequest) error {
	if err := s.validatePassword(req.Password); err != nil {
		return err
	}

	switch req.Role {
	case models.RoleStudent:
		if !validation.IsValidRollNumber(req.RollNumber) {
			return apperrors.ErrInvalidRollNumber
		}
		if strings.TrimSpace(req.Branch) == "" || strings.TrimSpace(req.School) == "" {
			return fmt.Errorf("%w: branch and school are required for students", apperrors.ErrValidationFailed)
		}
	case models.RoleAlumni:
		if strings.TrimSpace(req.Company) == "" || strings.TrimSpace(req.Position) == "" {
			return fmt.Errorf("%w: company and position are required for alumni", apperrors.ErrValidationFailed)
		}
		if req.GraduationYear < 1900 || req.GraduationYear > time.Now().Year() {
			return fmt.Errorf("%w: graduation year is out of range", apperrors.ErrValidationFailed)
		}
	default:
		return fmt.Errorf("%w: unknown role", apperrors.ErrValidationFailed)
	}

	return nil
}

// Register creates a student or alumni account and returns a token
// pair. Student rows start with zero progress and no category.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateRegisterRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	base := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		Role:     req.Role,
	}

	var profile interface{}
	switch req.Role {
	case models.RoleStudent:
		student := &models.Student{
			User:       base,
			RollNumber: req.RollNumber,
			Branch:     req.Branch,
			School:     req.School,
			CGPA:       req.CGPA,
			Progress:   models.NewProgress(),
		}
		if err := s.userRepo.CreateStudent(ctx, student); err != nil {
			return nil, mapCreateUserError(err)
		}
		base = student.User
		profile = dto.NewStudentProfileResponse(student)
	case models.RoleAlumni:
		alumni := &models.Alumni{
			User:           base,
			Company:        req.Company,
			Position:       req.Position,
			GraduationYear: req.GraduationYear,
		}
		if err := s.userRepo.CreateAlumni(ctx, alumni); err != nil {
			return nil, mapCreateUserError(err)
		}
		base = alumni.User
		profile = dto.NewAlumniProfileResponse(alumni)
	}

	s.logger.Info().Int64("userID", base.ID).Str("role", string(base.Role)).Msg("User registered")

	token, err := s.generateTokenResponse(ctx, &base)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: *token, User: profile}, nil
}

// mapCreateUserError normalizes the user sub-repository errors
func mapCreateUserError(err error) error {
	if errors.Is(err, repositories.ErrEmailAlreadyExists) {
		return apperrors.ErrEmailAlreadyExists
	}
	if errors.Is(err, repositories.ErrRollNumberExists) {
		return apperrors.ErrInvalidRollNumber
	}
	return fmt.Errorf("user creation error: %w", err)
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	profile, err := s.roleProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: *token, User: profile}, nil
}

// RefreshToken rotates a refresh token: the old token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, expiryDate, isRevoked, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	if expiryDate.Before(time.Now()) {
		_ = s.tokenRepo.RevokeToken(ctx, refreshToken)
		return nil, apperrors.ErrTokenExpired
	}
	if isRevoked {
		return nil, apperrors.ErrTokenRevoked
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	// Revoke before issuing so a stolen token cannot be replayed
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// roleProfile loads the role-shaped profile payload for a user
func (s *AuthService) roleProfile(ctx context.Context, user *models.User) (interface{}, error) {
	switch user.Role {
	case models.RoleStudent:
		student, err := s.userRepo.GetStudentByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get student information: %w", err)
		}
		return dto.NewStudentProfileResponse(student), nil
	case models.RoleAlumni:
		alumni, err := s.userRepo.GetAlumniByUserID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get alumni information: %w", err)
		}
		return dto.NewAlumniProfileResponse(alumni), nil
	}
	// Admin and any future roles fall back to the base shape
	return user, nil
}

// generateTokenResponse creates token response
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(expiresIn),
		RefreshTokenExpiresIn: int64(refreshExpiresIn),
	}, nil
}
