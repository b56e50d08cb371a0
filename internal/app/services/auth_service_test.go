package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
	"github.com/campus2corporate/portal/internal/pkg/auth"
)

func newAuthFixture() (*AuthService, *mockUserRepo, *mockTokenRepo) {
	userRepo := newMockUserRepo()
	tokenRepo := newMockTokenRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	svc := NewAuthService(userRepo, tokenRepo, jwtService, zerolog.Nop())
	return svc, userRepo, tokenRepo
}

func studentRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:       "Ravi Kumar",
		Email:      "ravi@college.edu",
		Password:   "secret123",
		Role:       models.RoleStudent,
		RollNumber: "22CSE0042",
		Branch:     "CSE",
		School:     "Engineering",
		CGPA:       "8.4",
	}
}

func TestAuthService_Register_StudentSuccess(t *testing.T) {
	svc, userRepo, tokenRepo := newAuthFixture()

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if resp.Token.AccessToken == "" || resp.Token.RefreshToken == "" {
		t.Error("expected a full token pair")
	}
	if resp.Token.TokenType != "Bearer" {
		t.Errorf("tokenType = %q, want Bearer", resp.Token.TokenType)
	}
	if _, ok := tokenRepo.tokens[resp.Token.RefreshToken]; !ok {
		t.Error("refresh token was not persisted")
	}

	profile, ok := resp.User.(*dto.StudentProfileResponse)
	if !ok {
		t.Fatalf("user payload is %T, want *dto.StudentProfileResponse", resp.User)
	}
	if profile.Category != nil {
		t.Error("a new student must start without a category")
	}
	if profile.Progress.CompletedTasks != 0 || len(profile.Progress.CompletedContent) != 0 {
		t.Errorf("a new student must start with zero progress, got %+v", profile.Progress)
	}

	stored := userRepo.students[profile.ID]
	if stored == nil {
		t.Fatal("student row was not created")
	}
	if stored.Password == "secret123" {
		t.Error("password must be stored hashed")
	}
	if !auth.CheckPassword(stored.Password, "secret123") {
		t.Error("stored hash must verify against the original password")
	}
}

func TestAuthService_Register_InvalidRollNumber(t *testing.T) {
	svc, _, _ := newAuthFixture()

	req := studentRegisterRequest()
	req.RollNumber = "21CSE0042"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrInvalidRollNumber) {
		t.Fatalf("expected ErrInvalidRollNumber, got %v", err)
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	for _, password := range []string{"short1", "onlyletters", "12345678"} {
		req := studentRegisterRequest()
		req.Password = password

		_, err := svc.Register(context.Background(), req)
		if !errors.Is(err, apperrors.ErrInvalidPassword) {
			t.Errorf("password %q: expected ErrInvalidPassword, got %v", password, err)
		}
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	req := studentRegisterRequest()
	req.RollNumber = "22CSE0043"

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestAuthService_Register_AlumniMissingCompany(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:           "Anita",
		Email:          "anita@alumni.edu",
		Password:       "secret123",
		Role:           models.RoleAlumni,
		Position:       "SDE",
		GraduationYear: 2021,
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestAuthService_Register_AlumniSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Name:           "Anita",
		Email:          "anita@alumni.edu",
		Password:       "secret123",
		Role:           models.RoleAlumni,
		Company:        "Acme Corp",
		Position:       "SDE",
		GraduationYear: 2021,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	profile, ok := resp.User.(*dto.AlumniProfileResponse)
	if !ok {
		t.Fatalf("user payload is %T, want *dto.AlumniProfileResponse", resp.User)
	}
	if profile.Company != "Acme Corp" || profile.GraduationYear != 2021 {
		t.Errorf("alumni profile not populated: %+v", profile)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@college.edu",
		Password: "wrongpass1",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "secret123",
	})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_ReturnsRoleProfile(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), studentRegisterRequest()); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@college.edu",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	profile, ok := resp.User.(*dto.StudentProfileResponse)
	if !ok {
		t.Fatalf("user payload is %T, want *dto.StudentProfileResponse", resp.User)
	}
	if profile.RollNumber != "22CSE0042" {
		t.Errorf("rollNumber = %q, want 22CSE0042", profile.RollNumber)
	}
}

func TestAuthService_RefreshToken_RotatesAndRevokes(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture()

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	oldToken := resp.Token.RefreshToken

	fresh, err := svc.RefreshToken(context.Background(), oldToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if fresh.RefreshToken == oldToken {
		t.Error("rotation must issue a new refresh token")
	}
	if !tokenRepo.tokens[oldToken].revoked {
		t.Error("old refresh token must be revoked after rotation")
	}

	_, err = svc.RefreshToken(context.Background(), oldToken)
	if !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("reusing a rotated token: expected ErrTokenRevoked, got %v", err)
	}
}

func TestAuthService_RefreshToken_Expired(t *testing.T) {
	svc, _, tokenRepo := newAuthFixture()

	resp, err := svc.Register(context.Background(), studentRegisterRequest())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token := resp.Token.RefreshToken
	tokenRepo.tokens[token].expiry = time.Now().Add(-time.Minute)

	_, err = svc.RefreshToken(context.Background(), token)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if !tokenRepo.tokens[token].revoked {
		t.Error("expired token must be revoked on detection")
	}
}

func TestAuthService_RefreshToken_Unknown(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.RefreshToken(context.Background(), "never-issued")
	if !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}
}
