package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

func TestUserService_GetProfile_UnknownUser(t *testing.T) {
	svc := NewUserService(newMockUserRepo(), zerolog.Nop())

	_, err := svc.GetProfile(context.Background(), 42)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetProfile_ShapesByRole(t *testing.T) {
	userRepo := newMockUserRepo()
	student := userRepo.addStudent(&models.Student{
		User:       models.User{Name: "Priya", Email: "priya@college.edu"},
		RollNumber: "22CSE0001",
		Progress:   models.NewProgress(),
	})
	alumni := userRepo.addAlumni(&models.Alumni{
		User:    models.User{Name: "Meera", Email: "meera@alumni.edu"},
		Company: "Acme Corp",
	})
	svc := NewUserService(userRepo, zerolog.Nop())

	profile, err := svc.GetProfile(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("student GetProfile failed: %v", err)
	}
	if _, ok := profile.(*dto.StudentProfileResponse); !ok {
		t.Errorf("student profile is %T, want *dto.StudentProfileResponse", profile)
	}

	profile, err = svc.GetProfile(context.Background(), alumni.ID)
	if err != nil {
		t.Fatalf("alumni GetProfile failed: %v", err)
	}
	if _, ok := profile.(*dto.AlumniProfileResponse); !ok {
		t.Errorf("alumni profile is %T, want *dto.AlumniProfileResponse", profile)
	}
}

func TestUserService_UpdateProfile_StudentRejectsAlumniFields(t *testing.T) {
	userRepo := newMockUserRepo()
	student := userRepo.addStudent(&models.Student{
		User:     models.User{Name: "Priya", Email: "priya@college.edu"},
		Progress: models.NewProgress(),
	})
	svc := NewUserService(userRepo, zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), student.ID, &dto.UpdateProfileRequest{
		Name:    "Priya",
		Company: "Acme Corp",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestUserService_UpdateProfile_AlumniRejectsStudentFields(t *testing.T) {
	userRepo := newMockUserRepo()
	alumni := userRepo.addAlumni(&models.Alumni{
		User:    models.User{Name: "Meera", Email: "meera@alumni.edu"},
		Company: "Acme Corp",
	})
	svc := NewUserService(userRepo, zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), alumni.ID, &dto.UpdateProfileRequest{
		Name:       "Meera",
		RollNumber: "22CSE0001",
	})
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestUserService_UpdateProfile_MergesOnlyProvidedFields(t *testing.T) {
	userRepo := newMockUserRepo()
	student := userRepo.addStudent(&models.Student{
		User:       models.User{Name: "Priya", Email: "priya@college.edu"},
		RollNumber: "22CSE0001",
		Branch:     "CSE",
		School:     "Engineering",
		CGPA:       "8.0",
		Progress:   models.NewProgress(),
	})
	svc := NewUserService(userRepo, zerolog.Nop())

	profile, err := svc.UpdateProfile(context.Background(), student.ID, &dto.UpdateProfileRequest{
		Name: "Priya S",
		CGPA: "8.6",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	updated, ok := profile.(*dto.StudentProfileResponse)
	if !ok {
		t.Fatalf("profile is %T, want *dto.StudentProfileResponse", profile)
	}
	if updated.Name != "Priya S" || updated.CGPA != "8.6" {
		t.Errorf("updated fields not applied: %+v", updated)
	}
	if updated.RollNumber != "22CSE0001" || updated.Branch != "CSE" || updated.School != "Engineering" {
		t.Errorf("omitted fields must keep their values: %+v", updated)
	}
}

func TestUserService_UpdateProfile_InvalidRollNumber(t *testing.T) {
	userRepo := newMockUserRepo()
	student := userRepo.addStudent(&models.Student{
		User:     models.User{Name: "Priya", Email: "priya@college.edu"},
		Progress: models.NewProgress(),
	})
	svc := NewUserService(userRepo, zerolog.Nop())

	_, err := svc.UpdateProfile(context.Background(), student.ID, &dto.UpdateProfileRequest{
		Name:       "Priya",
		RollNumber: "not-a-roll",
	})
	if !errors.Is(err, apperrors.ErrInvalidRollNumber) {
		t.Fatalf("expected ErrInvalidRollNumber, got %v", err)
	}
}
