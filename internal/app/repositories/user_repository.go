package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/repositories/user"
)

// Re-exported sub-repository errors so callers match on this package
var (
	ErrUserNotFound       = user.ErrUserNotFound
	ErrEmailAlreadyExists = user.ErrEmailAlreadyExists
	ErrRollNumberExists   = user.ErrRollNumberExists
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	// Lookup
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// Students
	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetStudentForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*models.Student, error)
	UpdateStudentProfile(ctx context.Context, userID int64, name, rollNumber, branch, school, cgpa string) error
	SetCategory(ctx context.Context, userID int64, category models.Category, reset bool) error
	ApplyTaskProgress(ctx context.Context, tx pgx.Tx, userID int64, category models.Category, week, totalScore int) (bool, error)
	UpdateProgress(ctx context.Context, tx pgx.Tx, userID int64, progress models.Progress) error
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)

	// Alumni
	CreateAlumni(ctx context.Context, alumni *models.Alumni) error
	GetAlumniByUserID(ctx context.Context, userID int64) (*models.Alumni, error)
	UpdateAlumniProfile(ctx context.Context, userID int64, name, company, position string, graduationYear int) error
}

// UserRepository combines the common, student and alumni sub-repositories
type UserRepository struct {
	common  *user.Repository
	student *user.StudentRepository
	alumni  *user.AlumniRepository
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		common:  user.NewRepository(db),
		student: user.NewStudentRepository(db),
		alumni:  user.NewAlumniRepository(db),
	}
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.common.GetUserByID(ctx, id)
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.common.GetUserByEmail(ctx, email)
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.common.EmailExists(ctx, email)
}

// CreateStudent creates a new student
func (r *UserRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	return r.student.CreateStudent(ctx, student)
}

// GetStudentByUserID retrieves a student by user ID
func (r *UserRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.student.GetStudentByUserID(ctx, userID)
}

// GetStudentForUpdate retrieves a row-locked student inside tx
func (r *UserRepository) GetStudentForUpdate(ctx context.Context, tx pgx.Tx, userID int64) (*models.Student, error) {
	return r.student.GetStudentForUpdate(ctx, tx, userID)
}

// UpdateStudentProfile updates a student's profile columns
func (r *UserRepository) UpdateStudentProfile(ctx context.Context, userID int64, name, rollNumber, branch, school, cgpa string) error {
	return r.student.UpdateStudentProfile(ctx, userID, name, rollNumber, branch, school, cgpa)
}

// SetCategory writes the student's category, optionally resetting progress
func (r *UserRepository) SetCategory(ctx context.Context, userID int64, category models.Category, reset bool) error {
	return r.student.SetCategory(ctx, userID, category, reset)
}

// ApplyTaskProgress atomically records a graded task in the progress document
func (r *UserRepository) ApplyTaskProgress(ctx context.Context, tx pgx.Tx, userID int64, category models.Category, week, totalScore int) (bool, error) {
	return r.student.ApplyTaskProgress(ctx, tx, userID, category, week, totalScore)
}

// UpdateProgress replaces the progress document inside tx
func (r *UserRepository) UpdateProgress(ctx context.Context, tx pgx.Tx, userID int64, progress models.Progress) error {
	return r.student.UpdateProgress(ctx, tx, userID, progress)
}

// RollNumberExists checks if a roll number already exists
func (r *UserRepository) RollNumberExists(ctx context.Context, rollNumber string) (bool, error) {
	return r.student.RollNumberExists(ctx, rollNumber)
}

// CreateAlumni creates a new alumni
func (r *UserRepository) CreateAlumni(ctx context.Context, alumni *models.Alumni) error {
	return r.alumni.CreateAlumni(ctx, alumni)
}

// GetAlumniByUserID retrieves an alumni by user ID
func (r *UserRepository) GetAlumniByUserID(ctx context.Context, userID int64) (*models.Alumni, error) {
	return r.alumni.GetAlumniByUserID(ctx, userID)
}

// UpdateAlumniProfile updates an alumni's profile columns
func (r *UserRepository) UpdateAlumniProfile(ctx context.Context, userID int64, name, company, position string, graduationYear int) error {
	return r.alumni.UpdateAlumniProfile(ctx, userID, name, company, position, graduationYear)
}
