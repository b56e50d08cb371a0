package services

import (
	"context"

	"github.com/campus2corporate/portal/internal/db"
)

// TxRunner abstracts the database handle's transaction helper so
// services can be tested without a live pool.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	UserService       *UserService
	ContentService    *ContentService
	TaskService       *TaskService
	SubmissionService *SubmissionService
	ProgressService   *ProgressService
	ExperienceService *ExperienceService
	EvaluationService *EvaluationService
}
