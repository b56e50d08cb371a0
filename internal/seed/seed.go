package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/campus2corporate/portal/internal/app/models"
	appRepos "github.com/campus2corporate/portal/internal/app/repositories"
)

// categoryDescriptions are the track descriptors published on the
// categories endpoint.
var categoryDescriptions = map[appModels.Category]string{
	appModels.CategoryDreamPackage:      "Preparation track for dream package placements: aptitude, core CS fundamentals and interview practice.",
	appModels.CategorySuperDreamPackage: "Intensive track for super dream package placements: advanced data structures, system design basics and competitive coding.",
	appModels.CategoryHigherStudies:     "Track for students preparing for higher studies: GRE/GATE fundamentals, research skills and application guidance.",
}

// CreateDefaultData seeds the preparation tracks, a starter week of
// content and tasks per track, and the default admin account.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data (categories, starter content)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Preparation tracks --- //
	for category, description := range categoryDescriptions {
		if err := repos.CategoryRepository.Ensure(ctx, string(category), description); err != nil {
			lgr.Error().Err(err).Str("category", string(category)).Msg("Error ensuring category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Starter week per track --- //
	for category := range categoryDescriptions {
		if err := seedStarterWeek(ctx, repos, category, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default admin user --- //
	if err := seedAdminUser(ctx, dbPool, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// seedStarterWeek inserts week 1 content and a week 1 task for a track,
// skipping tracks that already have material.
func seedStarterWeek(ctx context.Context, repos *appRepos.Repositories, category appModels.Category, lgr zerolog.Logger) error {
	existing, err := repos.ContentRepository.GetByCategory(ctx, category)
	if err != nil {
		lgr.Error().Err(err).Str("category", string(category)).Msg("Error checking existing content")
		return err
	}
	if len(existing) > 0 {
		return nil // Track already has material
	}

	lgr.Info().Str("category", string(category)).Msg("Seeding starter week...")

	content := &appModels.WeeklyContent{
		Week:        1,
		Category:    category,
		Title:       "Week 1: Programming Fundamentals",
		Description: "Refresh the fundamentals you will build on for the rest of the track.",
		Resources: []appModels.Resource{
			{Type: appModels.ResourceVideo, Title: "Arrays and Strings Crash Course", URL: "https://www.youtube.com/watch?v=B31LgI4Y4DQ"},
			{Type: appModels.ResourceNotes, Title: "Big-O Cheat Sheet", URL: "https://www.bigocheatsheet.com/"},
			{Type: appModels.ResourceLink, Title: "Practice Set: Easy Arrays", URL: "https://leetcode.com/tag/array/"},
		},
	}
	if err := repos.ContentRepository.Create(ctx, content); err != nil {
		lgr.Error().Err(err).Str("category", string(category)).Msg("Error seeding starter content")
		return err
	}

	task := &appModels.WeeklyTask{
		Week:        1,
		Category:    category,
		Title:       "Week 1 Assessment",
		Description: "Covers the fundamentals from this week's material.",
		Deadline:    time.Now().AddDate(0, 0, 14),
		MCQs: []appModels.MCQQuestion{
			{
				Question:      "What is the time complexity of binary search on a sorted array of n elements?",
				Options:       []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"},
				CorrectAnswer: 1,
			},
			{
				Question:      "Which data structure uses LIFO ordering?",
				Options:       []string{"Queue", "Stack", "Linked list", "Heap"},
				CorrectAnswer: 1,
			},
		},
		CodingQuestions: []appModels.CodingQuestion{
			{
				Question:    "Reverse a string",
				Description: "Write a function that takes a string and returns it reversed.",
				TestCases: []appModels.TestCase{
					{Input: "hello", ExpectedOutput: "olleh"},
					{Input: "ab", ExpectedOutput: "ba"},
				},
			},
		},
	}
	if err := repos.TaskRepository.Create(ctx, task); err != nil {
		lgr.Error().Err(err).Str("category", string(category)).Msg("Error seeding starter task")
		return err
	}

	return nil
}

// seedAdminUser creates the default admin account if it does not exist.
// Admins are not created through the registration flow, so this inserts
// directly rather than going through the student/alumni repositories.
func seedAdminUser(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	const adminEmail = "admin@campus2corporate.app"

	var exists bool
	err := dbPool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", adminEmail).Scan(&exists)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default admin user...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	var adminID int64
	err = dbPool.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		"System Administrator", adminEmail, string(hashedPassword), string(appModels.RoleAdmin),
	).Scan(&adminID)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}

	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	return nil
}
