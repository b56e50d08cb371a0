package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campus2corporate/portal/internal/app/controllers"
	appMigrations "github.com/campus2corporate/portal/internal/app/migrations"
	appRepos "github.com/campus2corporate/portal/internal/app/repositories"
	appRoutes "github.com/campus2corporate/portal/internal/app/routes"
	appServices "github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/config"
	"github.com/campus2corporate/portal/internal/db"
	appMiddleware "github.com/campus2corporate/portal/internal/middleware"
	pkgAuth "github.com/campus2corporate/portal/internal/pkg/auth"
	"github.com/campus2corporate/portal/internal/pkg/helpers"
	"github.com/campus2corporate/portal/internal/pkg/judge"
	"github.com/campus2corporate/portal/internal/pkg/logger"
	"github.com/campus2corporate/portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services             *appServices.Services
	AuthController       *appControllers.AuthController
	UserController       *appControllers.UserController
	ContentController    *appControllers.ContentController
	TaskController       *appControllers.TaskController
	SubmissionController *appControllers.SubmissionController
	ProgressController   *appControllers.ProgressController
	ExperienceController *appControllers.ExperienceController
	EvaluationController *appControllers.EvaluationController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	judgeTimeout := helpers.ParseDuration(cfg.Judge.Timeout, 30*time.Second)
	codeJudge := judge.NewGeminiJudge(judge.GeminiConfig{
		APIKey:  cfg.Judge.APIKey,
		Model:   cfg.Judge.Model,
		BaseURL: cfg.Judge.BaseURL,
		Timeout: judgeTimeout,
	})

	// Initialize services
	evaluationService := appServices.NewEvaluationService(codeJudge, judgeTimeout, lgr)
	deps.Services = &appServices.Services{
		AuthService:       appServices.NewAuthService(deps.Repos.UserRepository, deps.Repos.TokenRepository, deps.JWTService, lgr),
		UserService:       appServices.NewUserService(deps.Repos.UserRepository, lgr),
		ContentService:    appServices.NewContentService(deps.Repos.ContentRepository, deps.Repos.CategoryRepository, lgr),
		TaskService:       appServices.NewTaskService(deps.Repos.TaskRepository, deps.Repos.SubmissionRepository, lgr),
		EvaluationService: evaluationService,
		SubmissionService: appServices.NewSubmissionService(
			deps.Repos.UserRepository,
			deps.Repos.TaskRepository,
			deps.Repos.SubmissionRepository,
			evaluationService,
			database,
			lgr,
		),
		ProgressService:   appServices.NewProgressService(deps.Repos.UserRepository, deps.Repos.ContentRepository, database, lgr),
		ExperienceService: appServices.NewExperienceService(deps.Repos.UserRepository, deps.Repos.ExperienceRepository, lgr),
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, lgr)
	deps.ContentController = appControllers.NewContentController(deps.Services.ContentService, lgr)
	deps.TaskController = appControllers.NewTaskController(deps.Services.TaskService, lgr)
	deps.SubmissionController = appControllers.NewSubmissionController(deps.Services.SubmissionService, lgr)
	deps.ProgressController = appControllers.NewProgressController(deps.Services.ProgressService, lgr)
	deps.ExperienceController = appControllers.NewExperienceController(deps.Services.ExperienceService, lgr)
	deps.EvaluationController = appControllers.NewEvaluationController(deps.Services.EvaluationService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.ContentController,
		deps.TaskController,
		deps.SubmissionController,
		deps.ProgressController,
		deps.ExperienceController,
		deps.EvaluationController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
