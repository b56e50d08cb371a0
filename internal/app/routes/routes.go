package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campus2corporate/portal/internal/app/controllers"
	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	contentController *controllers.ContentController,
	taskController *controllers.TaskController,
	submissionController *controllers.SubmissionController,
	progressController *controllers.ProgressController,
	experienceController *controllers.ExperienceController,
	evaluationController *controllers.EvaluationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
	}

	// Track descriptors and the experience board are readable without an account
	v1.GET("/categories", contentController.ListCategories)
	v1.GET("/experiences", experienceController.List)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
		}

		authenticated.GET("/content", contentController.ListContent)
		authenticated.POST("/evaluate-code", evaluationController.EvaluateCode)

		tasks := authenticated.Group("/tasks")
		{
			tasks.GET("", taskController.ListTasks)
			tasks.GET("/:id", taskController.GetTask)

			// Submissions are student-only
			tasksStudent := tasks.Group("")
			tasksStudent.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
			{
				tasksStudent.POST("/:id/submissions", submissionController.Submit)
				tasksStudent.GET("/:id/submissions/mine", submissionController.GetMine)
			}
		}

		// Student-only progress routes
		student := authenticated.Group("")
		student.Use(authMiddleware.RoleRequired(string(models.RoleStudent)))
		{
			student.GET("/submissions", submissionController.ListMine)
			student.POST("/students/category", progressController.SelectCategory)
			student.POST("/content/mark-completed", progressController.MarkContentCompleted)
			student.POST("/content/mark-resource", progressController.MarkResourceCompleted)
		}

		// Alumni-only experience publishing
		alumni := authenticated.Group("")
		alumni.Use(authMiddleware.RoleRequired(string(models.RoleAlumni)))
		{
			alumni.POST("/experiences", experienceController.Create)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
