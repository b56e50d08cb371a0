package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/middleware"
)

// TaskController serves the weekly task read surface
type TaskController struct {
	taskService *services.TaskService
	logger      zerolog.Logger
}

// NewTaskController creates a new TaskController
func NewTaskController(taskService *services.TaskService, logger zerolog.Logger) *TaskController {
	return &TaskController{
		taskService: taskService,
		logger:      logger,
	}
}

// taskIDParam parses the :id path segment
func taskIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid task ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// ListTasks returns a category's weekly tasks
// @Summary List weekly tasks
// @Description Returns a category's weekly tasks ordered by week; answer keys are stripped
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param category query string true "Category name"
// @Success 200 {object} dto.APIResponse "Weekly tasks"
// @Failure 400 {object} dto.ErrorResponse "Invalid category"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	category := models.Category(ctx.Query("category"))

	tasks, err := c.taskService.ListTasks(ctx.Request.Context(), category)
	if err != nil {
		c.logger.Warn().Err(err).Str("category", string(category)).Msg("Failed to list weekly tasks")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tasks, ""))
}

// GetTask returns a single task with the caller's submission state
// @Summary Get a weekly task
// @Description Returns one task (answers stripped) plus the caller's submission state
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse{data=dto.TaskDetailResponse} "Task"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	taskID, ok := taskIDParam(ctx)
	if !ok {
		return
	}

	task, err := c.taskService.GetTask(ctx.Request.Context(), taskID, userID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("taskID", taskID).Msg("Failed to get task")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(task, ""))
}
