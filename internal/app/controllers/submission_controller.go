package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/middleware"
)

// SubmissionController handles the task submission surface
type SubmissionController struct {
	submissionService *services.SubmissionService
	logger            zerolog.Logger
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService *services.SubmissionService, logger zerolog.Logger) *SubmissionController {
	return &SubmissionController{
		submissionService: submissionService,
		logger:            logger,
	}
}

// Submit grades and stores a task submission
// @Summary Submit a weekly task
// @Description Grades the MCQ answers, evaluates the coding solutions and stores the submission. An existing submission is returned unchanged.
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Param request body dto.SubmitTaskRequest true "Submission payload"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResultResponse} "Existing submission returned"
// @Success 201 {object} dto.APIResponse{data=dto.SubmissionResultResponse} "Submission graded and stored"
// @Failure 400 {object} dto.ErrorResponse "Validation failure, category mismatch or deadline passed"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{id}/submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	taskID, ok := taskIDParam(ctx)
	if !ok {
		return
	}

	var req dto.SubmitTaskRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	result, err := c.submissionService.SubmitTask(ctx.Request.Context(), userID, taskID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Int64("taskID", taskID).Msg("Submission failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.NewSuccessResponse(result, "Submission processed"))
}

// GetMine returns the caller's stored submission for a task
// @Summary Get own submission for a task
// @Description Returns the caller's graded submission for the task
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Task ID"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResultResponse} "Submission"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "No submission for this task"
// @Router /tasks/{id}/submissions/mine [get]
func (c *SubmissionController) GetMine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	taskID, ok := taskIDParam(ctx)
	if !ok {
		return
	}

	result, err := c.submissionService.GetMySubmission(ctx.Request.Context(), userID, taskID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

// ListMine returns the caller's submissions
// @Summary List own submissions
// @Description Returns the caller's submissions, newest first
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Submissions"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /submissions [get]
func (c *SubmissionController) ListMine(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	submissions, err := c.submissionService.ListMySubmissions(ctx.Request.Context(), userID)
	if err != nil {
		c.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to list submissions")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(submissions, ""))
}
