package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/middleware"
)

// ProgressController handles category selection and progress tracking
type ProgressController struct {
	progressService *services.ProgressService
	logger          zerolog.Logger
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService *services.ProgressService, logger zerolog.Logger) *ProgressController {
	return &ProgressController{
		progressService: progressService,
		logger:          logger,
	}
}

// SelectCategory sets the caller's preparation track
// @Summary Select a preparation track
// @Description Sets the student's category, optionally resetting accumulated progress
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SelectCategoryRequest true "Category selection"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid category"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /students/category [post]
func (c *ProgressController) SelectCategory(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.SelectCategoryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	profile, err := c.progressService.SelectCategory(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Str("category", string(req.Category)).Msg("Category selection failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Category selected"))
}

// MarkContentCompleted marks a week's content as completed
// @Summary Mark weekly content completed
// @Description Records a completed week in the student's progress; idempotent
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkContentCompletedRequest true "Week to mark"
// @Success 200 {object} dto.APIResponse{data=dto.ProgressResponse} "Updated progress"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Student ID does not match session"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /content/mark-completed [post]
func (c *ProgressController) MarkContentCompleted(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.MarkContentCompletedRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	progress, err := c.progressService.MarkContentCompleted(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Int("week", req.WeekNumber).Msg("Failed to mark content completed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(progress, "Content marked as completed"))
}

// MarkResourceCompleted toggles a single resource's completion
// @Summary Toggle a resource completion
// @Description Sets or clears one resource's completion flag and recomputes the week's completion
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MarkResourceRequest true "Resource to toggle"
// @Success 200 {object} dto.APIResponse{data=dto.ProgressResponse} "Updated progress"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Student ID does not match session"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a student"
// @Router /content/mark-resource [post]
func (c *ProgressController) MarkResourceCompleted(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.MarkResourceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	progress, err := c.progressService.MarkResourceCompleted(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Int("week", req.WeekNumber).Int("resource", req.ResourceIndex).Msg("Failed to mark resource")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(progress, "Resource progress updated"))
}
