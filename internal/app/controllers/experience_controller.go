package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/middleware"
)

// ExperienceController handles the placement experience board
type ExperienceController struct {
	experienceService *services.ExperienceService
	logger            zerolog.Logger
}

// NewExperienceController creates a new ExperienceController
func NewExperienceController(experienceService *services.ExperienceService, logger zerolog.Logger) *ExperienceController {
	return &ExperienceController{
		experienceService: experienceService,
		logger:            logger,
	}
}

// List returns shared placement experiences
// @Summary List placement experiences
// @Description Returns shared experiences newest first, optionally filtered by company; public
// @Tags experiences
// @Produce json
// @Param company query string false "Company name filter (substring match)"
// @Success 200 {object} dto.APIResponse "Experiences"
// @Router /experiences [get]
func (c *ExperienceController) List(ctx *gin.Context) {
	company := ctx.Query("company")

	experiences, err := c.experienceService.List(ctx.Request.Context(), company)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list experiences")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(experiences, ""))
}

// Create publishes a placement experience
// @Summary Share a placement experience
// @Description Publishes the caller's placement experience on the board
// @Tags experiences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateExperienceRequest true "Experience details"
// @Success 201 {object} dto.APIResponse{data=dto.ExperienceResponse} "Experience published"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an alumni"
// @Router /experiences [post]
func (c *ExperienceController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		abortUnauthenticated(ctx)
		return
	}

	var req dto.CreateExperienceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	experience, err := c.experienceService.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to create experience")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(experience, "Experience shared"))
}
