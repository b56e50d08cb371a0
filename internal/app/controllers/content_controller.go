package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models"
	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/middleware"
)

// ContentController serves the track and weekly content read surface
type ContentController struct {
	contentService *services.ContentService
	logger         zerolog.Logger
}

// NewContentController creates a new ContentController
func NewContentController(contentService *services.ContentService, logger zerolog.Logger) *ContentController {
	return &ContentController{
		contentService: contentService,
		logger:         logger,
	}
}

// ListCategories returns the available preparation tracks
// @Summary List categories
// @Description Returns the preparation track descriptors; public
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse "Categories"
// @Router /categories [get]
func (c *ContentController) ListCategories(ctx *gin.Context) {
	categories, err := c.contentService.ListCategories(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list categories")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(categories, ""))
}

// ListContent returns a category's weekly content
// @Summary List weekly content
// @Description Returns a category's weekly learning content ordered by week
// @Tags content
// @Produce json
// @Security BearerAuth
// @Param category query string true "Category name"
// @Success 200 {object} dto.APIResponse "Weekly content"
// @Failure 400 {object} dto.ErrorResponse "Invalid category"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /content [get]
func (c *ContentController) ListContent(ctx *gin.Context) {
	category := models.Category(ctx.Query("category"))

	contents, err := c.contentService.ListContent(ctx.Request.Context(), category)
	if err != nil {
		c.logger.Warn().Err(err).Str("category", string(category)).Msg("Failed to list weekly content")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(contents, ""))
}
