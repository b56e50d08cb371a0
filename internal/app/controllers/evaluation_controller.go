package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/app/services"
	"github.com/campus2corporate/portal/internal/middleware"
)

// EvaluationController exposes the advisory code review endpoint
type EvaluationController struct {
	evaluationService *services.EvaluationService
	logger            zerolog.Logger
}

// NewEvaluationController creates a new EvaluationController
func NewEvaluationController(evaluationService *services.EvaluationService, logger zerolog.Logger) *EvaluationController {
	return &EvaluationController{
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// EvaluateCode returns advisory feedback on a code snippet
// @Summary Evaluate a code snippet
// @Description Returns advisory feedback on a code snippet; nothing is stored
// @Tags evaluation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EvaluateCodeRequest true "Code and question"
// @Success 200 {object} dto.APIResponse{data=dto.EvaluateCodeResponse} "Feedback"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 502 {object} dto.ErrorResponse "Evaluation backend unavailable"
// @Router /evaluate-code [post]
func (c *EvaluationController) EvaluateCode(ctx *gin.Context) {
	var req dto.EvaluateCodeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	feedback, err := c.evaluationService.EvaluateCodeAdvisory(ctx.Request.Context(), req.Code, req.Question)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Advisory code evaluation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.EvaluateCodeResponse{Feedback: feedback}, ""))
}
