package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus2corporate/portal/internal/app/models/dto"
)

// BindJSON binds and validates the request body; on failure it writes
// the standard 400 envelope and reports false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
