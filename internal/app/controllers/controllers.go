// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/middleware"
)

// currentUserID reads the authenticated user ID set by the JWT
// middleware. The second return is false when the middleware did not
// run; callers abort with 401 in that case.
func currentUserID(ctx *gin.Context) (int64, bool) {
	value, exists := ctx.Get(middleware.ContextUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(int64)
	if !ok {
		return 0, false
	}
	return userID, true
}

// abortUnauthenticated writes the standard 401 envelope
func abortUnauthenticated(ctx *gin.Context) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}
