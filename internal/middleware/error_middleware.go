package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus2corporate/portal/internal/app/models/dto"
	"github.com/campus2corporate/portal/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error envelope.
// Messages stay generic: no stack traces or internal identifiers leave
// the process.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrTaskNotFound,
		apperrors.ErrContentNotFound,
		apperrors.ErrSubmissionNotFound,
		apperrors.ErrExperienceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Resource not found"))

	// 401
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrOwnershipMismatch):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Resource does not belong to the authenticated user")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, apperrors.ErrTokenNotFound, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	// 403
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOr(err, "Permission denied"))

	// 400
	case errors.Is(err, apperrors.ErrCategoryMismatch):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Submitted category does not match your selected category")
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Task deadline has passed")
	case errors.Is(err, apperrors.ErrInvalidCategory):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid category")
	case errors.Is(err, apperrors.ErrInvalidRollNumber):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidRollNumber, "Invalid roll number format")
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrInvalidPassword,
		apperrors.ErrInvalidEmail,
		apperrors.ErrCategoryNotChosen,
		apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed"))

	// 409
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrDuplicateSubmission):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Conflict"))

	// 502
	case errors.Is(err, apperrors.ErrEvaluationFailed):
		respond(c, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Code evaluation is currently unavailable")

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOr prefers a CustomError's message over the generic fallback
func messageOr(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
