package middleware

import (
	"errors"
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// apiError is one row of the sentinel => response table
type apiError struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

var apiErrors = []apiError{
	{apperrors.ErrResearchNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Research not found"},
	{apperrors.ErrUnitNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Unit not found"},
	{apperrors.ErrRecordNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Record not found"},
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrAlreadyEnrolled, http.StatusConflict, dto.ErrorCodeAlreadyEnrolled, "Already enrolled in this unit"},
	{apperrors.ErrCapacityExceeded, http.StatusConflict, dto.ErrorCodeCapacityExceeded, "Unit is full"},

	{apperrors.ErrNotOwner, http.StatusForbidden, dto.ErrorCodeForbidden, "Resource belongs to another user"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},

	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrCapacityBelowCount, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},

	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrStudentNumberExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student number already exists"},
	{apperrors.ErrProfNumberExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Professor number already exists"},

	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrAccountDisabled, http.StatusForbidden, dto.ErrorCodeAccountInactive, "Account is not activated"},

	{apperrors.ErrInvalidActivationToken, http.StatusBadRequest, dto.ErrorCodeInvalidToken, "Invalid or expired activation link"},
	{apperrors.ErrAlreadyActive, http.StatusConflict, dto.ErrorCodeConflict, "Account already active"},
}

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	for _, e := range apiErrors {
		if !errors.Is(err, e.target) {
			continue
		}

		detail := dto.NewErrorDetail(e.code, e.message)
		if details := apperrors.DetailsOf(err); details != nil {
			detail = detail.WithDetails(details)
		} else if e.status == http.StatusBadRequest || e.status == http.StatusForbidden {
			detail = detail.WithDetails(err.Error())
		}

		c.JSON(e.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
	))
}
