// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currentActor returns the caller or answers 401 when JWTAuth did not run
func currentActor(ctx *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.CurrentActor(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
			WithDetails("User information not found")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return actor, true
}

// bindJSON binds the body into req or answers 400
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
