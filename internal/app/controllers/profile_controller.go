package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileController handles the caller's own page
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// MyPage returns the caller's profile
// @Summary My page
// @Tags mypage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /mypage [get]
func (c *ProfileController) MyPage(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: c.profileService.MyPage(ctx.Request.Context(), actor)})
}

// UpdateProfile edits the caller's profile
// @Summary Update my page
// @Description Student number and major apply to students, professor number and major to professors
// @Tags mypage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=dto.UserProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 409 {object} dto.ErrorResponse "Number already in use"
// @Router /mypage [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	updated, err := c.profileService.UpdateProfile(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: c.profileService.MyPage(ctx.Request.Context(), updated)})
}
