package controllers

import (
	"net/http"

	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/services"
	"github.com/asaplab/asap/internal/middleware"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthController handles signup, activation and sessions
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// SignupStudent registers a student account
// @Summary Register a student
// @Description Creates an inactive student account and mails an activation link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.StudentSignupRequest true "Student signup information"
// @Success 201 {object} dto.APIResponse{data=dto.SignupResponse} "Account created, check e-mail"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Email or student number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /signup/student [post]
func (c *AuthController) SignupStudent(ctx *gin.Context) {
	var req dto.StudentSignupRequest
	if !bindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid student signup payload")
		return
	}

	resp, err := c.authService.RegisterStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// SignupProf registers a professor account
// @Summary Register a professor
// @Description Creates an inactive professor account and mails an activation link
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ProfSignupRequest true "Professor signup information"
// @Success 201 {object} dto.APIResponse{data=dto.SignupResponse} "Account created, check e-mail"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Email or professor number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /signup/prof [post]
func (c *AuthController) SignupProf(ctx *gin.Context) {
	var req dto.ProfSignupRequest
	if !bindJSON(ctx, &req) {
		c.logger.Warn().Msg("Invalid professor signup payload")
		return
	}

	resp, err := c.authService.RegisterProf(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// Activate consumes an activation link
// @Summary Activate an account
// @Description Activates the account the link was issued for
// @Tags auth
// @Produce json
// @Param uid path int true "User ID"
// @Param token path string true "Activation token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Account activated"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired activation link"
// @Failure 409 {object} dto.ErrorResponse "Account already active"
// @Router /activate/{uid}/{token} [get]
func (c *AuthController) Activate(ctx *gin.Context) {
	userID, err := helpers.ParseIDParam(ctx, "uid")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.authService.Activate(ctx.Request.Context(), userID, ctx.Param("token")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Account activated, you can now log in"},
	})
}

// Login handles user login
// @Summary User login
// @Description Authenticates an activated user and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account not activated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Info().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// RefreshToken exchanges a refresh token for a new pair
// @Summary Refresh tokens
// @Description Rotates the refresh token and issues a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Tokens refreshed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid, expired or revoked refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// Logout revokes a refresh token
// @Summary Logout
// @Description Revokes the given refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Unknown refresh token"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Logged out"}})
}

// ChangePassword replaces the caller's password
// @Summary Change password
// @Description Checks the current password, stores the new one and revokes every refresh token
// @Tags mypage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Password changed"
// @Failure 400 {object} dto.ErrorResponse "Validation error or wrong current password"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /mypage/changepassword [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	actor, ok := currentActor(ctx)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), actor.Account().ID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Password changed, please log in again"}})
}
