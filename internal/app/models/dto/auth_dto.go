package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest carries the refresh token for /auth/refresh and /auth/logout
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// SignupRequest holds the account fields shared by both signup forms
type SignupRequest struct {
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required,eqfield=Password"`
	Name            string `json:"name" binding:"required,max=50"`
	Sex             string `json:"sex" binding:"required,oneof=M F"`
	Major           string `json:"major" binding:"max=50"`
}

// StudentSignupRequest is the body of POST /signup/student
type StudentSignupRequest struct {
	SignupRequest
	StudentNumber string `json:"studentNumber" binding:"required,max=20"`
}

// ProfSignupRequest is the body of POST /signup/prof
type ProfSignupRequest struct {
	SignupRequest
	ProfNumber string `json:"profNumber" binding:"required,max=20"`
}

// SignupResponse is returned once the inactive account has been created
type SignupResponse struct {
	UserID  int64  `json:"userId"`
	Email   string `json:"email"`
	Message string `json:"message" example:"Check your e-mail to activate the account"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=8"`
	NewPasswordConfirm string `json:"newPasswordConfirm" binding:"required,eqfield=NewPassword"`
}
