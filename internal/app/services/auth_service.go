package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/auth"
	"github.com/asaplab/asap/internal/pkg/email"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthService handles signup, activation and token based sessions
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.StudentSignupRequest) (*dto.SignupResponse, error)
	RegisterProf(ctx context.Context, req *dto.ProfSignupRequest) (*dto.SignupResponse, error)
	Activate(ctx context.Context, userID int64, token string) error
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
}

// AuthSettings carries the non-secret knobs of the auth flow
type AuthSettings struct {
	// BaseURL prefixes activation links
	BaseURL       string
	ActivationTTL time.Duration
}

type authServiceImpl struct {
	userRepo         repositories.IUserRepository
	tokenRepo        repositories.ITokenRepository
	verificationRepo repositories.IVerificationTokenRepository
	jwtService       *auth.JWTService
	mailer           email.Sender
	settings         AuthSettings
	logger           zerolog.Logger
	now              func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	verificationRepo repositories.IVerificationTokenRepository,
	jwtService *auth.JWTService,
	mailer email.Sender,
	settings AuthSettings,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:         userRepo,
		tokenRepo:        tokenRepo,
		verificationRepo: verificationRepo,
		jwtService:       jwtService,
		mailer:           mailer,
		settings:         settings,
		logger:           logger,
		now:              time.Now,
	}
}

// newAccount validates the shared signup fields and hashes the password
func (s *authServiceImpl) newAccount(ctx context.Context, req *dto.SignupRequest) (*models.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError("invalid password", map[string]interface{}{
			"password": err.Error(),
		})
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &models.User{
		Email:    emailAddr,
		Password: hash,
		Name:     strings.TrimSpace(req.Name),
		Sex:      models.Sex(req.Sex),
		IsActive: false,
	}, nil
}

// RegisterStudent creates an inactive student account and mails the activation link
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.StudentSignupRequest) (*dto.SignupResponse, error) {
	user, err := s.newAccount(ctx, &req.SignupRequest)
	if err != nil {
		return nil, err
	}
	user.IsStudent = true

	student := &models.Student{
		StudentNumber: strings.TrimSpace(req.StudentNumber),
		Major:         strings.TrimSpace(req.Major),
	}
	if err := s.userRepo.CreateStudentAccount(ctx, user, student); err != nil {
		return nil, err
	}

	return s.startActivation(ctx, user)
}

// RegisterProf creates an inactive professor account and mails the activation link
func (s *authServiceImpl) RegisterProf(ctx context.Context, req *dto.ProfSignupRequest) (*dto.SignupResponse, error) {
	user, err := s.newAccount(ctx, &req.SignupRequest)
	if err != nil {
		return nil, err
	}
	user.IsProf = true

	prof := &models.Prof{
		ProfNumber: strings.TrimSpace(req.ProfNumber),
		Major:      strings.TrimSpace(req.Major),
	}
	if err := s.userRepo.CreateProfAccount(ctx, user, prof); err != nil {
		return nil, err
	}

	return s.startActivation(ctx, user)
}

func (s *authServiceImpl) startActivation(ctx context.Context, user *models.User) (*dto.SignupResponse, error) {
	token := uuid.New().String()
	if err := s.verificationRepo.CreateToken(ctx, user.ID, token, s.now().Add(s.settings.ActivationTTL)); err != nil {
		return nil, fmt.Errorf("failed to store activation token: %w", err)
	}

	link := fmt.Sprintf("%s/api/v1/activate/%d/%s", strings.TrimRight(s.settings.BaseURL, "/"), user.ID, token)
	message := "Check your e-mail to activate the account"
	if err := s.mailer.SendActivationEmail(user.Email, user.Name, link); err != nil {
		// the account exists; the link can be re-issued by an operator
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send activation email")
		message = "Account created but the activation e-mail could not be sent"
	}

	s.logger.Info().Int64("userID", user.ID).Bool("isStudent", user.IsStudent).Bool("isProf", user.IsProf).Msg("Account registered")
	return &dto.SignupResponse{
		UserID:  user.ID,
		Email:   user.Email,
		Message: message,
	}, nil
}

// Activate flips is_active when token belongs to userID and has not expired
func (s *authServiceImpl) Activate(ctx context.Context, userID int64, token string) error {
	if _, err := uuid.Parse(token); err != nil {
		return apperrors.ErrInvalidActivationToken
	}

	ownerID, expiry, err := s.verificationRepo.GetTokenInfo(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return apperrors.ErrInvalidActivationToken
		}
		return fmt.Errorf("failed to load activation token: %w", err)
	}
	if ownerID != userID || expiry.Before(s.now()) {
		s.logger.Warn().Int64("userID", userID).Msg("Rejected activation token")
		return apperrors.ErrInvalidActivationToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsActive {
		return apperrors.ErrAlreadyActive
	}

	if err := s.userRepo.Activate(ctx, userID); err != nil {
		return fmt.Errorf("failed to activate user: %w", err)
	}
	if err := s.verificationRepo.DeleteTokensByUserID(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to delete used activation tokens")
	}

	s.logger.Info().Int64("userID", userID).Msg("Account activated")
	return nil
}

// Login authenticates an active user
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	return s.generateTokenResponse(ctx, user)
}

// RefreshToken rotates a refresh token into a new pair
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetUserIDByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// revoke the old token so it cannot be replayed
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// ChangePassword replaces the password after checking the current one and
// ends every other session of the user
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.NewValidationError("current password is incorrect", map[string]interface{}{
			"currentPassword": "does not match",
		})
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.NewValidationError("invalid password", map[string]interface{}{
			"newPassword": err.Error(),
		})
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", userID).Msg("Failed to revoke tokens after password change")
	}

	s.logger.Info().Int64("userID", userID).Msg("Password changed")
	return nil
}

func (s *authServiceImpl) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             pair.ExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshExpiresIn,
	}, nil
}
