package services

import (
	"context"
	"errors"
	"strings"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ProfileService resolves callers and edits their own account
type ProfileService interface {
	// ResolveActor loads the user and role profiles behind an access token
	ResolveActor(ctx context.Context, userID int64) (models.Actor, error)
	// ResolveActorAs is ResolveActor with the kind variant preferred for dual-role accounts
	ResolveActorAs(ctx context.Context, userID int64, kind models.ActorKind) (models.Actor, error)
	MyPage(ctx context.Context, actor models.Actor) *dto.UserProfileResponse
	UpdateProfile(ctx context.Context, actor models.Actor, req *dto.UpdateProfileRequest) (models.Actor, error)
}

type profileServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repositories.IUserRepository, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ResolveActor reads the account fresh on every call. Inactive accounts are rejected.
func (s *profileServiceImpl) ResolveActor(ctx context.Context, userID int64) (models.Actor, error) {
	return s.ResolveActorAs(ctx, userID, models.ActorStudent)
}

func (s *profileServiceImpl) ResolveActorAs(ctx context.Context, userID int64, kind models.ActorKind) (models.Actor, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	var student *models.Student
	if user.IsStudent {
		student, err = s.userRepo.GetStudentByUserID(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
	}

	var prof *models.Prof
	if user.IsProf {
		prof, err = s.userRepo.GetProfByUserID(ctx, userID)
		if err != nil && !errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
	}

	return models.ResolveActorAs(kind, user, student, prof), nil
}

// MyPage renders the caller's profile
func (s *profileServiceImpl) MyPage(_ context.Context, actor models.Actor) *dto.UserProfileResponse {
	return dto.NewUserProfileResponse(actor)
}

// UpdateProfile edits the shared fields and the profile of the caller's role.
// A guest can only edit the shared fields.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, actor models.Actor, req *dto.UpdateProfileRequest) (models.Actor, error) {
	user := *actor.Account()
	user.Name = strings.TrimSpace(req.Name)
	user.Sex = models.Sex(req.Sex)

	var (
		student *models.Student
		prof    *models.Prof
	)
	switch a := actor.(type) {
	case *models.StudentActor:
		updated := *a.Student
		if number := strings.TrimSpace(req.StudentNumber); number != "" {
			updated.StudentNumber = number
		}
		updated.Major = strings.TrimSpace(req.Major)
		student = &updated
	case *models.ProfessorActor:
		updated := *a.Prof
		if number := strings.TrimSpace(req.ProfNumber); number != "" {
			updated.ProfNumber = number
		}
		updated.Major = strings.TrimSpace(req.Major)
		prof = &updated
	case *models.GuestActor:
	}

	if err := s.userRepo.UpdateProfile(ctx, &user, student, prof); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(actor.Kind())).Msg("Profile updated")
	return models.ResolveActor(&user, student, prof), nil
}
