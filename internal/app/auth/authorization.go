package auth

import (
	"context"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/logger"
)

// ResearchGetter loads a research by id
type ResearchGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Research, error)
}

// UnitGetter loads a unit with the owner of its research
type UnitGetter interface {
	GetByID(ctx context.Context, id int64) (*models.Unit, error)
}

// AuthorizationService decides whether a professor may mutate a research or
// unit. Every call reads the current owner; nothing is cached.
type AuthorizationService struct {
	researchRepo ResearchGetter
	unitRepo     UnitGetter
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(researchRepo ResearchGetter, unitRepo UnitGetter) *AuthorizationService {
	return &AuthorizationService{
		researchRepo: researchRepo,
		unitRepo:     unitRepo,
	}
}

// RequireProfessor returns the professor variant of actor or ErrPermissionDenied
func RequireProfessor(actor models.Actor) (*models.ProfessorActor, error) {
	prof, ok := actor.(*models.ProfessorActor)
	if !ok {
		return nil, apperrors.NewForbiddenError("only professors can perform this action")
	}
	return prof, nil
}

// RequireStudent returns the student variant of actor or ErrPermissionDenied
func RequireStudent(actor models.Actor) (*models.StudentActor, error) {
	student, ok := actor.(*models.StudentActor)
	if !ok {
		return nil, apperrors.NewForbiddenError("only students can perform this action")
	}
	return student, nil
}

// AuthorizeResearch loads the research and checks that actor owns it
func (s *AuthorizationService) AuthorizeResearch(ctx context.Context, actor models.Actor, researchID int64) (*models.Research, error) {
	prof, err := RequireProfessor(actor)
	if err != nil {
		return nil, err
	}

	research, err := s.researchRepo.GetByID(ctx, researchID)
	if err != nil {
		return nil, err
	}

	if research.ProfID != prof.Prof.ID {
		logger.Warn().Int64("researchID", researchID).Int64("profID", prof.Prof.ID).Msg("Research ownership check failed")
		return nil, apperrors.NewForbiddenError("you do not own this research")
	}
	return research, nil
}

// AuthorizeUnit loads the unit and checks that actor owns its parent research
func (s *AuthorizationService) AuthorizeUnit(ctx context.Context, actor models.Actor, unitID int64) (*models.Unit, error) {
	prof, err := RequireProfessor(actor)
	if err != nil {
		return nil, err
	}

	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if unit.ProfID != prof.Prof.ID {
		logger.Warn().Int64("unitID", unitID).Int64("profID", prof.Prof.ID).Msg("Unit ownership check failed")
		return nil, apperrors.NewForbiddenError("you do not own this unit")
	}
	return unit, nil
}
