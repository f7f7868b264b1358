package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asaplab/asap/internal/app/auth"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// ResearchService manages the research catalog of a professor
type ResearchService interface {
	ListMine(ctx context.Context, actor models.Actor) ([]*models.Research, error)
	Create(ctx context.Context, actor models.Actor, req *dto.ResearchRequest) (*models.Research, error)
	Update(ctx context.Context, actor models.Actor, id int64, req *dto.ResearchRequest) (*models.Research, error)
	Delete(ctx context.Context, actor models.Actor, id int64) error
	Detail(ctx context.Context, id int64) (*models.Research, error)
}

type researchServiceImpl struct {
	researchRepo repositories.IResearchRepository
	unitRepo     repositories.IUnitRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
	now          func() time.Time
}

// NewResearchService creates a new ResearchService
func NewResearchService(
	researchRepo repositories.IResearchRepository,
	unitRepo repositories.IUnitRepository,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) ResearchService {
	return &researchServiceImpl{
		researchRepo: researchRepo,
		unitRepo:     unitRepo,
		authz:        authz,
		logger:       logger,
		now:          time.Now,
	}
}

// ListMine returns the caller's researches with their units
func (s *researchServiceImpl) ListMine(ctx context.Context, actor models.Actor) ([]*models.Research, error) {
	prof, err := auth.RequireProfessor(actor)
	if err != nil {
		return nil, err
	}

	researches, err := s.researchRepo.ListByProf(ctx, prof.Prof.ID)
	if err != nil {
		return nil, err
	}
	if err := attachUnits(ctx, s.unitRepo, researches); err != nil {
		return nil, err
	}
	return researches, nil
}

// Create adds a research owned by the calling professor
func (s *researchServiceImpl) Create(ctx context.Context, actor models.Actor, req *dto.ResearchRequest) (*models.Research, error) {
	prof, err := auth.RequireProfessor(actor)
	if err != nil {
		return nil, err
	}

	research := &models.Research{ProfID: prof.Prof.ID}
	s.apply(research, req)
	if problems := research.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid research", problems)
	}

	if err := s.researchRepo.Create(ctx, research); err != nil {
		return nil, err
	}
	research.ProfName = prof.User.Name

	s.logger.Info().Int64("researchID", research.ID).Int64("profID", prof.Prof.ID).Msg("Research created")
	return research, nil
}

// Update replaces the editable fields of an owned research
func (s *researchServiceImpl) Update(ctx context.Context, actor models.Actor, id int64, req *dto.ResearchRequest) (*models.Research, error) {
	research, err := s.authz.AuthorizeResearch(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	s.apply(research, req)
	if problems := research.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid research", problems)
	}

	if err := s.researchRepo.Update(ctx, research); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("researchID", id).Msg("Research updated")
	return research, nil
}

// Delete removes an owned research together with its units and records
func (s *researchServiceImpl) Delete(ctx context.Context, actor models.Actor, id int64) error {
	if _, err := s.authz.AuthorizeResearch(ctx, actor, id); err != nil {
		return err
	}

	if err := s.researchRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("researchID", id).Msg("Research deleted")
	return nil
}

// Detail returns one research with its units
func (s *researchServiceImpl) Detail(ctx context.Context, id int64) (*models.Research, error) {
	research, err := s.researchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	units, err := s.unitRepo.ListByResearch(ctx, id)
	if err != nil {
		return nil, err
	}
	research.Units = units
	return research, nil
}

func (s *researchServiceImpl) apply(research *models.Research, req *dto.ResearchRequest) {
	research.Number = strings.TrimSpace(req.Number)
	research.Title = strings.TrimSpace(req.Title)
	research.Semester = models.Semester(strings.ToUpper(strings.TrimSpace(req.Semester)))
	research.Description = strings.TrimSpace(req.Description)
	research.Year = req.Year
	if research.Year == 0 {
		research.Year = s.now().Year()
	}
}

// attachUnits loads the units of every research with one query
func attachUnits(ctx context.Context, unitRepo repositories.IUnitRepository, researches []*models.Research) error {
	if len(researches) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(researches))
	byID := make(map[int64]*models.Research, len(researches))
	for _, r := range researches {
		ids = append(ids, r.ID)
		byID[r.ID] = r
		r.Units = nil
	}

	units, err := unitRepo.ListByResearchIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load units: %w", err)
	}
	for _, u := range units {
		if r, ok := byID[u.ResearchID]; ok {
			r.Units = append(r.Units, u)
		}
	}
	return nil
}
