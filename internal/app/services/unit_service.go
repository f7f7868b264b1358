package services

import (
	"context"
	"strings"

	"github.com/asaplab/asap/internal/app/auth"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// UnitService manages the sessions of a research
type UnitService interface {
	Create(ctx context.Context, actor models.Actor, researchID int64, req *dto.UnitRequest) (*models.Unit, error)
	Update(ctx context.Context, actor models.Actor, researchID, unitID int64, req *dto.UnitRequest) (*models.Unit, error)
	Delete(ctx context.Context, actor models.Actor, researchID, unitID int64) error
}

type unitServiceImpl struct {
	unitRepo repositories.IUnitRepository
	authz    *auth.AuthorizationService
	logger   zerolog.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo repositories.IUnitRepository, authz *auth.AuthorizationService, logger zerolog.Logger) UnitService {
	return &unitServiceImpl{
		unitRepo: unitRepo,
		authz:    authz,
		logger:   logger,
	}
}

// Create adds a unit under an owned research
func (s *unitServiceImpl) Create(ctx context.Context, actor models.Actor, researchID int64, req *dto.UnitRequest) (*models.Unit, error) {
	research, err := s.authz.AuthorizeResearch(ctx, actor, researchID)
	if err != nil {
		return nil, err
	}

	unit := &models.Unit{ResearchID: research.ID, ProfID: research.ProfID}
	applyUnit(unit, req)
	if problems := unit.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid unit", problems)
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("unitID", unit.ID).Int64("researchID", researchID).Msg("Unit created")
	return unit, nil
}

// Update replaces the editable fields of an owned unit. The capacity may
// not drop below the number of enrolled students.
func (s *unitServiceImpl) Update(ctx context.Context, actor models.Actor, researchID, unitID int64, req *dto.UnitRequest) (*models.Unit, error) {
	unit, err := s.ownedUnit(ctx, actor, researchID, unitID)
	if err != nil {
		return nil, err
	}

	applyUnit(unit, req)
	if problems := unit.Validate(); problems != nil {
		return nil, apperrors.NewValidationError("invalid unit", problems)
	}

	if err := s.unitRepo.Update(ctx, unit); err != nil {
		if apperrors.Is(err, apperrors.ErrCapacityBelowCount) {
			return nil, apperrors.NewValidationError("invalid unit", map[string]interface{}{
				"maxCapacity": err.Error(),
			})
		}
		return nil, err
	}

	s.logger.Info().Int64("unitID", unitID).Msg("Unit updated")
	return unit, nil
}

// Delete removes an owned unit and its records
func (s *unitServiceImpl) Delete(ctx context.Context, actor models.Actor, researchID, unitID int64) error {
	if _, err := s.ownedUnit(ctx, actor, researchID, unitID); err != nil {
		return err
	}

	if err := s.unitRepo.Delete(ctx, unitID); err != nil {
		return err
	}

	s.logger.Info().Int64("unitID", unitID).Msg("Unit deleted")
	return nil
}

// ownedUnit authorizes the unit and checks it belongs to the research in the path
func (s *unitServiceImpl) ownedUnit(ctx context.Context, actor models.Actor, researchID, unitID int64) (*models.Unit, error) {
	unit, err := s.authz.AuthorizeUnit(ctx, actor, unitID)
	if err != nil {
		return nil, err
	}
	if unit.ResearchID != researchID {
		return nil, apperrors.ErrUnitNotFound
	}
	return unit, nil
}

func applyUnit(unit *models.Unit, req *dto.UnitRequest) {
	unit.Place = strings.TrimSpace(req.Place)
	unit.Date = req.Date
	unit.PeriodMinutes = req.PeriodMinutes
	unit.MaxCapacity = req.MaxCapacity
	unit.Remark = strings.TrimSpace(req.Remark)
}
