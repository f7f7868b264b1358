package services

import (
	"context"
	"fmt"

	"github.com/asaplab/asap/internal/app/auth"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// UnitRoster is a unit with its research and enrolled students
type UnitRoster struct {
	Research *models.Research
	Unit     *models.Unit
	Records  []*models.Record
}

// OutcomeService lets the owning professor grade the records of a unit
type OutcomeService interface {
	ListForUnit(ctx context.Context, actor models.Actor, unitID int64) (*UnitRoster, error)
	RecordOutcomes(ctx context.Context, actor models.Actor, unitID int64, entries []dto.OutcomeEntry) error
}

type outcomeServiceImpl struct {
	researchRepo repositories.IResearchRepository
	recordRepo   repositories.IRecordRepository
	authz        *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewOutcomeService creates a new OutcomeService
func NewOutcomeService(
	researchRepo repositories.IResearchRepository,
	recordRepo repositories.IRecordRepository,
	authz *auth.AuthorizationService,
	logger zerolog.Logger,
) OutcomeService {
	return &outcomeServiceImpl{
		researchRepo: researchRepo,
		recordRepo:   recordRepo,
		authz:        authz,
		logger:       logger,
	}
}

// ListForUnit returns the roster of an owned unit
func (s *outcomeServiceImpl) ListForUnit(ctx context.Context, actor models.Actor, unitID int64) (*UnitRoster, error) {
	unit, err := s.authz.AuthorizeUnit(ctx, actor, unitID)
	if err != nil {
		return nil, err
	}

	research, err := s.researchRepo.GetByID(ctx, unit.ResearchID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	return &UnitRoster{Research: research, Unit: unit, Records: records}, nil
}

// RecordOutcomes validates the whole batch first. Every failing row is
// reported and nothing is written unless all rows pass.
func (s *outcomeServiceImpl) RecordOutcomes(ctx context.Context, actor models.Actor, unitID int64, entries []dto.OutcomeEntry) error {
	if _, err := s.authz.AuthorizeUnit(ctx, actor, unitID); err != nil {
		return err
	}

	records, err := s.recordRepo.ListByUnit(ctx, unitID)
	if err != nil {
		return err
	}
	members := make(map[int64]bool, len(records))
	for _, rec := range records {
		members[rec.ID] = true
	}

	outcomes := make(map[int64]models.Outcome, len(entries))
	problems := map[string]interface{}{}
	for i, entry := range entries {
		key := fmt.Sprintf("entries[%d]", i)

		outcome, ok := models.ParseOutcome(entry.Outcome)
		switch {
		case !members[entry.RecordID]:
			problems[key] = fmt.Sprintf("record %d is not enrolled in this unit", entry.RecordID)
		case !ok:
			problems[key] = fmt.Sprintf("outcome %q must be PASS, FAIL or empty", entry.Outcome)
		default:
			if _, dup := outcomes[entry.RecordID]; dup {
				problems[key] = fmt.Sprintf("record %d appears more than once", entry.RecordID)
				continue
			}
			outcomes[entry.RecordID] = outcome
		}
	}

	if len(problems) > 0 {
		s.logger.Info().Int64("unitID", unitID).Int("invalidRows", len(problems)).Msg("Outcome batch rejected")
		return apperrors.NewValidationError("outcome batch rejected", problems)
	}

	if err := s.recordRepo.SetOutcomes(ctx, unitID, outcomes); err != nil {
		return err
	}

	s.logger.Info().Int64("unitID", unitID).Int("rows", len(outcomes)).Msg("Outcomes recorded")
	return nil
}
