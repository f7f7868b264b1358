package services

import (
	"context"

	"github.com/asaplab/asap/internal/app/auth"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// EnrollmentCatalog is everything a student needs to pick a unit
type EnrollmentCatalog struct {
	Researches []*models.Research
	MyRecords  []*models.Record
}

// EnrollmentService lets students take and release seats
type EnrollmentService interface {
	Catalog(ctx context.Context, actor models.Actor) (*EnrollmentCatalog, error)
	Enroll(ctx context.Context, actor models.Actor, unitID int64) (*models.Record, error)
	Cancel(ctx context.Context, actor models.Actor, recordID int64) (*models.Unit, error)
	MyRecords(ctx context.Context, actor models.Actor) ([]*models.Record, error)
}

type enrollmentServiceImpl struct {
	researchRepo repositories.IResearchRepository
	unitRepo     repositories.IUnitRepository
	recordRepo   repositories.IRecordRepository
	logger       zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	researchRepo repositories.IResearchRepository,
	unitRepo repositories.IUnitRepository,
	recordRepo repositories.IRecordRepository,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		researchRepo: researchRepo,
		unitRepo:     unitRepo,
		recordRepo:   recordRepo,
		logger:       logger,
	}
}

// Catalog lists every research with its units next to the caller's records
func (s *enrollmentServiceImpl) Catalog(ctx context.Context, actor models.Actor) (*EnrollmentCatalog, error) {
	student, err := auth.RequireStudent(actor)
	if err != nil {
		return nil, err
	}

	researches, err := s.researchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := attachUnits(ctx, s.unitRepo, researches); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByStudent(ctx, student.Student.ID)
	if err != nil {
		return nil, err
	}

	return &EnrollmentCatalog{Researches: researches, MyRecords: records}, nil
}

// Enroll takes a seat in unitID for the calling student
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, actor models.Actor, unitID int64) (*models.Record, error) {
	student, err := auth.RequireStudent(actor)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.Enroll(ctx, student.Student.ID, unitID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyEnrolled, apperrors.ErrCapacityExceeded) {
			s.logger.Info().Err(err).Int64("studentID", student.Student.ID).Int64("unitID", unitID).Msg("Enrollment rejected")
		}
		return nil, err
	}

	s.logger.Info().Int64("recordID", record.ID).Int64("studentID", student.Student.ID).Int64("unitID", unitID).Msg("Student enrolled")
	return record, nil
}

// Cancel deletes one of the caller's records and frees its seat
func (s *enrollmentServiceImpl) Cancel(ctx context.Context, actor models.Actor, recordID int64) (*models.Unit, error) {
	student, err := auth.RequireStudent(actor)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.StudentID != student.Student.ID {
		s.logger.Warn().Int64("recordID", recordID).Int64("studentID", student.Student.ID).Msg("Cancel of foreign record rejected")
		return nil, apperrors.ErrNotOwner
	}

	unit, err := s.recordRepo.Cancel(ctx, recordID, student.Student.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("recordID", recordID).Int64("unitID", unit.ID).Msg("Enrollment cancelled")
	return unit, nil
}

// MyRecords lists the caller's enrollments with their outcomes
func (s *enrollmentServiceImpl) MyRecords(ctx context.Context, actor models.Actor) ([]*models.Record, error) {
	student, err := auth.RequireStudent(actor)
	if err != nil {
		return nil, err
	}
	return s.recordRepo.ListByStudent(ctx, student.Student.ID)
}
