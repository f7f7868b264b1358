package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/db"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/dberrors"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IRecordRepository defines enrollment operations
type IRecordRepository interface {
	// Enroll creates the record and takes a seat atomically
	Enroll(ctx context.Context, studentID, unitID int64) (*models.Record, error)
	// Cancel deletes the student's record and frees the seat atomically
	Cancel(ctx context.Context, recordID, studentID int64) (*models.Unit, error)
	GetByID(ctx context.Context, id int64) (*models.Record, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Record, error)
	ListByUnit(ctx context.Context, unitID int64) ([]*models.Record, error)
	// SetOutcomes writes every outcome or none
	SetOutcomes(ctx context.Context, unitID int64, outcomes map[int64]models.Outcome) error
}

// RecordRepository handles the records table and the unit counters it drives
type RecordRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Enroll locks the unit row, then checks for an existing record and a free
// seat before inserting. The increment is conditional on a free seat as well,
// so concurrent callers can never push current_count past max_capacity.
func (r *RecordRepository) Enroll(ctx context.Context, studentID, unitID int64) (*models.Record, error) {
	record := &models.Record{StudentID: studentID, UnitID: unitID}

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		unit, err := r.lockUnit(ctx, tx, unitID)
		if err != nil {
			return err
		}

		exists, err := r.recordExists(ctx, tx, studentID, unitID)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrAlreadyEnrolled
		}

		if unit.CurrentCount >= unit.MaxCapacity {
			return apperrors.ErrCapacityExceeded
		}

		sql, args, err := r.sb.Insert("records").
			Columns("student_id", "unit_id").
			Values(studentID, unitID).
			Suffix("RETURNING id, outcome, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create record query: %w", err)
		}
		err = tx.QueryRow(ctx, sql, args...).Scan(&record.ID, &record.Outcome, &record.CreatedAt, &record.UpdatedAt)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "records_student_id_unit_id_key") {
				return apperrors.ErrAlreadyEnrolled
			}
			return fmt.Errorf("error creating record: %w", err)
		}

		sql, args, err = r.sb.Update("units").
			Set("current_count", squirrel.Expr("current_count + 1")).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": unitID}).
			Where("current_count < max_capacity").
			Suffix("RETURNING current_count").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build increment query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&unit.CurrentCount); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrCapacityExceeded
			}
			return fmt.Errorf("error incrementing unit count: %w", err)
		}

		record.Unit = unit
		return nil
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrAlreadyEnrolled, apperrors.ErrCapacityExceeded, apperrors.ErrUnitNotFound) {
			logger.Error().Err(err).Int64("studentID", studentID).Int64("unitID", unitID).Msg("Enroll transaction failed")
		}
		return nil, err
	}

	return record, nil
}

func (r *RecordRepository) lockUnit(ctx context.Context, tx pgx.Tx, unitID int64) (*models.Unit, error) {
	sql, args, err := r.sb.Select(
		"id", "research_id", "place", "date", "period_minutes", "max_capacity", "current_count",
		"remark", "created_at", "updated_at",
	).
		From("units").
		Where(squirrel.Eq{"id": unitID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock unit query: %w", err)
	}

	var u models.Unit
	err = tx.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.ResearchID, &u.Place, &u.Date, &u.PeriodMinutes,
		&u.MaxCapacity, &u.CurrentCount, &u.Remark, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUnitNotFound
		}
		return nil, fmt.Errorf("error locking unit: %w", err)
	}
	return &u, nil
}

func (r *RecordRepository) recordExists(ctx context.Context, tx pgx.Tx, studentID, unitID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("records").
		Where(squirrel.Eq{"student_id": studentID, "unit_id": unitID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build record exists query: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking record: %w", err)
	}
	return exists, nil
}

// Cancel deletes the record only if it belongs to studentID and decrements
// the unit's count, never below zero.
func (r *RecordRepository) Cancel(ctx context.Context, recordID, studentID int64) (*models.Unit, error) {
	var unit models.Unit

	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("records").
			Where(squirrel.Eq{"id": recordID, "student_id": studentID}).
			Suffix("RETURNING unit_id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete record query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&unit.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrRecordNotFound
			}
			return fmt.Errorf("error deleting record: %w", err)
		}

		sql, args, err = r.sb.Update("units").
			Set("current_count", squirrel.Expr("GREATEST(current_count - 1, 0)")).
			Set("updated_at", time.Now()).
			Where(squirrel.Eq{"id": unit.ID}).
			Suffix("RETURNING research_id, max_capacity, current_count").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build decrement query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&unit.ResearchID, &unit.MaxCapacity, &unit.CurrentCount); err != nil {
			return fmt.Errorf("error decrementing unit count: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrRecordNotFound) {
			logger.Error().Err(err).Int64("recordID", recordID).Msg("Cancel transaction failed")
		}
		return nil, err
	}

	return &unit, nil
}

// GetByID retrieves a record without relations
func (r *RecordRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	sql, args, err := r.sb.Select("id", "student_id", "unit_id", "outcome", "created_at", "updated_at").
		From("records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get record query: %w", err)
	}

	var rec models.Record
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.StudentID, &rec.UnitID, &rec.Outcome, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("error retrieving record: %w", err)
	}
	return &rec, nil
}

// ListByStudent returns a student's records with unit and research, newest unit first
func (r *RecordRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Record, error) {
	sql, args, err := r.sb.Select(
		"rec.id", "rec.student_id", "rec.unit_id", "rec.outcome", "rec.created_at", "rec.updated_at",
		"un.id", "un.research_id", "un.place", "un.date", "un.period_minutes", "un.max_capacity", "un.current_count", "un.remark",
		"r.id", "r.prof_id", "r.number", "r.title", "r.year", "r.semester", "r.description", "u.name",
	).
		From("records rec").
		Join("units un ON un.id = rec.unit_id").
		Join("researches r ON r.id = un.research_id").
		Join("profs p ON p.id = r.prof_id").
		Join("users u ON u.id = p.user_id").
		Where(squirrel.Eq{"rec.student_id": studentID}).
		OrderBy("un.date DESC", "rec.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list student records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error listing student records")
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.Record, 0)
	for rows.Next() {
		rec := &models.Record{Unit: &models.Unit{}, Research: &models.Research{}}
		u, res := rec.Unit, rec.Research
		err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.UnitID, &rec.Outcome, &rec.CreatedAt, &rec.UpdatedAt,
			&u.ID, &u.ResearchID, &u.Place, &u.Date, &u.PeriodMinutes, &u.MaxCapacity, &u.CurrentCount, &u.Remark,
			&res.ID, &res.ProfID, &res.Number, &res.Title, &res.Year, &res.Semester, &res.Description, &res.ProfName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}
		u.ProfID = res.ProfID
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}

// ListByUnit returns a unit's roster with student profile and account
func (r *RecordRepository) ListByUnit(ctx context.Context, unitID int64) ([]*models.Record, error) {
	sql, args, err := r.sb.Select(
		"rec.id", "rec.student_id", "rec.unit_id", "rec.outcome", "rec.created_at", "rec.updated_at",
		"s.id", "s.user_id", "s.student_number", "s.major", "u.id", "u.name", "u.email",
	).
		From("records rec").
		Join("students s ON s.id = rec.student_id").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"rec.unit_id": unitID}).
		OrderBy("rec.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list unit records query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("unitID", unitID).Msg("Error listing unit records")
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.Record, 0)
	for rows.Next() {
		rec := &models.Record{Student: &models.Student{User: &models.User{}}}
		s := rec.Student
		err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.UnitID, &rec.Outcome, &rec.CreatedAt, &rec.UpdatedAt,
			&s.ID, &s.UserID, &s.StudentNumber, &s.Major, &s.User.ID, &s.User.Name, &s.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating record rows: %w", err)
	}
	return records, nil
}

// SetOutcomes updates each record of the unit inside one transaction. A
// record id outside the unit aborts the whole batch.
func (r *RecordRepository) SetOutcomes(ctx context.Context, unitID int64, outcomes map[int64]models.Outcome) error {
	err := db.WithTx(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now()
		for recordID, outcome := range outcomes {
			sql, args, err := r.sb.Update("records").
				Set("outcome", outcome).
				Set("updated_at", now).
				Where(squirrel.Eq{"id": recordID, "unit_id": unitID}).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build set outcome query: %w", err)
			}

			tag, err := tx.Exec(ctx, sql, args...)
			if err != nil {
				return fmt.Errorf("error setting outcome of record %d: %w", recordID, err)
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("record %d: %w", recordID, apperrors.ErrRecordNotFound)
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Int64("unitID", unitID).Msg("Outcome batch rolled back")
		return err
	}

	return nil
}
