package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/dberrors"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IUnitRepository defines unit operations
type IUnitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	GetByID(ctx context.Context, id int64) (*models.Unit, error)
	ListByResearch(ctx context.Context, researchID int64) ([]*models.Unit, error)
	ListByResearchIDs(ctx context.Context, researchIDs []int64) ([]*models.Unit, error)
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id int64) error
}

var unitColumns = []string{
	"un.id", "un.research_id", "un.place", "un.date", "un.period_minutes", "un.max_capacity",
	"un.current_count", "un.remark", "un.created_at", "un.updated_at", "r.prof_id",
}

// UnitRepository handles the units table
type UnitRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUnitRepository creates a new UnitRepository
func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *UnitRepository) selectUnit() squirrel.SelectBuilder {
	return r.sb.Select(unitColumns...).
		From("units un").
		Join("researches r ON r.id = un.research_id")
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	err := row.Scan(&u.ID, &u.ResearchID, &u.Place, &u.Date, &u.PeriodMinutes, &u.MaxCapacity,
		&u.CurrentCount, &u.Remark, &u.CreatedAt, &u.UpdatedAt, &u.ProfID)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UnitRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Unit, error) {
	sql, args, err := query.OrderBy("un.date ASC", "un.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list units query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list units query")
		return nil, fmt.Errorf("error listing units: %w", err)
	}
	defer rows.Close()

	units := make([]*models.Unit, 0)
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning unit row: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", err)
	}
	return units, nil
}

// Create inserts a unit with an empty roster
func (r *UnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	sql, args, err := r.sb.Insert("units").
		Columns("research_id", "place", "date", "period_minutes", "max_capacity", "current_count", "remark").
		Values(unit.ResearchID, unit.Place, unit.Date, unit.PeriodMinutes, unit.MaxCapacity, 0, unit.Remark).
		Suffix("RETURNING id, current_count, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create unit query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&unit.ID, &unit.CurrentCount, &unit.CreatedAt, &unit.UpdatedAt)
	if err != nil {
		if dberrors.IsForeignKeyError(err) {
			return apperrors.ErrResearchNotFound
		}
		logger.Error().Err(err).Int64("researchID", unit.ResearchID).Msg("Error executing create unit query")
		return fmt.Errorf("error creating unit: %w", err)
	}

	logger.Info().Int64("unitID", unit.ID).Int64("researchID", unit.ResearchID).Msg("Unit created")
	return nil
}

// GetByID retrieves a unit with the owner of its research
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*models.Unit, error) {
	sql, args, err := r.selectUnit().Where(squirrel.Eq{"un.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get unit query: %w", err)
	}

	u, err := scanUnit(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUnitNotFound
		}
		logger.Error().Err(err).Int64("unitID", id).Msg("Error scanning unit row")
		return nil, fmt.Errorf("error retrieving unit: %w", err)
	}
	return u, nil
}

// ListByResearch returns the units of one research ordered by date
func (r *UnitRepository) ListByResearch(ctx context.Context, researchID int64) ([]*models.Unit, error) {
	return r.list(ctx, r.selectUnit().Where(squirrel.Eq{"un.research_id": researchID}))
}

// ListByResearchIDs returns the units of several research in one query
func (r *UnitRepository) ListByResearchIDs(ctx context.Context, researchIDs []int64) ([]*models.Unit, error) {
	if len(researchIDs) == 0 {
		return []*models.Unit{}, nil
	}
	return r.list(ctx, r.selectUnit().Where(squirrel.Eq{"un.research_id": researchIDs}))
}

// Update writes the editable unit fields. The capacity may not drop below
// the number of enrolled students.
func (r *UnitRepository) Update(ctx context.Context, unit *models.Unit) error {
	sql, args, err := r.sb.Update("units").
		Set("place", unit.Place).
		Set("date", unit.Date).
		Set("period_minutes", unit.PeriodMinutes).
		Set("max_capacity", unit.MaxCapacity).
		Set("remark", unit.Remark).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": unit.ID}).
		Where(squirrel.LtOrEq{"current_count": unit.MaxCapacity}).
		Suffix("RETURNING current_count, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update unit query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&unit.CurrentCount, &unit.UpdatedAt)
	if err == nil {
		return nil
	}
	if dberrors.IsCheckConstraintError(err, "units_capacity_check") {
		return apperrors.ErrCapacityBelowCount
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("unitID", unit.ID).Msg("Error executing update unit query")
		return fmt.Errorf("error updating unit: %w", err)
	}

	// no row: either the unit is gone or the capacity guard rejected it
	if _, getErr := r.GetByID(ctx, unit.ID); getErr != nil {
		return getErr
	}
	return apperrors.ErrCapacityBelowCount
}

// Delete removes a unit; its records cascade
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("units").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete unit query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("unitID", id).Msg("Error executing delete unit query")
		return fmt.Errorf("error deleting unit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUnitNotFound
	}

	logger.Info().Int64("unitID", id).Msg("Unit deleted")
	return nil
}
