package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/db"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/dberrors"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// ProfRepository handles professor profile database operations
type ProfRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewProfRepository creates a new ProfRepository
func NewProfRepository(conn db.DBTX) *ProfRepository {
	return &ProfRepository{
		db: conn,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a copy of the repository bound to tx
func (r *ProfRepository) WithTx(tx pgx.Tx) *ProfRepository {
	return &ProfRepository{db: tx, sb: r.sb}
}

// CreateProf creates a new professor profile
func (r *ProfRepository) CreateProf(ctx context.Context, prof *models.Prof) error {
	sql, args, err := r.sb.Insert("profs").
		Columns("user_id", "prof_number", "major").
		Values(prof.UserID, prof.ProfNumber, prof.Major).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create prof SQL")
		return fmt.Errorf("failed to build create prof query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&prof.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profs_prof_number_key") {
			logger.Warn().Str("profNumber", prof.ProfNumber).Msg("Attempted to create prof with duplicate number")
			return apperrors.ErrProfNumberExists
		}
		logger.Error().Err(err).Int64("userID", prof.UserID).Msg("Error executing create prof query")
		return fmt.Errorf("error creating prof: %w", err)
	}

	logger.Info().Int64("userID", prof.UserID).Int64("profID", prof.ID).Msg("Prof created successfully")
	return nil
}

// GetProfByUserID retrieves the professor profile of a user
func (r *ProfRepository) GetProfByUserID(ctx context.Context, userID int64) (*models.Prof, error) {
	var prof models.Prof
	sql, args, err := r.sb.Select("id", "user_id", "prof_number", "major").
		From("profs").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get prof query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&prof.ID, &prof.UserID, &prof.ProfNumber, &prof.Major)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning prof row")
		return nil, fmt.Errorf("error retrieving prof: %w", err)
	}

	return &prof, nil
}

// UpdateProf updates number and major of the professor profile
func (r *ProfRepository) UpdateProf(ctx context.Context, prof *models.Prof) error {
	sql, args, err := r.sb.Update("profs").
		Set("prof_number", prof.ProfNumber).
		Set("major", prof.Major).
		Where(squirrel.Eq{"id": prof.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update prof query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "profs_prof_number_key") {
			return apperrors.ErrProfNumberExists
		}
		logger.Error().Err(err).Int64("profID", prof.ID).Msg("Error executing update prof query")
		return fmt.Errorf("error updating prof: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
