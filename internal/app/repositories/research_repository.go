package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/helpers"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IResearchRepository defines research catalog operations
type IResearchRepository interface {
	Create(ctx context.Context, research *models.Research) error
	GetByID(ctx context.Context, id int64) (*models.Research, error)
	ListByProf(ctx context.Context, profID int64) ([]*models.Research, error)
	ListAll(ctx context.Context) ([]*models.Research, error)
	Update(ctx context.Context, research *models.Research) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, field models.SearchField, q string) ([]*models.Research, error)
}

// searchColumns maps a search field to the expression it matches on
var searchColumns = map[models.SearchField]string{
	models.SearchByProf:        "u.name",
	models.SearchByTitle:       "r.title",
	models.SearchByNumber:      "r.number",
	models.SearchByYear:        "CAST(r.year AS TEXT)",
	models.SearchBySemester:    "r.semester",
	models.SearchByDescription: "r.description",
}

// ResearchRepository handles the researches table
type ResearchRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResearchRepository creates a new ResearchRepository
func NewResearchRepository(db *pgxpool.Pool) *ResearchRepository {
	return &ResearchRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// selectResearch joins the owning professor's name
func (r *ResearchRepository) selectResearch() squirrel.SelectBuilder {
	return r.sb.Select(
		"r.id", "r.prof_id", "r.number", "r.title", "r.year", "r.semester", "r.description",
		"r.created_at", "r.updated_at", "u.name",
	).
		From("researches r").
		Join("profs p ON p.id = r.prof_id").
		Join("users u ON u.id = p.user_id")
}

func scanResearch(row pgx.Row) (*models.Research, error) {
	var res models.Research
	err := row.Scan(&res.ID, &res.ProfID, &res.Number, &res.Title, &res.Year, &res.Semester, &res.Description,
		&res.CreatedAt, &res.UpdatedAt, &res.ProfName)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResearchRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Research, error) {
	sql, args, err := query.OrderBy("r.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list research query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list research query")
		return nil, fmt.Errorf("error listing research: %w", err)
	}
	defer rows.Close()

	researches := make([]*models.Research, 0)
	for rows.Next() {
		res, err := scanResearch(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning research row: %w", err)
		}
		researches = append(researches, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating research rows: %w", err)
	}
	return researches, nil
}

// Create inserts a research and sets its ID and timestamps
func (r *ResearchRepository) Create(ctx context.Context, research *models.Research) error {
	sql, args, err := r.sb.Insert("researches").
		Columns("prof_id", "number", "title", "year", "semester", "description").
		Values(research.ProfID, research.Number, research.Title, research.Year, research.Semester, research.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create research query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&research.ID, &research.CreatedAt, &research.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Int64("profID", research.ProfID).Msg("Error executing create research query")
		return fmt.Errorf("error creating research: %w", err)
	}

	logger.Info().Int64("researchID", research.ID).Int64("profID", research.ProfID).Msg("Research created")
	return nil
}

// GetByID retrieves a research with its professor's name
func (r *ResearchRepository) GetByID(ctx context.Context, id int64) (*models.Research, error) {
	sql, args, err := r.selectResearch().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get research query: %w", err)
	}

	res, err := scanResearch(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResearchNotFound
		}
		logger.Error().Err(err).Int64("researchID", id).Msg("Error scanning research row")
		return nil, fmt.Errorf("error retrieving research: %w", err)
	}
	return res, nil
}

// ListByProf returns the research owned by a professor in creation order
func (r *ResearchRepository) ListByProf(ctx context.Context, profID int64) ([]*models.Research, error) {
	return r.list(ctx, r.selectResearch().Where(squirrel.Eq{"r.prof_id": profID}))
}

// ListAll returns the whole catalog in stored order
func (r *ResearchRepository) ListAll(ctx context.Context) ([]*models.Research, error) {
	return r.list(ctx, r.selectResearch())
}

// Search matches q as a case-insensitive substring of field. An empty q
// returns the whole catalog.
func (r *ResearchRepository) Search(ctx context.Context, field models.SearchField, q string) ([]*models.Research, error) {
	if q == "" {
		return r.ListAll(ctx)
	}

	column, ok := searchColumns[field]
	if !ok {
		return nil, apperrors.NewValidationError("unknown search option", map[string]interface{}{
			"q_option": string(field),
		})
	}

	return r.list(ctx, r.selectResearch().Where(column+" ILIKE ?", helpers.ContainsPattern(q)))
}

// Update writes the editable research fields
func (r *ResearchRepository) Update(ctx context.Context, research *models.Research) error {
	sql, args, err := r.sb.Update("researches").
		Set("number", research.Number).
		Set("title", research.Title).
		Set("year", research.Year).
		Set("semester", research.Semester).
		Set("description", research.Description).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": research.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update research query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&research.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrResearchNotFound
		}
		logger.Error().Err(err).Int64("researchID", research.ID).Msg("Error executing update research query")
		return fmt.Errorf("error updating research: %w", err)
	}
	return nil
}

// Delete removes a research; its units and records cascade
func (r *ResearchRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("researches").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete research query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("researchID", id).Msg("Error executing delete research query")
		return fmt.Errorf("error deleting research: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResearchNotFound
	}

	logger.Info().Int64("researchID", id).Msg("Research deleted")
	return nil
}
