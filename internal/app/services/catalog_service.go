package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// CatalogService searches the research catalog
type CatalogService interface {
	Search(ctx context.Context, q, option string) ([]*models.Research, error)
}

type catalogServiceImpl struct {
	researchRepo repositories.IResearchRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(researchRepo repositories.IResearchRepository, logger zerolog.Logger) CatalogService {
	return &catalogServiceImpl{
		researchRepo: researchRepo,
		logger:       logger,
	}
}

// Search matches q case-insensitively as a substring of the field named by
// option. An empty q returns the whole catalog in stored order.
func (s *catalogServiceImpl) Search(ctx context.Context, q, option string) ([]*models.Research, error) {
	q = strings.TrimSpace(q)
	field, ok := models.ParseSearchField(option)

	if q == "" {
		return s.researchRepo.ListAll(ctx)
	}
	if !ok {
		options := make([]string, 0, len(models.SearchFields))
		for _, f := range models.SearchFields {
			options = append(options, string(f))
		}
		return nil, apperrors.NewValidationError("unknown search option", map[string]interface{}{
			"q_option": fmt.Sprintf("must be one of %s", strings.Join(options, ", ")),
		})
	}

	s.logger.Debug().Str("field", string(field)).Str("q", q).Msg("Searching catalog")
	return s.researchRepo.Search(ctx, field, q)
}
