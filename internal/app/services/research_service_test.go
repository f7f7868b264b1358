package services

import (
	"context"
	"testing"
	"time"

	"github.com/asaplab/asap/internal/app/auth"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/app/models/dto"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogServices(c *fakeCatalog) (*researchServiceImpl, UnitService) {
	authz := auth.NewAuthorizationService(fakeResearchRepo{c}, fakeUnitRepo{c})
	research := NewResearchService(fakeResearchRepo{c}, fakeUnitRepo{c}, authz, zerolog.Nop()).(*researchServiceImpl)
	research.now = func() time.Time { return time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) }
	return research, NewUnitService(fakeUnitRepo{c}, authz, zerolog.Nop())
}

func TestResearchCreate(t *testing.T) {
	c := newFakeCatalog()
	svc, _ := newCatalogServices(c)
	ctx := context.Background()

	t.Run("defaults year and normalizes semester", func(t *testing.T) {
		research, err := svc.Create(ctx, profActor(7, "Dr. Park"), &dto.ResearchRequest{
			Number: " PSY101 ", Title: "Visual attention", Semester: "fall",
		})
		require.NoError(t, err)
		assert.Equal(t, 2025, research.Year)
		assert.Equal(t, models.SemesterFall, research.Semester)
		assert.Equal(t, "PSY101", research.Number)
		assert.Equal(t, int64(7), research.ProfID)
		assert.Equal(t, "Dr. Park", research.ProfName)
	})

	t.Run("students cannot create", func(t *testing.T) {
		_, err := svc.Create(ctx, studentActor(3), &dto.ResearchRequest{Number: "A", Title: "B", Semester: "SPRING"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("title too long", func(t *testing.T) {
		_, err := svc.Create(ctx, profActor(7, "Dr. Park"), &dto.ResearchRequest{
			Number: "A1", Title: "a title that is far too long for the column", Semester: "SPRING",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Contains(t, apperrors.DetailsOf(err), "title")
	})
}

func TestResearchUpdateAndDelete_RequireOwner(t *testing.T) {
	c := newFakeCatalog()
	svc, _ := newCatalogServices(c)
	ctx := context.Background()
	r := c.addResearch(7, "Memory")

	req := &dto.ResearchRequest{Number: "M1", Title: "Working memory", Year: 2024, Semester: "SPRING"}

	_, err := svc.Update(ctx, profActor(8, "Dr. Choi"), r.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.Delete(ctx, profActor(8, "Dr. Choi"), r.ID), apperrors.ErrPermissionDenied)

	updated, err := svc.Update(ctx, profActor(7, "Dr. Park"), r.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Working memory", updated.Title)
	assert.Equal(t, "Working memory", c.researches[r.ID].Title)

	require.NoError(t, svc.Delete(ctx, profActor(7, "Dr. Park"), r.ID))
	_, err = svc.Detail(ctx, r.ID)
	assert.ErrorIs(t, err, apperrors.ErrResearchNotFound)
}

func TestResearchListMine_AttachesUnits(t *testing.T) {
	c := newFakeCatalog()
	svc, _ := newCatalogServices(c)
	mine := c.addResearch(7, "Memory")
	c.addResearch(8, "Other")
	c.addUnit(mine.ID, 5)
	c.addUnit(mine.ID, 3)

	list, err := svc.ListMine(context.Background(), profActor(7, "Dr. Park"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Units, 2)
}

func TestUnitService(t *testing.T) {
	c := newFakeCatalog()
	_, svc := newCatalogServices(c)
	ctx := context.Background()
	owner := profActor(7, "Dr. Park")
	r := c.addResearch(7, "Memory")
	other := c.addResearch(7, "Attention")

	req := &dto.UnitRequest{Place: "Room 302", Date: time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC), PeriodMinutes: 90, MaxCapacity: 2}

	unit, err := svc.Create(ctx, owner, r.ID, req)
	require.NoError(t, err)
	assert.Equal(t, r.ID, unit.ResearchID)

	t.Run("foreign professor", func(t *testing.T) {
		_, err := svc.Create(ctx, profActor(8, "Dr. Choi"), r.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("bad period", func(t *testing.T) {
		bad := *req
		bad.PeriodMinutes = 50
		_, err := svc.Create(ctx, owner, r.ID, &bad)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unit under another research path", func(t *testing.T) {
		_, err := svc.Update(ctx, owner, other.ID, unit.ID, req)
		assert.ErrorIs(t, err, apperrors.ErrUnitNotFound)
	})

	t.Run("capacity below enrolled count", func(t *testing.T) {
		c.units[unit.ID].CurrentCount = 2
		shrink := *req
		shrink.MaxCapacity = 1
		_, err := svc.Update(ctx, owner, r.ID, unit.ID, &shrink)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Contains(t, apperrors.DetailsOf(err), "maxCapacity")
		c.units[unit.ID].CurrentCount = 0
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, owner, r.ID, unit.ID))
		assert.NotContains(t, c.units, unit.ID)
	})
}
