package services

import (
	"context"
	"sync"
	"testing"

	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentFixture() (*fakeCatalog, *fakeRecordRepo, EnrollmentService) {
	c := newFakeCatalog()
	records := &fakeRecordRepo{fakeCatalog: c}
	svc := NewEnrollmentService(fakeResearchRepo{c}, fakeUnitRepo{c}, records, zerolog.Nop())
	return c, records, svc
}

func TestEnroll(t *testing.T) {
	c, _, svc := newEnrollmentFixture()
	ctx := context.Background()
	r := c.addResearch(7, "Memory")
	unit := c.addUnit(r.ID, 1)

	record, err := svc.Enroll(ctx, studentActor(1), unit.ID)
	require.NoError(t, err)
	assert.Equal(t, unit.ID, record.UnitID)
	assert.Equal(t, 1, c.units[unit.ID].CurrentCount)

	_, err = svc.Enroll(ctx, studentActor(1), unit.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	_, err = svc.Enroll(ctx, studentActor(2), unit.ID)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	_, err = svc.Enroll(ctx, profActor(7, "Dr. Park"), unit.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Enroll(ctx, studentActor(1), 999)
	assert.ErrorIs(t, err, apperrors.ErrUnitNotFound)
}

func TestEnroll_ConcurrentNeverOverfills(t *testing.T) {
	c, records, svc := newEnrollmentFixture()
	r := c.addResearch(7, "Memory")
	unit := c.addUnit(r.ID, 3)

	var wg sync.WaitGroup
	for i := int64(1); i <= 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, _ = svc.Enroll(context.Background(), studentActor(id), unit.ID)
		}(i)
	}
	wg.Wait()

	got, err := records.ListByUnit(context.Background(), unit.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 3, c.units[unit.ID].CurrentCount)
}

func TestCancel(t *testing.T) {
	c, _, svc := newEnrollmentFixture()
	ctx := context.Background()
	r := c.addResearch(7, "Memory")
	unit := c.addUnit(r.ID, 2)

	record, err := svc.Enroll(ctx, studentActor(1), unit.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, studentActor(2), record.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	assert.Equal(t, 1, c.units[unit.ID].CurrentCount)

	freed, err := svc.Cancel(ctx, studentActor(1), record.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, freed.CurrentCount)
	assert.NotContains(t, c.records, record.ID)

	_, err = svc.Cancel(ctx, studentActor(1), record.ID)
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestCancel_ThenReenroll(t *testing.T) {
	c, _, svc := newEnrollmentFixture()
	ctx := context.Background()
	r := c.addResearch(7, "Memory")
	unit := c.addUnit(r.ID, 2)

	_, err := svc.Enroll(ctx, studentActor(9), unit.ID)
	require.NoError(t, err)

	// A takes the last seat and B is turned away
	recA, err := svc.Enroll(ctx, studentActor(1), unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.units[unit.ID].CurrentCount)

	_, err = svc.Enroll(ctx, studentActor(2), unit.ID)
	assert.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

	freed, err := svc.Cancel(ctx, studentActor(1), recA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, freed.CurrentCount)

	// A can take the seat back right away
	again, err := svc.Enroll(ctx, studentActor(1), unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.units[unit.ID].CurrentCount)

	_, err = svc.Cancel(ctx, studentActor(1), again.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, studentActor(2), unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, c.units[unit.ID].CurrentCount)
}

func TestCatalogAndMyRecords(t *testing.T) {
	c, _, svc := newEnrollmentFixture()
	ctx := context.Background()
	r1 := c.addResearch(7, "Memory")
	r2 := c.addResearch(8, "Attention")
	u1 := c.addUnit(r1.ID, 2)
	c.addUnit(r2.ID, 2)

	_, err := svc.Enroll(ctx, studentActor(1), u1.ID)
	require.NoError(t, err)

	catalog, err := svc.Catalog(ctx, studentActor(1))
	require.NoError(t, err)
	require.Len(t, catalog.Researches, 2)
	assert.Equal(t, r1.ID, catalog.Researches[0].ID)
	assert.Len(t, catalog.Researches[0].Units, 1)
	assert.Len(t, catalog.MyRecords, 1)

	mine, err := svc.MyRecords(ctx, studentActor(2))
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = svc.Catalog(ctx, profActor(7, "Dr. Park"))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
