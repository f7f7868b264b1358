//go:build integration

package repositories

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/asaplab/asap/internal/app/models"
	"github.com/asaplab/asap/internal/pkg/apperrors"
	"github.com/asaplab/asap/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepository(t *testing.T) {
	pool := setupTestDB(t)
	repos := NewRepositories(pool)
	ctx := context.Background()

	prof := createProf(t, repos, "Lee Jihoon")
	research := createResearch(t, repos, prof.ID, "Visual attention")

	t.Run("concurrent enroll fills exactly the free seats", func(t *testing.T) {
		const capacity = 3
		const students = 12
		unit := createUnit(t, repos, research.ID, capacity)

		ids := make([]int64, students)
		for i := range ids {
			ids[i] = createStudent(t, repos).ID
		}

		var wg sync.WaitGroup
		var mu sync.Mutex
		var succeeded, full int
		var unexpected []error
		for _, id := range ids {
			wg.Add(1)
			go func(studentID int64) {
				defer wg.Done()
				_, err := repos.RecordRepository.Enroll(ctx, studentID, unit.ID)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, apperrors.ErrCapacityExceeded):
					full++
				default:
					unexpected = append(unexpected, err)
				}
			}(id)
		}
		wg.Wait()

		require.Empty(t, unexpected)
		assert.Equal(t, capacity, succeeded)
		assert.Equal(t, students-capacity, full)

		got, err := repos.UnitRepository.GetByID(ctx, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, capacity, got.CurrentCount)

		roster, err := repos.RecordRepository.ListByUnit(ctx, unit.ID)
		require.NoError(t, err)
		assert.Len(t, roster, capacity)
	})

	t.Run("second enroll of the same student is rejected", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 5)
		student := createStudent(t, repos)

		rec, err := repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeUnset, rec.Outcome)
		assert.Equal(t, 1, rec.Unit.CurrentCount)

		_, err = repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

		got, err := repos.UnitRepository.GetByID(ctx, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.CurrentCount)
	})

	t.Run("enroll in a missing unit", func(t *testing.T) {
		student := createStudent(t, repos)
		_, err := repos.RecordRepository.Enroll(ctx, student.ID, 999999)
		assert.ErrorIs(t, err, apperrors.ErrUnitNotFound)
	})

	t.Run("cancel frees the seat for the owner only", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 1)
		owner := createStudent(t, repos)
		other := createStudent(t, repos)

		rec, err := repos.RecordRepository.Enroll(ctx, owner.ID, unit.ID)
		require.NoError(t, err)

		_, err = repos.RecordRepository.Cancel(ctx, rec.ID, other.ID)
		assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)

		freed, err := repos.RecordRepository.Cancel(ctx, rec.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, unit.ID, freed.ID)
		assert.Equal(t, 0, freed.CurrentCount)

		_, err = repos.RecordRepository.GetByID(ctx, rec.ID)
		assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)

		// the seat is usable again
		_, err = repos.RecordRepository.Enroll(ctx, other.ID, unit.ID)
		assert.NoError(t, err)
	})

	t.Run("same student can cancel and enroll again", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 3)
		student := createStudent(t, repos)
		_, err := repos.RecordRepository.Enroll(ctx, createStudent(t, repos).ID, unit.ID)
		require.NoError(t, err)

		rec, err := repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, rec.Unit.CurrentCount)

		freed, err := repos.RecordRepository.Cancel(ctx, rec.ID, student.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, freed.CurrentCount)

		again, err := repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		require.NoError(t, err)
		assert.NotEqual(t, rec.ID, again.ID)
		assert.Equal(t, 2, again.Unit.CurrentCount)

		got, err := repos.UnitRepository.GetByID(ctx, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.CurrentCount)
	})

	t.Run("full unit reopens after a cancel", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 2)
		_, err := repos.RecordRepository.Enroll(ctx, createStudent(t, repos).ID, unit.ID)
		require.NoError(t, err)
		a := createStudent(t, repos)
		b := createStudent(t, repos)

		recA, err := repos.RecordRepository.Enroll(ctx, a.ID, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, recA.Unit.CurrentCount)

		_, err = repos.RecordRepository.Enroll(ctx, b.ID, unit.ID)
		require.ErrorIs(t, err, apperrors.ErrCapacityExceeded)

		freed, err := repos.RecordRepository.Cancel(ctx, recA.ID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, freed.CurrentCount)

		recB, err := repos.RecordRepository.Enroll(ctx, b.ID, unit.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, recB.Unit.CurrentCount)

		roster, err := repos.RecordRepository.ListByUnit(ctx, unit.ID)
		require.NoError(t, err)
		assert.Len(t, roster, 2)
	})

	t.Run("successful writes log nothing at info level", func(t *testing.T) {
		var buf bytes.Buffer
		logger.Configure(logger.Config{Level: logger.InfoLevel, Output: &buf})
		t.Cleanup(func() {
			logger.Configure(logger.Config{Level: logger.InfoLevel, Pretty: true, Output: os.Stdout})
		})

		unit := createUnit(t, repos, research.ID, 2)
		student := createStudent(t, repos)
		buf.Reset()

		rec, err := repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		require.NoError(t, err)
		require.NoError(t, repos.RecordRepository.SetOutcomes(ctx, unit.ID, map[int64]models.Outcome{rec.ID: models.OutcomePass}))
		_, err = repos.RecordRepository.Cancel(ctx, rec.ID, student.ID)
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})

	t.Run("cancel never drives the count below zero", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 2)
		student := createStudent(t, repos)

		rec, err := repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		require.NoError(t, err)

		_, err = pool.Exec(ctx, `UPDATE units SET current_count = 0 WHERE id = $1`, unit.ID)
		require.NoError(t, err)

		freed, err := repos.RecordRepository.Cancel(ctx, rec.ID, student.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, freed.CurrentCount)
	})

	t.Run("outcomes are written all or nothing", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 5)
		otherUnit := createUnit(t, repos, research.ID, 5)
		a, err := repos.RecordRepository.Enroll(ctx, createStudent(t, repos).ID, unit.ID)
		require.NoError(t, err)
		b, err := repos.RecordRepository.Enroll(ctx, createStudent(t, repos).ID, unit.ID)
		require.NoError(t, err)
		foreign, err := repos.RecordRepository.Enroll(ctx, createStudent(t, repos).ID, otherUnit.ID)
		require.NoError(t, err)

		err = repos.RecordRepository.SetOutcomes(ctx, unit.ID, map[int64]models.Outcome{
			a.ID:       models.OutcomePass,
			foreign.ID: models.OutcomeFail,
		})
		require.ErrorIs(t, err, apperrors.ErrRecordNotFound)

		got, err := repos.RecordRepository.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeUnset, got.Outcome)

		err = repos.RecordRepository.SetOutcomes(ctx, unit.ID, map[int64]models.Outcome{
			a.ID: models.OutcomePass,
			b.ID: models.OutcomeFail,
		})
		require.NoError(t, err)

		roster, err := repos.RecordRepository.ListByUnit(ctx, unit.ID)
		require.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, models.OutcomePass, roster[0].Outcome)
		assert.Equal(t, models.OutcomeFail, roster[1].Outcome)
		assert.NotEmpty(t, roster[0].Student.StudentNumber)
	})

	t.Run("student records carry unit and research", func(t *testing.T) {
		unit := createUnit(t, repos, research.ID, 5)
		student := createStudent(t, repos)
		_, err := repos.RecordRepository.Enroll(ctx, student.ID, unit.ID)
		require.NoError(t, err)

		records, err := repos.RecordRepository.ListByStudent(ctx, student.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, unit.ID, records[0].Unit.ID)
		assert.Equal(t, "Visual attention", records[0].Research.Title)
		assert.Equal(t, "Lee Jihoon", records[0].Research.ProfName)
	})
}
