//go:build integration

package repositories

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asaplab/asap/internal/app/migrations"
	"github.com/asaplab/asap/internal/app/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container, applies the migrations and
// returns a pool that is closed when the test ends.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("asap_test"),
		postgres.WithUsername("asap"),
		postgres.WithPassword("asap"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	applied, err := migrator.Migrate(ctx, migrations.Files())
	require.NoError(t, err)
	require.Positive(t, applied)

	// a second run is a no-op
	applied, err = migrator.Migrate(ctx, migrations.Files())
	require.NoError(t, err)
	require.Zero(t, applied)

	return pool
}

var seq atomic.Int64

func nextSeq() int64 {
	return seq.Add(1)
}

func createProf(t *testing.T, repos *Repositories, name string) *models.Prof {
	t.Helper()
	n := nextSeq()
	u := &models.User{
		Email:    fmt.Sprintf("prof%d@univ.ac.kr", n),
		Password: "hash",
		Name:     name,
		Sex:      models.SexFemale,
		IsActive: true,
		IsProf:   true,
	}
	prof := &models.Prof{ProfNumber: fmt.Sprintf("P%d", n), Major: "Psychology"}
	require.NoError(t, repos.UserRepository.CreateProfAccount(context.Background(), u, prof))
	return prof
}

func createStudent(t *testing.T, repos *Repositories) *models.Student {
	t.Helper()
	n := nextSeq()
	u := &models.User{
		Email:     fmt.Sprintf("student%d@univ.ac.kr", n),
		Password:  "hash",
		Name:      fmt.Sprintf("Student %d", n),
		Sex:       models.SexMale,
		IsActive:  true,
		IsStudent: true,
	}
	student := &models.Student{StudentNumber: fmt.Sprintf("2024%04d", n), Major: "Biology"}
	require.NoError(t, repos.UserRepository.CreateStudentAccount(context.Background(), u, student))
	return student
}

func createResearch(t *testing.T, repos *Repositories, profID int64, title string) *models.Research {
	t.Helper()
	research := &models.Research{
		ProfID:   profID,
		Number:   fmt.Sprintf("R%d", nextSeq()),
		Title:    title,
		Year:     2024,
		Semester: models.SemesterSpring,
	}
	require.NoError(t, repos.ResearchRepository.Create(context.Background(), research))
	return research
}

func createUnit(t *testing.T, repos *Repositories, researchID int64, capacity int) *models.Unit {
	t.Helper()
	unit := &models.Unit{
		ResearchID:    researchID,
		Place:         "Room 302",
		Date:          time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC),
		PeriodMinutes: 60,
		MaxCapacity:   capacity,
	}
	require.NoError(t, repos.UnitRepository.Create(context.Background(), unit))
	return unit
}
