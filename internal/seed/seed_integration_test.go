//go:build integration

package seed

import (
	"context"
	"testing"
	"time"

	"github.com/asaplab/asap/internal/app/migrations"
	"github.com/asaplab/asap/internal/app/repositories"
	"github.com/asaplab/asap/internal/pkg/auth"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestCreateDemoData_Idempotent(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("asap_seed"),
		postgres.WithUsername("asap"),
		postgres.WithPassword("asap"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = migrations.NewMigrator(pool, zerolog.Nop()).Migrate(ctx, migrations.Files())
	require.NoError(t, err)

	repos := repositories.NewRepositories(pool)
	require.NoError(t, CreateDemoData(ctx, repos, zerolog.Nop()))
	require.NoError(t, CreateDemoData(ctx, repos, zerolog.Nop()))

	all, err := repos.ResearchRepository.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Demo Professor", all[0].ProfName)

	units, err := repos.UnitRepository.ListByResearch(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Len(t, units, 1)

	student, err := repos.UserRepository.GetByEmail(ctx, DemoStudentEmail)
	require.NoError(t, err)
	assert.True(t, student.IsActive)
	assert.True(t, auth.CheckPassword(student.Password, DemoPassword))
}
