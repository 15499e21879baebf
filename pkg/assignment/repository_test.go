package assignment

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meetcal/meetcal/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := testcontainers.TerminateContainer(pgContainer); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		require.NoError(t, pgContainer.Restore(ctx))
	})
	return ctx, NewRepository(db)
}

func TestRepositoryImpl_SetStatus(t *testing.T) {
	t.Run("should overwrite status of the same assignment", func(t *testing.T) {
		// given
		ctx, repo := setupTestRepository(t)
		require.NoError(t, repo.SetStatus(ctx, 1, "a1", InProgress))

		// when
		require.NoError(t, repo.SetStatus(ctx, 1, "a1", Done))

		// then
		statuses, err := repo.GetStatuses(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, Statuses{"a1": Done}, statuses)
	})

	t.Run("should keep statuses per user", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)
		require.NoError(t, repo.SetStatus(ctx, 1, "a1", Done))
		require.NoError(t, repo.SetStatus(ctx, 2, "a1", InProgress))

		first, err := repo.GetStatuses(ctx, 1)
		require.NoError(t, err)
		second, err := repo.GetStatuses(ctx, 2)
		require.NoError(t, err)

		assert.Equal(t, Done, first.Of("a1"))
		assert.Equal(t, InProgress, second.Of("a1"))
	})

	t.Run("should return empty statuses for new user", func(t *testing.T) {
		ctx, repo := setupTestRepository(t)

		statuses, err := repo.GetStatuses(ctx, 42)

		require.NoError(t, err)
		assert.Empty(t, statuses)
	})
}
