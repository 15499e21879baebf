package google

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meetcal/meetcal/internal/test_utils"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/oauth2"
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

func setupTokenRepository(t *testing.T) (context.Context, *TokenRepositoryImpl) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		require.NoError(t, pgContainer.Restore(ctx))
	})
	return ctx, NewTokenRepository(db)
}

func TestTokenRepository(t *testing.T) {
	t.Run("should have no token before callback", func(t *testing.T) {
		ctx, repo := setupTokenRepository(t)
		require.NoError(t, repo.BeginAuth(ctx, 1, "nonce-1"))

		token, err := repo.GetToken(ctx, 1)

		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("should store token for nonce", func(t *testing.T) {
		// given
		ctx, repo := setupTokenRepository(t)
		require.NoError(t, repo.BeginAuth(ctx, 1, "nonce-1"))
		expiry := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)

		// when
		err := repo.CompleteAuth(ctx, "nonce-1", &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", Expiry: expiry})

		// then
		require.NoError(t, err)
		token, err := repo.GetToken(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, "access", token.AccessToken)
		assert.Equal(t, "refresh", token.RefreshToken)
		assert.True(t, expiry.Equal(token.Expiry))
	})

	t.Run("should replace pending authorization on new login", func(t *testing.T) {
		ctx, repo := setupTokenRepository(t)
		require.NoError(t, repo.BeginAuth(ctx, 1, "old"))
		require.NoError(t, repo.BeginAuth(ctx, 1, "new"))

		err := repo.CompleteAuth(ctx, "old", &oauth2.Token{AccessToken: "stale"})

		assert.ErrorIs(t, err, ErrUnknownNonce)
	})

	t.Run("should forget token on delete", func(t *testing.T) {
		ctx, repo := setupTokenRepository(t)
		require.NoError(t, repo.BeginAuth(ctx, 1, "nonce-1"))
		require.NoError(t, repo.CompleteAuth(ctx, "nonce-1", &oauth2.Token{AccessToken: "access"}))

		require.NoError(t, repo.DeleteToken(ctx, 1))

		token, err := repo.GetToken(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, token)
	})
}
