package google

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var ErrUnknownNonce = errors.New("unknown authentication nonce")

// TokenRepository keeps one Google authorization per user. An authorization
// starts with a nonce and receives its token when the OAuth callback arrives.
type TokenRepository interface {
	BeginAuth(ctx context.Context, userId int, nonce string) error
	CompleteAuth(ctx context.Context, nonce string, token *oauth2.Token) error
	// GetToken returns nil when the user has not completed an authorization.
	GetToken(ctx context.Context, userId int) (*oauth2.Token, error)
	DeleteToken(ctx context.Context, userId int) error
}

type TokenRepositoryImpl struct {
	db *pgxpool.Pool
}

func NewTokenRepository(db *pgxpool.Pool) *TokenRepositoryImpl {
	return &TokenRepositoryImpl{db: db}
}

func (r *TokenRepositoryImpl) BeginAuth(ctx context.Context, userId int, nonce string) error {
	query := `INSERT INTO google_calendar_auth (user_id, nonce) VALUES ($1, $2)
			  ON CONFLICT (user_id) DO UPDATE SET nonce = EXCLUDED.nonce, access_token = '', refresh_token = '', expiry = NULL`
	if _, err := r.db.Exec(ctx, query, userId, nonce); err != nil {
		err := fmt.Errorf("failed to store Google auth nonce for user %d: %w", userId, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *TokenRepositoryImpl) CompleteAuth(ctx context.Context, nonce string, token *oauth2.Token) error {
	query := `UPDATE google_calendar_auth SET access_token = $1, refresh_token = $2, expiry = $3 WHERE nonce = $4`
	tag, err := r.db.Exec(ctx, query, token.AccessToken, token.RefreshToken, token.Expiry, nonce)
	if err != nil {
		err := fmt.Errorf("unable to store Google auth token for nonce: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUnknownNonce
	}
	return nil
}

func (r *TokenRepositoryImpl) GetToken(ctx context.Context, userId int) (*oauth2.Token, error) {
	var token oauth2.Token
	var expiry *time.Time
	err := r.db.QueryRow(ctx, "SELECT access_token, refresh_token, expiry FROM google_calendar_auth WHERE user_id = $1", userId).
		Scan(&token.AccessToken, &token.RefreshToken, &expiry)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google auth token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, nil
	}
	if expiry != nil {
		token.Expiry = *expiry
	}
	return &token, nil
}

func (r *TokenRepositoryImpl) DeleteToken(ctx context.Context, userId int) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM google_calendar_auth WHERE user_id = $1", userId); err != nil {
		err := fmt.Errorf("failed to delete Google auth row for user %d: %w", userId, err)
		log.Error(err)
		return err
	}
	return nil
}
