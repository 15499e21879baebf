package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, userId int, user User) (User, error)
	UpdateLastSyncedAt(ctx context.Context, userId int, syncedAt time.Time) error
	// FindUsersWithIcsFeed returns users that configured an ICS feed url.
	FindUsersWithIcsFeed(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const userColumns = `id, uid, username, display_name, cohort, group_name, timezone, google_calendar_id, ics_url, last_synced_at`

func (r *RepositoryImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO app_user (uid, username, display_name, cohort, group_name, timezone, google_calendar_id, ics_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Cohort,
		user.Group,
		user.Settings.Timezone,
		user.Settings.GoogleCalendarId,
		user.Settings.IcsUrl,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepositoryImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with id %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return u, nil
}

func (r *RepositoryImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE uid = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user with uid %s not found", uid)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return u, nil
}

func (r *RepositoryImpl) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	query := `UPDATE app_user SET display_name = $1, cohort = $2, group_name = $3, timezone = $4,
				google_calendar_id = $5, ics_url = $6 WHERE id = $7`
	result, err := r.db.Exec(ctx, query,
		user.DisplayName,
		user.Cohort,
		user.Group,
		user.Settings.Timezone,
		user.Settings.GoogleCalendarId,
		user.Settings.IcsUrl,
		userId,
	)
	if err != nil {
		return User{}, fmt.Errorf("could not update user: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Info("no rows affected of updating user")
		return User{}, ErrUserNotFound
	}
	return r.GetUser(ctx, userId)
}

func (r *RepositoryImpl) UpdateLastSyncedAt(ctx context.Context, userId int, syncedAt time.Time) error {
	result, err := r.db.Exec(ctx, `UPDATE app_user SET last_synced_at = $1 WHERE id = $2`, syncedAt, userId)
	if err != nil {
		return fmt.Errorf("could not update last sync time: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *RepositoryImpl) FindUsersWithIcsFeed(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM app_user WHERE ics_url <> '' ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to get users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0, 10)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		log.Errorf("error iterating over rows: %v", err)
		return nil, err
	}
	return users, nil
}

func (r *RepositoryImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM app_user WHERE username = $1`, username).Scan(&count)
	if err != nil {
		log.Errorf("failed to check username availability: %v", err)
		return false, err
	}
	return count == 0, nil
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	var lastSyncedAt *time.Time
	err := row.Scan(
		&u.Id,
		&u.Uid,
		&u.Username,
		&u.DisplayName,
		&u.Cohort,
		&u.Group,
		&u.Settings.Timezone,
		&u.Settings.GoogleCalendarId,
		&u.Settings.IcsUrl,
		&lastSyncedAt,
	)
	if err != nil {
		return User{}, err
	}
	if lastSyncedAt != nil {
		u.Settings.LastSyncedAt = lastSyncedAt.UTC()
	}
	return u, nil
}
