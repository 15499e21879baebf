package assignment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// GetStatuses returns every status the user has set.
	GetStatuses(ctx context.Context, userId int) (Statuses, error)
	SetStatus(ctx context.Context, userId int, assignmentId string, status Status) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetStatuses(ctx context.Context, userId int) (Statuses, error) {
	query := `SELECT assignment_id, status FROM assignment_status WHERE user_id = $1`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query assignment statuses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	statuses := make(Statuses)
	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("error scanning assignment status: %w", err)
		}
		statuses[id] = Status(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment statuses: %w", err)
	}
	return statuses, nil
}

func (r *RepositoryImpl) SetStatus(ctx context.Context, userId int, assignmentId string, status Status) error {
	query := `INSERT INTO assignment_status (user_id, assignment_id, status, updated_at)
			  VALUES ($1, $2, $3, now())
			  ON CONFLICT (user_id, assignment_id) DO UPDATE SET status = EXCLUDED.status, updated_at = now()`
	if _, err := r.db.Exec(ctx, query, userId, assignmentId, string(status)); err != nil {
		err := fmt.Errorf("could not store assignment status: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
