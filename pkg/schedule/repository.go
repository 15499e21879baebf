package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Repository persists the custom event list of a user. The list is always read
// and written as a whole, in storage order.
type Repository interface {
	WithTransaction(ctx context.Context, fn func(repo Repository) error) error
	// Load returns the stored events, or an empty list when the user has none.
	Load(ctx context.Context, userId int) ([]Event, error)
	// Save replaces the stored events with events.
	Save(ctx context.Context, userId int, events []Event) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
	tx pgx.Tx
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// getQueryer returns the appropriate database interface for queries (either tx or db)
func (r *RepositoryImpl) getQueryer() interface {
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *RepositoryImpl) WithTransaction(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if err := fn(&RepositoryImpl{db: r.db, tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Load(ctx context.Context, userId int) ([]Event, error) {
	if r.tx != nil {
		// Serializes load-modify-save cycles of the same user until the transaction ends.
		if _, err := r.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(userId)); err != nil {
			return nil, fmt.Errorf("could not lock custom events: %w", err)
		}
	}

	query := `SELECT id, title, category, event_date, start_time, end_time, location, meeting_link, notes,
				external_id, calendar_id, reminders, assignments
			  FROM custom_event
			  WHERE user_id = $1
			  ORDER BY position`
	rows, err := r.getQueryer().Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query custom events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 16)
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.Id,
			&e.Title,
			&e.Category,
			&e.Date,
			&e.StartTime,
			&e.EndTime,
			&e.Location,
			&e.MeetingLink,
			&e.Notes,
			&e.ExternalId,
			&e.CalendarId,
			&e.Reminders,
			&e.Assignments,
		); err != nil {
			err := fmt.Errorf("error scanning custom event: %w", err)
			log.Error(err)
			return nil, err
		}
		if len(e.Reminders) == 0 {
			e.Reminders = nil
		}
		if len(e.Assignments) == 0 {
			e.Assignments = nil
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom events: %w", err)
	}
	return events, nil
}

func (r *RepositoryImpl) Save(ctx context.Context, userId int, events []Event) error {
	if _, err := r.getQueryer().Exec(ctx, `DELETE FROM custom_event WHERE user_id = $1`, userId); err != nil {
		err := fmt.Errorf("could not clear custom events: %w", err)
		log.Error(err)
		return err
	}
	if len(events) == 0 {
		return nil
	}

	query := `INSERT INTO custom_event (user_id, position, id, title, category, event_date, start_time, end_time,
				location, meeting_link, notes, external_id, calendar_id, reminders, assignments)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	batch := &pgx.Batch{}
	for position, e := range events {
		reminders := e.Reminders
		if reminders == nil {
			reminders = []string{}
		}
		assignments := e.Assignments
		if assignments == nil {
			assignments = []Assignment{}
		}
		batch.Queue(query,
			userId,
			position,
			e.Id,
			e.Title,
			string(e.Category),
			e.Date,
			e.StartTime,
			e.EndTime,
			e.Location,
			e.MeetingLink,
			e.Notes,
			e.ExternalId,
			e.CalendarId,
			reminders,
			assignments,
		)
	}

	results := r.getQueryer().SendBatch(ctx, batch)
	for range events {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			err := fmt.Errorf("could not insert custom event: %w", err)
			log.Error(err)
			return err
		}
	}
	return results.Close()
}
