package reminder

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, userId int, reminder Reminder) (Reminder, error)
	// List returns reminders ordered by date and time; an empty date lists all of them.
	List(ctx context.Context, userId int, date string) ([]Reminder, error)
	Toggle(ctx context.Context, userId int, id string) (Reminder, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, userId int, reminder Reminder) (Reminder, error) {
	query := `INSERT INTO reminder (id, user_id, text, reminder_date, reminder_time, completed)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, reminder.Id, userId, reminder.Text, reminder.Date, reminder.Time, reminder.Completed)
	if err != nil {
		err := fmt.Errorf("could not store reminder: %w", err)
		log.Error(err)
		return Reminder{}, err
	}
	return reminder, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int, date string) ([]Reminder, error) {
	query := `SELECT id, text, reminder_date, reminder_time, completed FROM reminder
			  WHERE user_id = $1 AND ($2 = '' OR reminder_date = $2)
			  ORDER BY reminder_date, reminder_time, created_at`
	rows, err := r.db.Query(ctx, query, userId, date)
	if err != nil {
		err := fmt.Errorf("could not query reminders: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	reminders := make([]Reminder, 0)
	for rows.Next() {
		var reminder Reminder
		if err := rows.Scan(&reminder.Id, &reminder.Text, &reminder.Date, &reminder.Time, &reminder.Completed); err != nil {
			return nil, fmt.Errorf("error scanning reminder: %w", err)
		}
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminders: %w", err)
	}
	return reminders, nil
}

func (r *RepositoryImpl) Toggle(ctx context.Context, userId int, id string) (Reminder, error) {
	query := `UPDATE reminder SET completed = NOT completed WHERE user_id = $1 AND id::text = $2
			  RETURNING id, text, reminder_date, reminder_time, completed`
	var reminder Reminder
	err := r.db.QueryRow(ctx, query, userId, id).
		Scan(&reminder.Id, &reminder.Text, &reminder.Date, &reminder.Time, &reminder.Completed)
	if errors.Is(err, pgx.ErrNoRows) {
		return Reminder{}, ErrReminderNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not toggle reminder: %w", err)
		log.Error(err)
		return Reminder{}, err
	}
	return reminder, nil
}
