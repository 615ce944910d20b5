package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"birthday_reminder_bot/internal/domain/birthday"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrPersonalBirthdayNotFound = fmt.Errorf("personal birthday not found")
var ErrDuplicatePersonalBirthday = fmt.Errorf("birthday for this friend and date already exists")

type PostgresPersonalBirthdayRepository struct {
	db *sql.DB
}

func NewPostgresPersonalBirthdayRepository(db *sql.DB) *PostgresPersonalBirthdayRepository {
	return &PostgresPersonalBirthdayRepository{db: db}
}

func (r *PostgresPersonalBirthdayRepository) Create(ctx context.Context, b *birthday.PersonalBirthday) error {
	query := `INSERT INTO personal_birthdays (user_id, friend_name, birth_date)
               VALUES ($1, $2, $3)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Name, b.Date).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "personal_birthdays_owner_name_date_key") {
			return ErrDuplicatePersonalBirthday
		}
		return fmt.Errorf("error creating personal birthday: %w", err)
	}
	return nil
}

func (r *PostgresPersonalBirthdayRepository) GetByOwnerNameAndDate(ctx context.Context, userID int64, name, date string) (*birthday.PersonalBirthday, error) {
	query := `SELECT id, user_id, friend_name, birth_date, created_at
               FROM personal_birthdays WHERE user_id = $1 AND friend_name = $2 AND birth_date = $3`
	b := &birthday.PersonalBirthday{}
	err := r.db.QueryRowContext(ctx, query, userID, name, date).Scan(&b.ID, &b.UserID, &b.Name, &b.Date, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersonalBirthdayNotFound
		}
		return nil, fmt.Errorf("error getting personal birthday: %w", err)
	}
	return b, nil
}

func (r *PostgresPersonalBirthdayRepository) DeleteByOwnerAndName(ctx context.Context, userID int64, name string) (*birthday.PersonalBirthday, error) {
	query := `DELETE FROM personal_birthdays
               WHERE id = (SELECT id FROM personal_birthdays WHERE user_id = $1 AND friend_name = $2 ORDER BY id LIMIT 1)
               RETURNING id, user_id, friend_name, birth_date, created_at`
	b := &birthday.PersonalBirthday{}
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&b.ID, &b.UserID, &b.Name, &b.Date, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPersonalBirthdayNotFound
		}
		return nil, fmt.Errorf("error deleting personal birthday: %w", err)
	}
	return b, nil
}

func (r *PostgresPersonalBirthdayRepository) ListByOwner(ctx context.Context, userID int64) ([]*birthday.PersonalBirthday, error) {
	query := `SELECT id, user_id, friend_name, birth_date, created_at
               FROM personal_birthdays WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing personal birthdays: %w", err)
	}
	defer rows.Close()

	birthdays := make([]*birthday.PersonalBirthday, 0)
	for rows.Next() {
		b := &birthday.PersonalBirthday{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Date, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning personal birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personal birthdays: %w", err)
	}
	return birthdays, nil
}

// ListByDayMonth matches stored DD-MM-YYYY tokens on their day-month prefix,
// so records from any year match and malformed tokens cannot.
func (r *PostgresPersonalBirthdayRepository) ListByDayMonth(ctx context.Context, dm birthday.DayMonth) ([]*birthday.PersonalBirthday, error) {
	query := `SELECT id, user_id, friend_name, birth_date, created_at
               FROM personal_birthdays WHERE birth_date LIKE $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, dm.Pattern())
	if err != nil {
		return nil, fmt.Errorf("error listing personal birthdays by day-month: %w", err)
	}
	defer rows.Close()

	birthdays := make([]*birthday.PersonalBirthday, 0)
	for rows.Next() {
		b := &birthday.PersonalBirthday{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Date, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning personal birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personal birthdays: %w", err)
	}
	return birthdays, nil
}
