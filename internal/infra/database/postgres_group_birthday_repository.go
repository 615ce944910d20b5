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
var ErrGroupBirthdayNotFound = fmt.Errorf("group birthday not found")
var ErrDuplicateGroupBirthday = fmt.Errorf("birthday for this user already exists in this group")

type PostgresGroupBirthdayRepository struct {
	db *sql.DB
}

func NewPostgresGroupBirthdayRepository(db *sql.DB) *PostgresGroupBirthdayRepository {
	return &PostgresGroupBirthdayRepository{db: db}
}

func (r *PostgresGroupBirthdayRepository) Create(ctx context.Context, b *birthday.GroupBirthday) error {
	query := `INSERT INTO group_birthdays (user_id, chat_id, birth_date)
               VALUES ($1, $2, $3)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, b.UserID, b.ChatID, b.Date).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "group_birthdays_user_chat_key") {
			return ErrDuplicateGroupBirthday
		}
		return fmt.Errorf("error creating group birthday: %w", err)
	}
	return nil
}

func (r *PostgresGroupBirthdayRepository) GetByUserAndChat(ctx context.Context, userID, chatID int64) (*birthday.GroupBirthday, error) {
	query := `SELECT id, user_id, chat_id, birth_date, created_at
               FROM group_birthdays WHERE user_id = $1 AND chat_id = $2`
	b := &birthday.GroupBirthday{}
	err := r.db.QueryRowContext(ctx, query, userID, chatID).Scan(&b.ID, &b.UserID, &b.ChatID, &b.Date, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupBirthdayNotFound
		}
		return nil, fmt.Errorf("error getting group birthday: %w", err)
	}
	return b, nil
}

func (r *PostgresGroupBirthdayRepository) DeleteByUserAndChat(ctx context.Context, userID, chatID int64) (*birthday.GroupBirthday, error) {
	query := `DELETE FROM group_birthdays WHERE user_id = $1 AND chat_id = $2
               RETURNING id, user_id, chat_id, birth_date, created_at`
	b := &birthday.GroupBirthday{}
	err := r.db.QueryRowContext(ctx, query, userID, chatID).Scan(&b.ID, &b.UserID, &b.ChatID, &b.Date, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrGroupBirthdayNotFound
		}
		return nil, fmt.Errorf("error deleting group birthday: %w", err)
	}
	return b, nil
}

func (r *PostgresGroupBirthdayRepository) ListByChat(ctx context.Context, chatID int64) ([]*birthday.GroupBirthday, error) {
	query := `SELECT id, user_id, chat_id, birth_date, created_at
               FROM group_birthdays WHERE chat_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("error listing group birthdays: %w", err)
	}
	defer rows.Close()

	birthdays := make([]*birthday.GroupBirthday, 0)
	for rows.Next() {
		b := &birthday.GroupBirthday{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.ChatID, &b.Date, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning group birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group birthdays: %w", err)
	}
	return birthdays, nil
}

// ListByDayMonth matches stored DD-MM-YYYY tokens on their day-month prefix,
// so records from any year match and malformed tokens cannot.
func (r *PostgresGroupBirthdayRepository) ListByDayMonth(ctx context.Context, dm birthday.DayMonth) ([]*birthday.GroupBirthday, error) {
	query := `SELECT id, user_id, chat_id, birth_date, created_at
               FROM group_birthdays WHERE birth_date LIKE $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, dm.Pattern())
	if err != nil {
		return nil, fmt.Errorf("error listing group birthdays by day-month: %w", err)
	}
	defer rows.Close()

	birthdays := make([]*birthday.GroupBirthday, 0)
	for rows.Next() {
		b := &birthday.GroupBirthday{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.ChatID, &b.Date, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning group birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group birthdays: %w", err)
	}
	return birthdays, nil
}
