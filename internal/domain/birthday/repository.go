package birthday

import (
	"context"
)

// GroupRepository defines the operations for persisting and retrieving
// group-context birthday records.
type GroupRepository interface {
	Create(ctx context.Context, b *GroupBirthday) error
	GetByUserAndChat(ctx context.Context, userID, chatID int64) (*GroupBirthday, error)
	DeleteByUserAndChat(ctx context.Context, userID, chatID int64) (*GroupBirthday, error)
	ListByChat(ctx context.Context, chatID int64) ([]*GroupBirthday, error)
	// ListByDayMonth returns every record whose stored date matches the given
	// day and month, any year, ordered by ID.
	ListByDayMonth(ctx context.Context, dm DayMonth) ([]*GroupBirthday, error)
}

// PersonalRepository defines the operations for persisting and retrieving
// private friend-list birthday records.
type PersonalRepository interface {
	Create(ctx context.Context, b *PersonalBirthday) error
	GetByOwnerNameAndDate(ctx context.Context, userID int64, name, date string) (*PersonalBirthday, error)
	DeleteByOwnerAndName(ctx context.Context, userID int64, name string) (*PersonalBirthday, error)
	ListByOwner(ctx context.Context, userID int64) ([]*PersonalBirthday, error)
	ListByDayMonth(ctx context.Context, dm DayMonth) ([]*PersonalBirthday, error)
}
