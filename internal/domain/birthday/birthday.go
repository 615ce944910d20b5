package birthday

import "time"

// GroupBirthday is a birthday a user registered inside a group chat.
// At most one live record exists per (UserID, ChatID) pair.
type GroupBirthday struct {
	ID        int64
	UserID    int64  // Telegram ID of the record owner
	ChatID    int64  // group chat the record belongs to
	Date      string // DD-MM-YYYY; only day and month matter for matching
	CreatedAt time.Time
}

// PersonalBirthday is a friend's birthday a user keeps in their private list.
type PersonalBirthday struct {
	ID        int64
	UserID    int64  // Telegram ID of the list owner
	Name      string // friend's display name as the owner entered it
	Date      string // DD-MM-YYYY
	CreatedAt time.Time
}
