package app

import "sync"

// AudienceRegistry tracks the group chats and private users that have started
// the bot during the current process lifetime. It is volatile by design:
// restarts reset it, and it is consulted only by the broadcast fan-out and
// the analytics command, never for notification eligibility.
type AudienceRegistry struct {
	mu     sync.Mutex
	groups map[int64]struct{}
	users  map[int64]struct{}
}

func NewAudienceRegistry() *AudienceRegistry {
	return &AudienceRegistry{
		groups: make(map[int64]struct{}),
		users:  make(map[int64]struct{}),
	}
}

func (r *AudienceRegistry) AddGroup(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups[chatID] = struct{}{}
}

func (r *AudienceRegistry) AddUser(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = struct{}{}
}

// Groups returns a snapshot of the known group chat IDs in no particular
// order. Inserts that happen after the snapshot is taken are not reflected.
func (r *AudienceRegistry) Groups() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.groups))
	for id := range r.groups {
		ids = append(ids, id)
	}
	return ids
}

// Users returns a snapshot of the known private user IDs in no particular order.
func (r *AudienceRegistry) Users() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids
}

func (r *AudienceRegistry) GroupCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.groups)
}

func (r *AudienceRegistry) UserCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
