package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"birthday_reminder_bot/internal/domain/birthday"
	idb "birthday_reminder_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func newTestLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("test", true)
}

// --- fake transport ---

type sentMessage struct {
	chatID int64
	text   string
	opts   *telebot.SendOptions
}

type pinnedMessage struct {
	chatID    int64
	messageID int
}

type fakeTransport struct {
	sent        []sentMessage
	pins        []pinnedMessage
	failSendTo  map[int64]bool
	failPin     bool
	failLookup  bool
	memberNames map[int64]string // userID -> username
	nextMsgID   int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		failSendTo:  make(map[int64]bool),
		memberNames: make(map[int64]string),
	}
}

func (f *fakeTransport) SendMessage(chatID int64, text string, opts *telebot.SendOptions) (int, error) {
	if f.failSendTo[chatID] {
		return 0, errors.New("send failed")
	}
	f.nextMsgID++
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, opts: opts})
	return f.nextMsgID, nil
}

func (f *fakeTransport) PinMessage(chatID int64, messageID int) error {
	if f.failPin {
		return errors.New("pin failed")
	}
	f.pins = append(f.pins, pinnedMessage{chatID: chatID, messageID: messageID})
	return nil
}

func (f *fakeTransport) ChatMemberName(chatID, userID int64) (string, error) {
	if f.failLookup {
		return "", errors.New("lookup failed")
	}
	name, ok := f.memberNames[userID]
	if !ok {
		return "", errors.New("member not found")
	}
	return name, nil
}

func (f *fakeTransport) textsSentTo(chatID int64) []string {
	var texts []string
	for _, m := range f.sent {
		if m.chatID == chatID {
			texts = append(texts, m.text)
		}
	}
	return texts
}

// --- fake repositories ---

func matchesDayMonth(storedDate string, dm birthday.DayMonth) bool {
	return strings.HasPrefix(storedDate, dm.String()+"-")
}

type fakeGroupRepo struct {
	records      []*birthday.GroupBirthday
	nextID       int64
	failPatterns map[string]bool // DayMonth.String() -> query fails
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{failPatterns: make(map[string]bool)}
}

func (f *fakeGroupRepo) Create(_ context.Context, b *birthday.GroupBirthday) error {
	for _, r := range f.records {
		if r.UserID == b.UserID && r.ChatID == b.ChatID {
			return idb.ErrDuplicateGroupBirthday
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.records = append(f.records, b)
	return nil
}

func (f *fakeGroupRepo) GetByUserAndChat(_ context.Context, userID, chatID int64) (*birthday.GroupBirthday, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.ChatID == chatID {
			return r, nil
		}
	}
	return nil, idb.ErrGroupBirthdayNotFound
}

func (f *fakeGroupRepo) DeleteByUserAndChat(_ context.Context, userID, chatID int64) (*birthday.GroupBirthday, error) {
	for i, r := range f.records {
		if r.UserID == userID && r.ChatID == chatID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return r, nil
		}
	}
	return nil, idb.ErrGroupBirthdayNotFound
}

func (f *fakeGroupRepo) ListByChat(_ context.Context, chatID int64) ([]*birthday.GroupBirthday, error) {
	var out []*birthday.GroupBirthday
	for _, r := range f.records {
		if r.ChatID == chatID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeGroupRepo) ListByDayMonth(_ context.Context, dm birthday.DayMonth) ([]*birthday.GroupBirthday, error) {
	if f.failPatterns[dm.String()] {
		return nil, fmt.Errorf("store unreachable")
	}
	var out []*birthday.GroupBirthday
	for _, r := range f.records {
		if matchesDayMonth(r.Date, dm) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePersonalRepo struct {
	records      []*birthday.PersonalBirthday
	nextID       int64
	failPatterns map[string]bool
}

func newFakePersonalRepo() *fakePersonalRepo {
	return &fakePersonalRepo{failPatterns: make(map[string]bool)}
}

func (f *fakePersonalRepo) Create(_ context.Context, b *birthday.PersonalBirthday) error {
	for _, r := range f.records {
		if r.UserID == b.UserID && r.Name == b.Name && r.Date == b.Date {
			return idb.ErrDuplicatePersonalBirthday
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.records = append(f.records, b)
	return nil
}

func (f *fakePersonalRepo) GetByOwnerNameAndDate(_ context.Context, userID int64, name, date string) (*birthday.PersonalBirthday, error) {
	for _, r := range f.records {
		if r.UserID == userID && r.Name == name && r.Date == date {
			return r, nil
		}
	}
	return nil, idb.ErrPersonalBirthdayNotFound
}

func (f *fakePersonalRepo) DeleteByOwnerAndName(_ context.Context, userID int64, name string) (*birthday.PersonalBirthday, error) {
	for i, r := range f.records {
		if r.UserID == userID && r.Name == name {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return r, nil
		}
	}
	return nil, idb.ErrPersonalBirthdayNotFound
}

func (f *fakePersonalRepo) ListByOwner(_ context.Context, userID int64) ([]*birthday.PersonalBirthday, error) {
	var out []*birthday.PersonalBirthday
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePersonalRepo) ListByDayMonth(_ context.Context, dm birthday.DayMonth) ([]*birthday.PersonalBirthday, error) {
	if f.failPatterns[dm.String()] {
		return nil, fmt.Errorf("store unreachable")
	}
	var out []*birthday.PersonalBirthday
	for _, r := range f.records {
		if matchesDayMonth(r.Date, dm) {
			out = append(out, r)
		}
	}
	return out, nil
}
