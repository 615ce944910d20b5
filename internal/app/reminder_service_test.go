package app

import (
	"context"
	"strconv"
	"testing"
	"time"

	"birthday_reminder_bot/internal/domain/birthday"

	"gopkg.in/telebot.v3"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 9, 30, 0, 0, time.UTC) }
}

func newReminderFixture() (*ReminderService, *fakeGroupRepo, *fakePersonalRepo, *fakeTransport) {
	groupRepo := newFakeGroupRepo()
	personalRepo := newFakePersonalRepo()
	transport := newFakeTransport()
	svc := NewReminderService(groupRepo, personalRepo, transport, newTestLogger())
	svc.now = fixedClock(2024, time.August, 15)
	return svc, groupRepo, personalRepo, transport
}

func TestRunPersonalCheckMatchesYearAgnostic(t *testing.T) {
	svc, _, personalRepo, transport := newReminderFixture()
	personalRepo.records = []*birthday.PersonalBirthday{
		{ID: 1, UserID: 100, Name: "Alice", Date: "15-08-2005"},
		{ID: 2, UserID: 100, Name: "Bob", Date: "15-08-1999"},
		{ID: 3, UserID: 200, Name: "Carol", Date: "16-08-2010"},
		{ID: 4, UserID: 200, Name: "Dave", Date: "17-08-2001"},
		{ID: 5, UserID: 300, Name: "Eve", Date: "18-08-2000"}, // outside window
	}

	result := svc.RunPersonalCheck(context.Background())

	if result.Matched != 4 || result.Sent != 4 || result.Failed != 0 {
		t.Fatalf("result = %+v, want Matched=4 Sent=4 Failed=0", result)
	}

	// Advance notices go out before the birthday-day batch.
	wantOrder := []string{
		PersonalAdvanceMessage(1, "Carol"),
		PersonalAdvanceMessage(2, "Dave"),
		PersonalWishMessage("Alice"),
		PersonalWishMessage("Bob"),
	}
	if len(transport.sent) != len(wantOrder) {
		t.Fatalf("sent %d messages, want %d", len(transport.sent), len(wantOrder))
	}
	for i, want := range wantOrder {
		if transport.sent[i].text != want {
			t.Errorf("message %d = %q, want %q", i, transport.sent[i].text, want)
		}
	}
}

func TestRunPersonalCheckDeliveryFailureDoesNotAbortBatch(t *testing.T) {
	svc, _, personalRepo, transport := newReminderFixture()
	personalRepo.records = []*birthday.PersonalBirthday{
		{ID: 1, UserID: 100, Name: "Alice", Date: "15-08-2005"},
		{ID: 2, UserID: 200, Name: "Bob", Date: "15-08-1999"},
		{ID: 3, UserID: 300, Name: "Carol", Date: "15-08-2001"},
	}
	transport.failSendTo[200] = true

	result := svc.RunPersonalCheck(context.Background())

	if result.Sent != 2 || result.Failed != 1 {
		t.Fatalf("result = %+v, want Sent=2 Failed=1", result)
	}
	if len(transport.textsSentTo(100)) != 1 || len(transport.textsSentTo(300)) != 1 {
		t.Error("records after the failed one were not processed")
	}
}

func TestRunPersonalCheckQueryErrorSkipsOnlyThatOffset(t *testing.T) {
	svc, _, personalRepo, transport := newReminderFixture()
	personalRepo.records = []*birthday.PersonalBirthday{
		{ID: 1, UserID: 100, Name: "Alice", Date: "15-08-2005"}, // today
		{ID: 2, UserID: 200, Name: "Bob", Date: "16-08-1999"},   // tomorrow, query will fail
	}
	personalRepo.failPatterns["16-08"] = true

	result := svc.RunPersonalCheck(context.Background())

	if result.Sent != 1 {
		t.Fatalf("result = %+v, want Sent=1", result)
	}
	if got := transport.textsSentTo(100); len(got) != 1 || got[0] != PersonalWishMessage("Alice") {
		t.Errorf("today batch not delivered despite tomorrow query failure: %v", got)
	}
}

func TestRunPersonalCheckRepeatDeliversDuplicates(t *testing.T) {
	// At-least-once by design: nothing tracks an already-notified record, so
	// a second run inside the same window re-sends.
	svc, _, personalRepo, transport := newReminderFixture()
	personalRepo.records = []*birthday.PersonalBirthday{
		{ID: 1, UserID: 100, Name: "Alice", Date: "15-08-2005"},
	}

	svc.RunPersonalCheck(context.Background())
	svc.RunPersonalCheck(context.Background())

	texts := transport.textsSentTo(100)
	if len(texts) != 2 {
		t.Fatalf("sent %d messages over two runs, want 2 (duplicate delivery)", len(texts))
	}
	if texts[0] != texts[1] {
		t.Errorf("duplicate runs produced different texts: %q vs %q", texts[0], texts[1])
	}
}

func TestRunGroupCheckPinsTodayWishOnce(t *testing.T) {
	svc, groupRepo, _, transport := newReminderFixture()
	groupRepo.records = []*birthday.GroupBirthday{
		{ID: 1, UserID: 42, ChatID: -500, Date: "15-08-2006"},
	}
	transport.memberNames[42] = "aakash"

	result := svc.RunGroupCheck(context.Background())

	if result.Sent != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v, want Sent=1 Failed=0", result)
	}
	if len(transport.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(transport.sent))
	}
	wish := transport.sent[0]
	if wish.text != GroupWishMessage("@aakash") {
		t.Errorf("wish text = %q", wish.text)
	}
	if wish.opts == nil || wish.opts.ParseMode != telebot.ModeMarkdown {
		t.Error("birthday wish not sent with Markdown parse mode")
	}
	if len(transport.pins) != 1 {
		t.Fatalf("pinned %d messages, want exactly 1", len(transport.pins))
	}
	if transport.pins[0].chatID != -500 || transport.pins[0].messageID != 1 {
		t.Errorf("pinned wrong message: %+v", transport.pins[0])
	}
}

func TestRunGroupCheckPinFailureKeepsMessageSent(t *testing.T) {
	svc, groupRepo, _, transport := newReminderFixture()
	groupRepo.records = []*birthday.GroupBirthday{
		{ID: 1, UserID: 42, ChatID: -500, Date: "15-08-2006"},
	}
	transport.memberNames[42] = "aakash"
	transport.failPin = true

	result := svc.RunGroupCheck(context.Background())

	if result.Sent != 1 || result.Failed != 0 {
		t.Fatalf("result = %+v, want the send still counted on pin failure", result)
	}
	if len(transport.sent) != 1 {
		t.Fatalf("sent %d messages, want 1 (no retry, no unsend)", len(transport.sent))
	}
	if len(transport.pins) != 0 {
		t.Errorf("recorded %d pins despite pin failure", len(transport.pins))
	}
}

func TestRunGroupCheckLookupFallbackUsesNumericIdentity(t *testing.T) {
	svc, groupRepo, _, transport := newReminderFixture()
	groupRepo.records = []*birthday.GroupBirthday{
		{ID: 1, UserID: 987654321, ChatID: -500, Date: "16-08-2006"},
	}
	transport.failLookup = true

	svc.RunGroupCheck(context.Background())

	texts := transport.textsSentTo(-500)
	if len(texts) != 1 {
		t.Fatalf("sent %d messages, want 1", len(texts))
	}
	want := GroupAdvanceMessage(1, strconv.FormatInt(987654321, 10))
	if texts[0] != want {
		t.Errorf("fallback text = %q, want %q", texts[0], want)
	}
}

func TestRunGroupCheckAdvanceNotices(t *testing.T) {
	svc, groupRepo, _, transport := newReminderFixture()
	groupRepo.records = []*birthday.GroupBirthday{
		{ID: 1, UserID: 1, ChatID: -10, Date: "16-08-1990"},
		{ID: 2, UserID: 2, ChatID: -20, Date: "17-08-1991"},
	}
	transport.memberNames[1] = "alice"
	transport.memberNames[2] = "bob"

	result := svc.RunGroupCheck(context.Background())

	if result.Sent != 2 {
		t.Fatalf("result = %+v, want Sent=2", result)
	}
	if got := transport.textsSentTo(-10); len(got) != 1 || got[0] != GroupAdvanceMessage(1, "@alice") {
		t.Errorf("one-day notice = %v", got)
	}
	if got := transport.textsSentTo(-20); len(got) != 1 || got[0] != GroupAdvanceMessage(2, "@bob") {
		t.Errorf("two-day notice = %v", got)
	}
	if len(transport.pins) != 0 {
		t.Errorf("advance notices must not be pinned, got %d pins", len(transport.pins))
	}
}
