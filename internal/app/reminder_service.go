package app

import (
	"context"
	"strconv"
	"time"

	"birthday_reminder_bot/internal/domain/birthday"
	domainTelegram "birthday_reminder_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// offsetOrder is the processing order for the reminder window: advance
// notices first, the birthday-day batch last. Errors in one batch never
// block the following ones.
var offsetOrder = [3]int{1, 2, 0}

// CheckResult reports what a single pipeline invocation did.
type CheckResult struct {
	Matched int // records returned by the store for the whole window
	Sent    int // messages delivered
	Failed  int // records whose delivery failed
}

// ReminderService runs the periodic birthday check pipelines. Delivery is
// best-effort and at-least-once: nothing records that a notification went
// out, so invoking a check twice within the same window sends duplicates.
type ReminderService struct {
	groupRepo      birthday.GroupRepository
	personalRepo   birthday.PersonalRepository
	telegramClient domainTelegram.Client
	logger         *logrus.Entry
	now            func() time.Time
}

func NewReminderService(
	gr birthday.GroupRepository,
	pr birthday.PersonalRepository,
	tc domainTelegram.Client,
	logger *logrus.Entry,
) *ReminderService {
	return &ReminderService{
		groupRepo:      gr,
		personalRepo:   pr,
		telegramClient: tc,
		logger:         logger,
		now:            time.Now,
	}
}

// RunPersonalCheck notifies list owners about friends whose birthday is
// today, tomorrow or in two days. Every failure is logged and recoverable;
// the scheduler's next tick must always fire.
func (s *ReminderService) RunPersonalCheck(ctx context.Context) *CheckResult {
	window := birthday.ReminderWindow(s.now())
	result := &CheckResult{}

	for _, offset := range offsetOrder {
		logCtx := s.logger.WithFields(logrus.Fields{"pipeline": "personal", "offset_days": offset, "day_month": window[offset].String()})

		records, err := s.personalRepo.ListByDayMonth(ctx, window[offset])
		if err != nil {
			logCtx.WithError(err).Error("Birthday store query failed, skipping this offset")
			continue
		}
		result.Matched += len(records)

		for _, b := range records {
			var text string
			if offset == 0 {
				text = PersonalWishMessage(b.Name)
			} else {
				text = PersonalAdvanceMessage(offset, b.Name)
			}

			if _, err := s.telegramClient.SendMessage(b.UserID, text, nil); err != nil {
				logCtx.WithError(err).WithField("owner_id", b.UserID).Error("Failed to deliver personal birthday reminder")
				result.Failed++
				continue
			}
			result.Sent++
		}
	}
	return result
}

// RunGroupCheck notifies groups about members' birthdays. On the birthday
// itself the wish is sent with Markdown emphasis and then pinned; a pin
// failure is tolerated and never unsends or retries the message.
func (s *ReminderService) RunGroupCheck(ctx context.Context) *CheckResult {
	window := birthday.ReminderWindow(s.now())
	result := &CheckResult{}

	for _, offset := range offsetOrder {
		logCtx := s.logger.WithFields(logrus.Fields{"pipeline": "group", "offset_days": offset, "day_month": window[offset].String()})

		records, err := s.groupRepo.ListByDayMonth(ctx, window[offset])
		if err != nil {
			logCtx.WithError(err).Error("Birthday store query failed, skipping this offset")
			continue
		}
		result.Matched += len(records)

		for _, b := range records {
			tag := s.groupMemberTag(b.ChatID, b.UserID)

			if offset != 0 {
				if _, err := s.telegramClient.SendMessage(b.ChatID, GroupAdvanceMessage(offset, tag), nil); err != nil {
					logCtx.WithError(err).WithField("chat_id", b.ChatID).Error("Failed to deliver group birthday notice")
					result.Failed++
					continue
				}
				result.Sent++
				continue
			}

			messageID, err := s.telegramClient.SendMessage(b.ChatID, GroupWishMessage(tag), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
			if err != nil {
				logCtx.WithError(err).WithField("chat_id", b.ChatID).Error("Failed to deliver group birthday wish")
				result.Failed++
				continue
			}
			result.Sent++

			if err := s.telegramClient.PinMessage(b.ChatID, messageID); err != nil {
				logCtx.WithError(err).WithFields(logrus.Fields{"chat_id": b.ChatID, "message_id": messageID}).Warn("Failed to pin birthday wish, message stays sent")
			}
		}
	}
	return result
}

// groupMemberTag resolves a member's @-tag via the transport, falling back to
// the raw numeric identity when the lookup fails. The fallback is an explicit
// branch so its output stays deterministic.
func (s *ReminderService) groupMemberTag(chatID, userID int64) string {
	name, err := s.telegramClient.ChatMemberName(chatID, userID)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{"chat_id": chatID, "user_id": userID}).Warn("Member lookup failed, using numeric identity")
		return strconv.FormatInt(userID, 10)
	}
	return "@" + name
}
