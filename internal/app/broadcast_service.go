package app

import (
	"context"
	"fmt"
	"strings"

	domainTelegram "birthday_reminder_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the broadcast command
var ErrNotAuthorized = fmt.Errorf("sender is not authorized to broadcast")
var ErrEmptyMessage = fmt.Errorf("broadcast message must not be empty")

// BroadcastResult tallies a fan-out run. Partial failure is reported here,
// never as an error.
type BroadcastResult struct {
	GroupsSucceeded int
	GroupsFailed    int
	UsersSucceeded  int
	UsersFailed     int
}

// BroadcastService fans an operator-supplied message out to every known
// group and private user in the audience registry.
type BroadcastService struct {
	audience        *AudienceRegistry
	telegramClient  domainTelegram.Client
	logger          *logrus.Entry
	ownerTelegramID int64
}

func NewBroadcastService(
	audience *AudienceRegistry,
	tc domainTelegram.Client,
	logger *logrus.Entry,
	ownerTelegramID int64,
) *BroadcastService {
	return &BroadcastService{
		audience:        audience,
		telegramClient:  tc,
		logger:          logger,
		ownerTelegramID: ownerTelegramID,
	}
}

// Broadcast sends text to every registered group and user. Only the
// configured owner may invoke it. Each failed send increments the matching
// counter and never stops the iteration; ctx cancellation stops the loop
// between sends so shutdown does not hang on a long audience.
func (s *BroadcastService) Broadcast(ctx context.Context, senderID int64, text string) (*BroadcastResult, error) {
	if senderID != s.ownerTelegramID {
		s.logger.WithField("sender_id", senderID).Warn("Unauthorized broadcast attempt")
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	result := &BroadcastResult{}

	for _, chatID := range s.audience.Groups() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.telegramClient.SendMessage(chatID, text, nil); err != nil {
			s.logger.WithError(err).WithField("chat_id", chatID).Warn("Broadcast to group failed")
			result.GroupsFailed++
			continue
		}
		result.GroupsSucceeded++
	}

	for _, userID := range s.audience.Users() {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.telegramClient.SendMessage(userID, text, nil); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("Broadcast to user failed")
			result.UsersFailed++
			continue
		}
		result.UsersSucceeded++
	}

	s.logger.WithFields(logrus.Fields{
		"groups_succeeded": result.GroupsSucceeded,
		"groups_failed":    result.GroupsFailed,
		"users_succeeded":  result.UsersSucceeded,
		"users_failed":     result.UsersFailed,
	}).Info("Broadcast finished")
	return result, nil
}
