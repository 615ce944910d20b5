package telegram

import (
	"context"
	"fmt"
	"strings"

	"birthday_reminder_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterOwnerHandlers registers /broadcast (owner-only fan-out) and
// /analytics (audience registry counters, DM-only).
func RegisterOwnerHandlers(
	ctx context.Context,
	b *telebot.Bot,
	broadcasts *app.BroadcastService,
	audience *app.AudienceRegistry,
	baseLogger *logrus.Entry,
) {
	b.Handle("/broadcast", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/broadcast",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		text := strings.Join(c.Args(), " ")

		result, err := broadcasts.Broadcast(ctx, c.Sender().ID, text)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrNotAuthorized:
				logWithError.Warn("Unauthorized broadcast attempt")
				return c.Send("You are not authorized to use this command.")
			case app.ErrEmptyMessage:
				logWithError.Warn("Empty broadcast message")
				return c.Send("Please provide a message to broadcast. Usage: /broadcast [message]")
			default:
				logWithError.Error("Broadcast aborted")
				return c.Send("The broadcast was interrupted. Please try again.")
			}
		}

		handlerLogger.WithFields(logrus.Fields{
			"groups_succeeded": result.GroupsSucceeded,
			"groups_failed":    result.GroupsFailed,
			"users_succeeded":  result.UsersSucceeded,
			"users_failed":     result.UsersFailed,
		}).Info("Broadcast completed")

		return c.Send(fmt.Sprintf("Broadcast message sent successfully.\nGroups: %d succeeded, %d failed.\nUsers: %d succeeded, %d failed.",
			result.GroupsSucceeded, result.GroupsFailed, result.UsersSucceeded, result.UsersFailed))
	})

	b.Handle("/analytics", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/analytics",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Chat().Type != telebot.ChatPrivate {
			return c.Send("This command can only be used in direct messages.")
		}

		return c.Send(fmt.Sprintf("📊 Bot Analytics:\n- Number of groups served: %d\n- Number of users who started the bot: %d",
			audience.GroupCount(), audience.UserCount()))
	})
}
