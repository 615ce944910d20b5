package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"birthday_reminder_bot/internal/app"
	"birthday_reminder_bot/internal/domain/birthday"
	domainTelegram "birthday_reminder_bot/internal/domain/telegram"
	idb "birthday_reminder_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBirthdayHandlers registers the CRUD command handlers for both
// contexts: /addbirthday and the personal /deletebirthday in DMs,
// /mybirthday and the group /deletebirthday in groups, /birthdaylist in both.
func RegisterBirthdayHandlers(
	ctx context.Context,
	b *telebot.Bot,
	birthdays *app.BirthdayService,
	tgClient domainTelegram.Client,
	baseLogger *logrus.Entry,
) {
	b.Handle("/addbirthday", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/addbirthday",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if c.Chat().Type != telebot.ChatPrivate {
			return c.Send("This command only works in direct messages (DM).\nPlease send it in a private message.\nUse /help for more info.")
		}

		args := c.Args()
		// Expected format: /addbirthday <Name> <DD-MM-YYYY>
		if len(args) != 2 {
			handlerLogger.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send("Please use the correct format:\nExample: /addbirthday Aakash_Gupta 15-08-2006")
		}

		name := args[0]
		date := args[1]

		added, err := birthdays.AddPersonal(ctx, c.Sender().ID, name, date)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case birthday.ErrInvalidDate:
				logWithError.Warn("Invalid date token")
				return c.Send(fmt.Sprintf("Invalid date format for %s. Please use DD-MM-YYYY format.", name))
			case app.ErrEmptyFriendName:
				logWithError.Warn("Empty friend name")
				return c.Send("Please provide your friend's name.")
			case app.ErrBirthdayAlreadyExists:
				logWithError.Info("Duplicate personal birthday")
				return c.Send(fmt.Sprintf("You have already added a birthday for %s on %s.", name, date))
			default:
				logWithError.Error("Failed to add personal birthday")
				return c.Send("There was an error adding the birthday. Please try again.")
			}
		}

		handlerLogger.WithField("birthday_id", added.ID).Info("Personal birthday added")
		return c.Send(fmt.Sprintf("Birthday for %s on %s added successfully!", added.Name, added.Date))
	})

	b.Handle("/mybirthday", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/mybirthday",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		if c.Chat().Type == telebot.ChatPrivate {
			return c.Send("This command does not work in DM.\nPlease use /addbirthday for adding your friends' birthdays in List.\nUse /help for more info.")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Please use the correct date format: DD-MM-YYYY")
		}

		added, err := birthdays.AddGroup(ctx, c.Sender().ID, c.Chat().ID, args[0])
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case birthday.ErrInvalidDate:
				logWithError.Warn("Invalid date token")
				return c.Send("Please use the correct date format: DD-MM-YYYY")
			case app.ErrBirthdayAlreadyExists:
				logWithError.Info("Duplicate group birthday")
				return c.Send("Your birthday is already added. If you want to change it, please delete it first using /deletebirthday and then add it again.")
			default:
				logWithError.Error("Failed to add group birthday")
				return c.Send("There was an error adding your birthday. Please try again.")
			}
		}

		handlerLogger.WithField("birthday_id", added.ID).Info("Group birthday added")
		return c.Send("Your birthday is added. Thank you!")
	})

	b.Handle("/deletebirthday", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/deletebirthday",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		if c.Chat().Type == telebot.ChatPrivate {
			args := c.Args()
			if len(args) < 1 {
				return c.Send("Please provide the name of the friend whose birthday you want to delete.\nEnter names as it is you have written while adding.")
			}
			name := args[0]

			deleted, err := birthdays.DeletePersonal(ctx, c.Sender().ID, name)
			if err != nil {
				logWithError := handlerLogger.WithError(err)
				switch err {
				case idb.ErrPersonalBirthdayNotFound:
					logWithError.Info("No personal birthday to delete")
					return c.Send(fmt.Sprintf("No birthday found for %s to delete.", name))
				default:
					logWithError.Error("Failed to delete personal birthday")
					return c.Send("There was an error deleting the birthday. Please try again.")
				}
			}

			handlerLogger.WithField("birthday_id", deleted.ID).Info("Personal birthday deleted")
			return c.Send(fmt.Sprintf("Birthday for %s deleted successfully.", deleted.Name))
		}

		deleted, err := birthdays.DeleteGroup(ctx, c.Sender().ID, c.Chat().ID)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case idb.ErrGroupBirthdayNotFound:
				logWithError.Info("No group birthday to delete")
				return c.Send("No birthday found to delete.")
			default:
				logWithError.Error("Failed to delete group birthday")
				return c.Send("There was an error deleting the birthday in group. Please try again.")
			}
		}

		handlerLogger.WithField("birthday_id", deleted.ID).Info("Group birthday deleted")
		return c.Send("Your birthday deleted successfully.")
	})

	b.Handle("/birthdaylist", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/birthdaylist",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		var lines []string

		if c.Chat().Type == telebot.ChatPrivate {
			records, err := birthdays.ListPersonal(ctx, c.Sender().ID)
			if err != nil {
				handlerLogger.WithError(err).Error("Failed to list personal birthdays")
				return c.Send("There was an error fetching the birthdays. Please try again.")
			}
			for _, rec := range records {
				lines = append(lines, fmt.Sprintf("%s - %s", rec.Name, rec.Date))
			}
		} else {
			records, err := birthdays.ListGroup(ctx, c.Chat().ID)
			if err != nil {
				handlerLogger.WithError(err).Error("Failed to list group birthdays")
				return c.Send("There was an error fetching the birthdays. Please try again.")
			}
			for _, rec := range records {
				displayName, err := tgClient.ChatMemberName(rec.ChatID, rec.UserID)
				if err != nil {
					handlerLogger.WithError(err).WithField("user_id", rec.UserID).Warn("Member lookup failed, using numeric identity")
					displayName = strconv.FormatInt(rec.UserID, 10)
				}
				lines = append(lines, fmt.Sprintf("%s - %s", displayName, rec.Date))
			}
		}

		if len(lines) == 0 {
			return c.Send("No birthdays found.")
		}
		return c.Send(fmt.Sprintf("Birthday List:\n%s", strings.Join(lines, "\n")))
	})
}
