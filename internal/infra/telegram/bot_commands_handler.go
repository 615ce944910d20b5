// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"birthday_reminder_bot/internal/app"
	"birthday_reminder_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const groupWelcomeText = `🎉 Hi everyone! I'm here to help you keep track of everyone's birthdays in this group! 🎂

Here's what you can do:
- Add your birthday by typing /mybirthday [your birthday in DD-MM-YYYY format]. Example: /mybirthday 15-08-2006
- Remove your birthday by typing /deletebirthday
- See the list of birthdays added in this group with /birthdaylist

I'll send a special message on your birthday! 😊`

const privateWelcomeText = `🎉 Welcome! I'm delighted to meet you!

I'm here to help you keep track of your friends' birthdays and ensure you never miss a special day. Here's what you can do:

🎂 Command for DM only:

Add your friend's birthday by typing /addbirthday [Friend's Name] DD-MM-YYYY.
Example: /addbirthday Aakash_Gupta 15-08-2006
Remove a birthday by typing /deletebirthday [Friend's Name]
See the list of birthdays you added with /birthdaylist

I'll make sure your friends receive warm wishes on their special day! 🎈`

const helpText = `🤖 *Welcome to Birthday Reminder Bot* 🎉

This bot helps you manage birthdays and sends reminders for upcoming birthdays. Here are some things you can do:

*Add Your Birthday:*

- In Group Chats:
Use /mybirthday [DD-MM-YYYY] to add your birthday.
Example: /mybirthday 15-08-2006

- In Private Messages:
Use /addbirthday [Friend's Name] [DD-MM-YYYY] to add a friend's birthday.
Example: /addbirthday Aakashuu 15-08-2006

*Commands for both Groups and Private*

- Remove Your Birthday:
Use /deletebirthday to remove your birthday from the list.

- View Birthday List:
Use /birthdaylist to see all birthdays added in the group or in your personal list.

The bot will send a custom birthday message on your special day, and even pin the message in group chats!

Click the buttons below for more information or to get started!`

const aboutText = `🎉 About Birthday Reminder Bot 🎉

Your personal assistant for managing and remembering birthdays! The bot sends a custom birthday message on the special day, pins it in group chats, and reminds you one and two days ahead.

Use /help to see the list of available commands.`

const supportText = "Birthday Reminder Bot v1.0.\nFeel free to DM for any support and reporting bugs."

// RegisterBotCommands wires the /start, /help and informational handlers.
// /start is also the only place the audience registry grows.
func RegisterBotCommands(
	b *telebot.Bot,
	cfg *config.AppConfig,
	audience *app.AudienceRegistry,
	baseLogger *logrus.Entry,
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	helpMenu := &telebot.ReplyMarkup{}
	btnDocs := helpMenu.URL("📘 Documentation", cfg.DocsURL)
	btnAbout := helpMenu.Data("🎂 About", "about")
	btnSupport := helpMenu.Data("📞 Support", "support")
	helpMenu.Inline(helpMenu.Row(btnDocs), helpMenu.Row(btnAbout, btnSupport))

	b.Handle("/start", func(c telebot.Context) error {
		chatID := c.Chat().ID
		isGroup := chatID < 0
		logCtx := startHelpLogger.WithFields(logrus.Fields{
			"command":   "/start",
			"chat_id":   chatID,
			"sender_id": c.Sender().ID,
			"is_group":  isGroup,
		})
		logCtx.Info("Processing /start command")

		if isGroup {
			audience.AddGroup(chatID)
			return c.Send(groupWelcomeText)
		}
		audience.AddUser(c.Sender().ID)
		return c.Send(privateWelcomeText)
	})

	b.Handle("/help", func(c telebot.Context) error {
		startHelpLogger.WithFields(logrus.Fields{
			"command":   "/help",
			"sender_id": c.Sender().ID,
		}).Info("Processing /help command")
		return c.Send(helpText, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown, ReplyMarkup: helpMenu})
	})

	b.Handle(&btnAbout, func(c telebot.Context) error {
		if err := c.Respond(); err != nil {
			startHelpLogger.WithError(err).Warn("Failed to answer about callback")
		}
		return c.Send(aboutText)
	})

	b.Handle(&btnSupport, func(c telebot.Context) error {
		if err := c.Respond(); err != nil {
			startHelpLogger.WithError(err).Warn("Failed to answer support callback")
		}
		return c.Send(supportText)
	})

	b.Handle(telebot.OnSticker, func(c telebot.Context) error {
		return c.Send("👍")
	})
}
