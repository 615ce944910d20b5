// internal/infra/telegram/client.go
package telegram

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the domain telegram.Client interface using the
// gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the chat (group or private) and
// returns the delivered message's ID.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) (int, error) {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	msg, err := tba.bot.Send(telebot.ChatID(chatID), text, options)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// PinMessage pins a previously sent message in the chat.
func (tba *TelebotAdapter) PinMessage(chatID int64, messageID int) error {
	target := &telebot.Message{ID: messageID, Chat: &telebot.Chat{ID: chatID}}
	return tba.bot.Pin(target)
}

// ChatMemberName resolves a group member's username, falling back to the
// first/last name when no username is set. The error is returned as-is so
// callers can apply their own fallback.
func (tba *TelebotAdapter) ChatMemberName(chatID, userID int64) (string, error) {
	member, err := tba.bot.ChatMemberOf(telebot.ChatID(chatID), &telebot.User{ID: userID})
	if err != nil {
		return "", err
	}
	if member.User.Username != "" {
		return member.User.Username, nil
	}
	name := member.User.FirstName
	if member.User.LastName != "" {
		name += " " + member.User.LastName
	}
	return strings.TrimSpace(name), nil
}
