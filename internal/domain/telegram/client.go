package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for the messaging operations the application
// layer needs from the Telegram transport. This decouples the services from
// the concrete bot library.
type Client interface {
	// SendMessage delivers text to the chat and returns the ID of the sent
	// message so callers can pin it afterwards.
	SendMessage(chatID int64, text string, options *telebot.SendOptions) (messageID int, err error)
	// PinMessage pins a previously sent message in the chat.
	PinMessage(chatID int64, messageID int) error
	// ChatMemberName resolves a member's display name (username preferred)
	// within a group chat. Lookup failures must be tolerated by callers.
	ChatMemberName(chatID, userID int64) (string, error)
}
