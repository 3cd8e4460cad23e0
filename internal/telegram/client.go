package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fleetfuel/internal/bot"
)

// Client wraps the Bot API connection and implements bot.Sender.
type Client struct {
	api *tgbotapi.BotAPI
}

func NewClient(token string) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	return &Client{api: api}, nil
}

// Username returns the bot account name reported by the API.
func (c *Client) Username() string {
	return c.api.Self.UserName
}

func (c *Client) SendMessage(chatID int64, text string) error {
	_, err := c.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendMenu sends text with a persistent reply keyboard built from rows of
// button labels.
func (c *Client) SendMenu(chatID int64, text string, rows [][]string) error {
	keyboard := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(label))
		}
		keyboard = append(keyboard, buttons)
	}
	msg := tgbotapi.NewMessage(chatID, text)
	markup := tgbotapi.NewReplyKeyboard(keyboard...)
	markup.ResizeKeyboard = true
	msg.ReplyMarkup = markup
	_, err := c.api.Send(msg)
	return err
}

// SendChoice sends text with a single row of inline buttons.
func (c *Client) SendChoice(chatID int64, text string, choices []bot.Choice) error {
	buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(choices))
	for _, ch := range choices {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(ch.Label, ch.Data))
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(buttons)
	_, err := c.api.Send(msg)
	return err
}

// toIncoming flattens a raw update into the dispatcher's input shape. The
// second return is false for update kinds the bot does not handle (edits,
// channel posts, inline queries).
func toIncoming(u tgbotapi.Update) (bot.Incoming, bool) {
	switch {
	case u.Message != nil && u.Message.From != nil:
		return bot.Incoming{
			ChatID:   u.Message.Chat.ID,
			UserID:   u.Message.From.ID,
			Username: u.Message.From.UserName,
			Text:     u.Message.Text,
		}, true
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return bot.Incoming{
			ChatID:       u.CallbackQuery.Message.Chat.ID,
			UserID:       u.CallbackQuery.From.ID,
			Username:     u.CallbackQuery.From.UserName,
			CallbackData: u.CallbackQuery.Data,
		}, true
	}
	return bot.Incoming{}, false
}

// ackCallback stops the client-side spinner on the pressed button.
func (c *Client) ackCallback(u tgbotapi.Update) {
	if u.CallbackQuery == nil {
		return
	}
	_, _ = c.api.Request(tgbotapi.NewCallback(u.CallbackQuery.ID, ""))
}
