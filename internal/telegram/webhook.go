package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fleetfuel/internal/bot"
	"fleetfuel/internal/logger"
)

// Webhook processes updates delivered over HTTP instead of long polling.
// The HTTP layer owns the route and the token check; this type owns the
// decoding and the webhook registration with the Bot API.
type Webhook struct {
	client     *Client
	dispatcher *bot.Dispatcher
	log        *logger.Logger
}

func NewWebhook(client *Client, dispatcher *bot.Dispatcher, log *logger.Logger) *Webhook {
	return &Webhook{client: client, dispatcher: dispatcher, log: log}
}

// Register points the Bot API at publicURL/webhook/<token>.
func (w *Webhook) Register(publicURL string) error {
	cfg, err := tgbotapi.NewWebhook(fmt.Sprintf("%s/webhook/%s", publicURL, w.client.api.Token))
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	if _, err := w.client.api.Request(cfg); err != nil {
		return fmt.Errorf("register webhook: %w", err)
	}
	w.log.Infow("webhook_registered", "bot", w.client.Username())
	return nil
}

// Handle decodes one delivered update and dispatches it. A decode failure is
// the caller's 4xx; dispatch itself never returns an error.
func (w *Webhook) Handle(ctx context.Context, body io.Reader) error {
	var u tgbotapi.Update
	if err := json.NewDecoder(body).Decode(&u); err != nil {
		return fmt.Errorf("decode update: %w", err)
	}
	w.client.ackCallback(u)
	in, handled := toIncoming(u)
	if !handled {
		return nil
	}
	w.dispatcher.HandleUpdate(ctx, in)
	return nil
}
