package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fleetfuel/internal/bot"
	"fleetfuel/internal/logger"
)

// Poller receives updates by long polling and feeds them to the dispatcher.
// It is the default transport; webhook delivery goes through the HTTP layer
// instead.
type Poller struct {
	client     *Client
	dispatcher *bot.Dispatcher
	log        *logger.Logger
}

func NewPoller(client *Client, dispatcher *bot.Dispatcher, log *logger.Logger) *Poller {
	return &Poller{client: client, dispatcher: dispatcher, log: log}
}

// Run blocks until ctx is cancelled. Updates are handled sequentially; the
// dispatcher recovers its own panics, so one bad update never stops the loop.
func (p *Poller) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := p.client.api.GetUpdatesChan(cfg)

	p.log.Infow("polling_started", "bot", p.client.Username())
	for {
		select {
		case <-ctx.Done():
			p.client.api.StopReceivingUpdates()
			p.log.Infow("polling_stopped")
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			p.client.ackCallback(u)
			in, handled := toIncoming(u)
			if !handled {
				continue
			}
			p.dispatcher.HandleUpdate(ctx, in)
		}
	}
}
