package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/groblegark/gatewarden/internal/model"
)

// Gatekeeper is the engine-facing half of the poller. Implemented by
// gate.Engine.
type Gatekeeper interface {
	HandleJoin(ctx context.Context, key model.Key) error
	HandleMessage(ctx context.Context, key model.Key, text string) error
}

// updateSource is the subset of tgbotapi.BotAPI the poller uses.
type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Poller long-polls the Telegram Bot API and feeds join and message
// events into the gate engine.
type Poller struct {
	bot    updateSource
	engine Gatekeeper
	tr     *Transport
	logger *slog.Logger

	// DeleteJoinMessages removes "user joined" service messages from the
	// group after they are processed.
	DeleteJoinMessages bool
}

// NewPoller returns a Poller that dispatches updates from the transport's
// bot connection into the engine. It fails when the transport's bot
// cannot serve an update stream.
func NewPoller(tr *Transport, engine Gatekeeper, logger *slog.Logger) (*Poller, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bot, ok := tr.bot.(updateSource)
	if !ok {
		return nil, fmt.Errorf("telegram: bot %T does not provide an update stream", tr.bot)
	}
	return &Poller{
		bot:    bot,
		engine: engine,
		tr:     tr,
		logger: logger,
	}, nil
}

// Run consumes updates until ctx is cancelled. It blocks; callers run it
// in a goroutine.
func (p *Poller) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := p.bot.GetUpdatesChan(cfg)
	defer p.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			p.dispatch(ctx, update)
		}
	}
}

// dispatch routes a single update. Join events take precedence over the
// message text carried by the same update.
func (p *Poller) dispatch(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	groupID := msg.Chat.ID

	if len(msg.NewChatMembers) > 0 {
		for _, member := range msg.NewChatMembers {
			if member.IsBot {
				continue
			}
			key := model.Key{GroupID: groupID, MemberID: member.ID}
			if err := p.engine.HandleJoin(ctx, key); err != nil {
				p.logger.Warn("telegram: join handling failed", "key", key, "error", err)
			}
		}
		if p.DeleteJoinMessages {
			if err := p.tr.DeleteMessage(ctx, groupID, msg.MessageID); err != nil {
				p.logger.Debug("telegram: delete join message failed", "error", err)
			}
		}
		return
	}

	if msg.From == nil {
		return
	}
	key := model.Key{GroupID: groupID, MemberID: msg.From.ID}
	if err := p.engine.HandleMessage(ctx, key, msg.Text); err != nil {
		p.logger.Warn("telegram: message handling failed", "key", key, "error", err)
	}
}
