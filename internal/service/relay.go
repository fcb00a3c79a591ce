package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ecotrack/internal/catalog"
	"ecotrack/pkg/logger"
	"go.uber.org/zap"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const relayReplyTimeout = 2 * time.Minute

type RelayConfig struct {
	BotToken string
	Debug    bool
}

// BotSender is the part of the Telegram bot API the relay replies through.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// RelayService answers Telegram chat messages with EcoBot.
type RelayService struct {
	bot    *tgbotapi.BotAPI
	sender BotSender
	ecobot EcoBotServiceI
}

func NewRelayService(config RelayConfig, ecobot EcoBotServiceI) (*RelayService, error) {
	bot, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	bot.Debug = config.Debug

	return &RelayService{
		bot:    bot,
		sender: bot,
		ecobot: ecobot,
	}, nil
}

// HandleMessage replies to one incoming message. /start and /help get the greeting,
// messages without text are ignored.
func (s *RelayService) HandleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	var text string

	switch {
	case msg.IsCommand() && (msg.Command() == "start" || msg.Command() == "help"):
		text = catalog.EcoBotGreeting

	default:
		reply, err := s.ecobot.Chat(ctx, msg.Text)
		if errors.Is(err, ErrEmptyMessage) {
			return nil
		}
		if err != nil {
			return err
		}
		text = reply.Reply
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID

	_, err := s.sender.Send(out)
	return err
}

// Start polls for updates until ctx is cancelled.
func (s *RelayService) Start(ctx context.Context) {
	log := logger.Logger()

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := s.bot.GetUpdatesChan(updateConfig)
	defer s.bot.StopReceivingUpdates()

	log.Info("ecobot relay started", zap.String("bot", s.bot.Self.UserName))

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Chat == nil {
				continue
			}

			msgCtx, cancel := context.WithTimeout(ctx, relayReplyTimeout)
			if err := s.HandleMessage(msgCtx, update.Message); err != nil {
				log.Error("failed to answer telegram message",
					zap.Int64("chat_id", update.Message.Chat.ID),
					zap.Error(err))
			}
			cancel()

		case <-ctx.Done():
			return
		}
	}
}
