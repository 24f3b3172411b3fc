package notifier

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "pricewatch/internal/errors"
	"pricewatch/internal/models"
	"pricewatch/internal/store"
)

// Telegram sends status messages to a fixed chat via the Telegram Bot
// API.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram authenticates the bot token and returns a Telegram
// notifier targeting the given chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrNotifyFailed, err)
	}
	return &Telegram{bot: bot, chatID: chatID}, nil
}

// Notify formats and sends the message. The Bot API client has no
// context support; the request is allowed to complete or time out on
// its own.
func (t *Telegram) Notify(_ context.Context, obs *models.PriceObservation, max *store.MaxResult) error {
	msg := tgbotapi.NewMessage(t.chatID, BuildMessage(obs, max))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.bot.Send(msg); err != nil {
		return apperrors.Wrap(apperrors.ErrNotifyFailed, err)
	}
	return nil
}
