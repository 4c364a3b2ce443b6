package sender

import (
	"context"
	"flight/internal/core/domain"
	"fmt"
	"strconv"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const TelegramMessageLimit = 4096

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type TelegramSender struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *TelegramSender {
	return &TelegramSender{bot: bot}
}

// SendMessageReply replies to message, split into as many messages as the length limit requires. It returns the ID
// of the first message sent.
func (s *TelegramSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) (string, error) {
	chatID, err := strconv.ParseInt(message.Origin.ChannelID, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid telegram chat id %q: %w", message.Origin.ChannelID, err)
	}

	var replyTo *models.ReplyParameters
	if messageID, err := strconv.Atoi(message.ID); err == nil {
		replyTo = &models.ReplyParameters{MessageID: messageID, ChatID: chatID}
	}

	var first string
	for i, part := range chunk(text, TelegramMessageLimit) {
		sent, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:          chatID,
			Text:            part,
			ReplyParameters: replyTo,
		})
		if err != nil {
			log.Error().Err(err).Int64("chatId", chatID).Int("chunk", i).Msg("failed to send message reply")
			return first, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if i == 0 && sent != nil {
			first = strconv.Itoa(sent.ID)
		}
	}

	return first, nil
}
