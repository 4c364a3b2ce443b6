package handler

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const PlatformTelegram = domain.PlatformTelegram

type Telegram struct {
	dispatcher  port.Dispatcher
	botUsername string
}

func NewTelegram(dispatcher port.Dispatcher, botUsername string) *Telegram {
	return &Telegram{dispatcher: dispatcher, botUsername: botUsername}
}

// Handle receives every text and caption update of the bot.
func (t *Telegram) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	message := newTelegramMessage(update.Message, t.botUsername)
	log.Debug().Str("message", message.Content).Int64("chatId", update.Message.Chat.ID).Msg("received message")

	res := t.dispatcher.Dispatch(ctx, message)
	if res.Matched() {
		log.Debug().Str("command", res.Command).Stringer("state", res.State).Msg("dispatched command")
	}
}

func newTelegramMessage(m *models.Message, botUsername string) *domain.Message {
	text := m.Text
	if text == "" {
		text = m.Caption
	}

	chatID := strconv.FormatInt(m.Chat.ID, 10)
	origin := domain.Origin{ChannelID: chatID}
	if m.Chat.Type != models.ChatTypePrivate {
		origin.GuildID = chatID
	}

	var mentions []string
	if botUsername != "" {
		mentions = []string{"@" + botUsername + " "}
	}

	return &domain.Message{
		ID:       strconv.Itoa(m.ID),
		Platform: PlatformTelegram,
		Content:  stripBotSuffix(text, botUsername),
		Author: domain.Author{
			ID:   strconv.FormatInt(m.From.ID, 10),
			Name: getUserNameOrFirstName(m.From),
			Bot:  m.From.IsBot,
		},
		Origin:       origin,
		SelfMentions: mentions,
	}
}

// stripBotSuffix turns "/roll@flightbot 6" into "/roll 6".
func stripBotSuffix(text, botUsername string) string {
	if botUsername == "" || !strings.HasPrefix(text, "/") {
		return text
	}

	label, rest, found := strings.Cut(text, " ")
	trimmed, ok := strings.CutSuffix(label, "@"+botUsername)
	if !ok {
		return text
	}
	if !found {
		return trimmed
	}

	return trimmed + " " + rest
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
