package sender

import (
	"context"
	"flight/internal/core/domain"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const DiscordMessageLimit = 2000

type DiscordSession interface {
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordSender struct {
	session DiscordSession
}

func NewDiscord(session DiscordSession) *DiscordSender {
	return &DiscordSender{session: session}
}

func (s *DiscordSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) (string, error) {
	reference := &discordgo.MessageReference{
		MessageID: message.ID,
		ChannelID: message.Origin.ChannelID,
		GuildID:   message.Origin.GuildID,
	}

	var first string
	for i, part := range chunk(text, DiscordMessageLimit) {
		sent, err := s.session.ChannelMessageSendReply(message.Origin.ChannelID, part, reference,
			discordgo.WithContext(ctx))
		if err != nil {
			log.Error().Err(err).Str("channelId", message.Origin.ChannelID).Int("chunk", i).
				Msg("failed to send message reply")
			return first, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if i == 0 && sent != nil {
			first = sent.ID
		}
	}

	return first, nil
}
