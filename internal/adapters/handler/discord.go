package handler

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const PlatformDiscord = domain.PlatformDiscord

type Discord struct {
	ctx        context.Context
	dispatcher port.Dispatcher
}

// NewDiscord returns a handler that dispatches under ctx. Discordgo handlers get no context of their own.
func NewDiscord(ctx context.Context, dispatcher port.Dispatcher) *Discord {
	return &Discord{ctx: ctx, dispatcher: dispatcher}
}

func (h *Discord) OnMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}

	var selfID string
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	if m.Author.ID == selfID {
		return
	}

	var nsfw bool
	if s.State != nil {
		if ch, err := s.State.Channel(m.ChannelID); err == nil {
			nsfw = ch.NSFW
		}
	}

	message := newDiscordMessage(m, selfID, nsfw)
	log.Debug().Str("message", message.Content).Str("channelId", m.ChannelID).Msg("received message")

	res := h.dispatcher.Dispatch(h.ctx, message)
	if res.Matched() {
		log.Debug().Str("command", res.Command).Stringer("state", res.State).Msg("dispatched command")
	}
}

func newDiscordMessage(m *discordgo.MessageCreate, selfID string, nsfw bool) *domain.Message {
	var mentions []string
	if selfID != "" {
		mentions = []string{"<@" + selfID + "> ", "<@!" + selfID + "> "}
	}

	name := m.Author.GlobalName
	if name == "" {
		name = m.Author.Username
	}

	return &domain.Message{
		ID:       m.ID,
		Platform: PlatformDiscord,
		Content:  m.Content,
		Author: domain.Author{
			ID:        m.Author.ID,
			Name:      name,
			Bot:       m.Author.Bot,
			AvatarURL: m.Author.AvatarURL(""),
		},
		Origin: domain.Origin{
			GuildID:   m.GuildID,
			ChannelID: m.ChannelID,
			NSFW:      nsfw,
		},
		SelfMentions: mentions,
	}
}
