package resolver

import (
	"context"
	"flight/internal/core/domain"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// DiscordPermissions computes channel permissions from the session state and asks the API when the state lacks
// the member or channel.
type DiscordPermissions struct {
	state  *discordgo.State
	remote func(ctx context.Context, userID, channelID string) (int64, error)
}

func NewDiscordPermissions(session *discordgo.Session) *DiscordPermissions {
	return &DiscordPermissions{
		state: session.State,
		remote: func(ctx context.Context, userID, channelID string) (int64, error) {
			return session.UserChannelPermissions(userID, channelID, discordgo.WithContext(ctx))
		},
	}
}

func (d *DiscordPermissions) Permissions(ctx context.Context, origin domain.Origin, userID string) (domain.Permissions, error) {
	perms, err := d.state.UserChannelPermissions(userID, origin.ChannelID)
	if err == nil {
		return domain.Permissions(perms), nil
	}

	if d.remote == nil {
		return 0, err
	}

	log.Debug().Err(err).Str("user", userID).Str("channel", origin.ChannelID).
		Msg("permissions not in state, asking the api")

	perms, err = d.remote(ctx, userID, origin.ChannelID)
	if err != nil {
		return 0, err
	}

	return domain.Permissions(perms), nil
}

func (d *DiscordPermissions) SelfID() string {
	if d.state == nil || d.state.User == nil {
		return ""
	}

	return d.state.User.ID
}

// DiscordIdentities looks entities up in the session state. It never calls the API.
type DiscordIdentities struct {
	state *discordgo.State
}

func NewDiscordIdentities(state *discordgo.State) *DiscordIdentities {
	return &DiscordIdentities{state: state}
}

func (d *DiscordIdentities) Resolve(kind domain.EntityKind, origin domain.Origin, q domain.EntityQuery) (domain.Entity, bool) {
	switch kind {
	case domain.EntityUser:
		return d.user(origin, q)
	case domain.EntityMember:
		if !origin.InGuild() {
			return domain.Entity{}, false
		}
		return d.member(origin.GuildID, q)
	case domain.EntityRole:
		return d.role(origin.GuildID, q)
	case domain.EntityTextChannel:
		return d.channel(origin.GuildID, q, isTextChannel)
	case domain.EntityVoiceChannel:
		return d.channel(origin.GuildID, q, isVoiceChannel)
	default:
		return domain.Entity{}, false
	}
}

func (d *DiscordIdentities) guild(guildID string) (*discordgo.Guild, bool) {
	if guildID == "" {
		return nil, false
	}

	g, err := d.state.Guild(guildID)
	if err != nil {
		return nil, false
	}

	return g, true
}

func (d *DiscordIdentities) member(guildID string, q domain.EntityQuery) (domain.Entity, bool) {
	g, ok := d.guild(guildID)
	if !ok {
		return domain.Entity{}, false
	}

	d.state.RLock()
	defer d.state.RUnlock()

	for _, m := range g.Members {
		if m.User == nil || !matchesMember(m, q) {
			continue
		}

		return domain.Entity{Kind: domain.EntityMember, ID: m.User.ID, Name: memberName(m),
			AvatarURL: m.AvatarURL(""), Raw: m}, true
	}

	return domain.Entity{}, false
}

// user searches the origin guild first, then every guild in the state.
func (d *DiscordIdentities) user(origin domain.Origin, q domain.EntityQuery) (domain.Entity, bool) {
	if e, ok := d.member(origin.GuildID, q); ok {
		m := e.Raw.(*discordgo.Member)
		return domain.Entity{Kind: domain.EntityUser, ID: e.ID, Name: m.User.Username,
			AvatarURL: m.User.AvatarURL(""), Raw: m.User}, true
	}

	d.state.RLock()
	defer d.state.RUnlock()

	for _, g := range d.state.Guilds {
		for _, m := range g.Members {
			if m.User == nil || !matchesMember(m, q) {
				continue
			}

			return domain.Entity{Kind: domain.EntityUser, ID: m.User.ID, Name: m.User.Username,
				AvatarURL: m.User.AvatarURL(""), Raw: m.User}, true
		}
	}

	return domain.Entity{}, false
}

func (d *DiscordIdentities) role(guildID string, q domain.EntityQuery) (domain.Entity, bool) {
	g, ok := d.guild(guildID)
	if !ok {
		return domain.Entity{}, false
	}

	d.state.RLock()
	defer d.state.RUnlock()

	for _, r := range g.Roles {
		if (q.ID != "" && r.ID == q.ID) || (q.ID == "" && strings.EqualFold(r.Name, q.Name)) {
			return domain.Entity{Kind: domain.EntityRole, ID: r.ID, Name: r.Name, Raw: r}, true
		}
	}

	return domain.Entity{}, false
}

func (d *DiscordIdentities) channel(guildID string, q domain.EntityQuery,
	accept func(*discordgo.Channel) bool) (domain.Entity, bool) {
	g, ok := d.guild(guildID)
	if !ok {
		return domain.Entity{}, false
	}

	d.state.RLock()
	defer d.state.RUnlock()

	for _, c := range g.Channels {
		if !accept(c) {
			continue
		}
		if (q.ID != "" && c.ID == q.ID) || (q.ID == "" && strings.EqualFold(strings.TrimPrefix(q.Name, "#"), c.Name)) {
			kind := domain.EntityTextChannel
			if c.Type == discordgo.ChannelTypeGuildVoice || c.Type == discordgo.ChannelTypeGuildStageVoice {
				kind = domain.EntityVoiceChannel
			}

			return domain.Entity{Kind: kind, ID: c.ID, Name: c.Name, Raw: c}, true
		}
	}

	return domain.Entity{}, false
}

func matchesMember(m *discordgo.Member, q domain.EntityQuery) bool {
	if q.ID != "" {
		return m.User.ID == q.ID
	}

	name := strings.TrimPrefix(q.Name, "@")
	return strings.EqualFold(m.Nick, name) ||
		strings.EqualFold(m.User.Username, name) ||
		strings.EqualFold(m.User.GlobalName, name)
}

func memberName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}

	return m.User.Username
}

func isTextChannel(c *discordgo.Channel) bool {
	return c.Type == discordgo.ChannelTypeGuildText || c.Type == discordgo.ChannelTypeGuildNews
}

func isVoiceChannel(c *discordgo.Channel) bool {
	return c.Type == discordgo.ChannelTypeGuildVoice || c.Type == discordgo.ChannelTypeGuildStageVoice
}
