package domain

const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"
)

// Author is the sender of an inbound message.
type Author struct {
	ID        string
	Name      string
	Bot       bool
	AvatarURL string
}

// Origin is where a message was posted. GuildID is empty for direct messages.
type Origin struct {
	GuildID   string
	ChannelID string
	NSFW      bool
}

// InGuild reports whether the message was sent inside a guild (or group chat).
func (o Origin) InGuild() bool {
	return o.GuildID != ""
}

// ScopeID identifies the origin for per-origin cooldowns: the guild when there is one, the channel otherwise.
func (o Origin) ScopeID() string {
	if o.GuildID != "" {
		return o.GuildID
	}

	return o.ChannelID
}

type Message struct {
	ID       string
	Platform string
	Content  string
	Author   Author
	Origin   Origin
	// SelfMentions holds the strings that address the bot directly, e.g. "<@123> ".
	SelfMentions []string
}
