package commands

import (
	"flight/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	CategoryGeneral = "General"
	CategoryFun     = "Fun"
	CategoryInfo    = "Information"
	CategoryOwner   = "Owner"
)

func requestLogger(inv *domain.InvocationContext) zerolog.Logger {
	return log.With().
		Str("invocation", inv.ID.String()).
		Str("messageId", inv.Message.ID).
		Str("channelId", inv.Origin().ChannelID).
		Str("command", inv.Command.Name).
		Logger()
}
