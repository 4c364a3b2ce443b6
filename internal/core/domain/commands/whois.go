package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"strconv"
	"strings"
	"time"
)

type WhoisHandler struct {
	textSender port.TextSender
}

func NewWhoisHandler(textSender port.TextSender) *WhoisHandler {
	return &WhoisHandler{textSender: textSender}
}

func (h *WhoisHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "whois",
		Aliases:     []string{"userinfo"},
		Description: "Shows who a member is. Defaults to yourself.",
		Category:    CategoryInfo,
		GuildOnly:   true,
		Parameters: []domain.ParameterSpec{
			{Name: "member", Type: domain.TypeMember, Optional: true},
		},
		Handler: h.Respond,
	}
}

func (h *WhoisHandler) Respond(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) error {
	l := requestLogger(inv)

	id, name := inv.Author().ID, inv.Author().Name
	if member, ok := args.Entity("member"); ok {
		id, name = member.ID, member.Name
	}

	l.Info().Str("target", id).Msg("handling request")

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nID: %s", name, id)

	if inv.Message.Platform == domain.PlatformDiscord {
		if n, err := strconv.ParseUint(id, 10, 64); err == nil {
			fmt.Fprintf(&b, "\nAccount created: %s", domain.Snowflake(n).Time().UTC().Format(time.RFC1123))
		}
	}

	_, err := h.textSender.SendMessageReply(ctx, inv.Message, b.String())
	return err
}
