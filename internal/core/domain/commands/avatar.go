package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
)

type AvatarHandler struct {
	textSender port.TextSender
}

func NewAvatarHandler(textSender port.TextSender) *AvatarHandler {
	return &AvatarHandler{textSender: textSender}
}

func (h *AvatarHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "avatar",
		Aliases:     []string{"pfp"},
		Description: "Links the avatar of a user. Defaults to yourself.",
		Category:    CategoryInfo,
		Parameters: []domain.ParameterSpec{
			{Name: "user", Type: domain.TypeUser, Optional: true},
		},
		Handler: h.Respond,
	}
}

func (h *AvatarHandler) Respond(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) error {
	l := requestLogger(inv)

	name, avatar := inv.Author().Name, inv.Author().AvatarURL
	if user, ok := args.Entity("user"); ok {
		name, avatar = user.Name, user.AvatarURL
	}

	l.Info().Str("target", name).Msg("handling request")

	text := fmt.Sprintf("Avatar of %s: %s", name, avatar)
	if avatar == "" {
		text = fmt.Sprintf("%s has no avatar I can show.", name)
	}

	_, err := h.textSender.SendMessageReply(ctx, inv.Message, text)
	return err
}
