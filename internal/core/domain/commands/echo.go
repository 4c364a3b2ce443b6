package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
)

type EchoHandler struct {
	textSender port.TextSender
}

func NewEchoHandler(textSender port.TextSender) *EchoHandler {
	return &EchoHandler{textSender: textSender}
}

func (h *EchoHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "echo",
		Aliases:     []string{"say"},
		Description: "Repeats the given text.",
		Category:    CategoryFun,
		Parameters: []domain.ParameterSpec{
			{Name: "text", Type: domain.TypeString, Greedy: true},
		},
		Handler: h.Respond,
	}
}

func (h *EchoHandler) Respond(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) error {
	l := requestLogger(inv)
	l.Info().Msg("handling request")

	_, err := h.textSender.SendMessageReply(ctx, inv.Message, args.String("text"))
	return err
}
