package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"time"
)

type PingHandler struct {
	textSender port.TextSender
}

func NewPingHandler(textSender port.TextSender) *PingHandler {
	return &PingHandler{textSender: textSender}
}

func (h *PingHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "ping",
		Description: "Checks that the bot is alive.",
		Category:    CategoryGeneral,
		Handler:     h.Respond,
	}
}

func (h *PingHandler) Respond(ctx context.Context, inv *domain.InvocationContext, _ *domain.Arguments) error {
	l := requestLogger(inv)
	l.Info().Msg("handling request")

	start := time.Now()
	_, err := h.textSender.SendMessageReply(ctx, inv.Message, "Pong!")
	if err != nil {
		return fmt.Errorf("failed to send pong: %w", err)
	}

	l.Debug().Dur("roundtrip", time.Since(start)).Msg("pong sent")

	return nil
}
