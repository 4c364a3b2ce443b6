package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	defaultSides = 6
	maxSides     = 1_000_000
)

type RollHandler struct {
	textSender port.TextSender
	roll       func(n int) int
}

func NewRollHandler(textSender port.TextSender) *RollHandler {
	return &RollHandler{textSender: textSender, roll: rand.IntN}
}

func (h *RollHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "roll",
		Aliases:     []string{"dice"},
		Description: "Rolls a die with the given number of sides.",
		Category:    CategoryFun,
		Parameters: []domain.ParameterSpec{
			{Name: "sides", Type: domain.TypeInt, Optional: true, Default: defaultSides},
		},
		Cooldown: domain.Cooldown{Duration: 5 * time.Second, Uses: 1, Scope: domain.ScopeCaller},
		Handler:  h.Respond,
	}
}

func (h *RollHandler) Respond(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) error {
	l := requestLogger(inv)

	sides := args.Int("sides")
	l.Info().Int("sides", sides).Msg("handling request")

	if sides < 2 || sides > maxSides {
		_, err := h.textSender.SendMessageReply(ctx, inv.Message,
			fmt.Sprintf("A die needs between 2 and %d sides.", maxSides))
		return err
	}

	result := h.roll(sides) + 1

	_, err := h.textSender.SendMessageReply(ctx, inv.Message, fmt.Sprintf("🎲 You rolled %d (d%d).", result, sides))
	return err
}
