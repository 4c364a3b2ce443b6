package commands

import (
	"context"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"fmt"
	"math/rand/v2"
	"strings"
)

type ChooseHandler struct {
	textSender port.TextSender
	pick       func(n int) int
}

func NewChooseHandler(textSender port.TextSender) *ChooseHandler {
	return &ChooseHandler{textSender: textSender, pick: rand.IntN}
}

func (h *ChooseHandler) Definition() domain.CommandDefinition {
	return domain.CommandDefinition{
		Name:        "choose",
		Aliases:     []string{"pick"},
		Description: "Picks one of the options separated by |.",
		Category:    CategoryFun,
		Delimiter:   '|',
		Parameters: []domain.ParameterSpec{
			{Name: "first", Type: domain.TypeString},
			{Name: "second", Type: domain.TypeString},
			{Name: "more", Type: domain.TypeString, Optional: true, Greedy: true, Default: ""},
		},
		Handler: h.Respond,
	}
}

func (h *ChooseHandler) Respond(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) error {
	l := requestLogger(inv)

	options := []string{args.String("first"), args.String("second")}
	options = append(options, domain.Tokenize(args.String("more"), '|')...)

	choices := options[:0]
	for _, o := range options {
		if o = strings.TrimSpace(o); o != "" {
			choices = append(choices, o)
		}
	}

	l.Info().Int("options", len(choices)).Msg("handling request")

	if len(choices) < 2 {
		_, err := h.textSender.SendMessageReply(ctx, inv.Message, "Give me at least two options separated by |.")
		return err
	}

	_, err := h.textSender.SendMessageReply(ctx, inv.Message, fmt.Sprintf("I choose: %s", choices[h.pick(len(choices))]))
	return err
}
