package listener

import (
	"context"
	"errors"
	"flight/internal/core/domain"
	"flight/internal/core/domain/command"
	"flight/internal/core/port"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	notDeveloper      = "This command is reserved for the bot owners."
	guildOnly         = "This command cannot be used in direct messages."
	notSafeForChannel = "This command can only be used in NSFW channels."
	missingCaller     = "You need the following permissions to run this command: %s"
	missingBot        = "I need the following permissions to run this command: %s"
	onCooldown        = "That command is on cooldown for %.1f more seconds."
	missingArgument   = "Missing argument `%s`. Usage: `%s`"
	invalidArgument   = "`%s` is not a valid %s for `%s`. Usage: `%s`"
	poolSaturated     = "I'm a bit busy right now, please try again in a moment."
	executionFailed   = "Something went wrong while running `%s`."
)

// Reply answers the caller when a command is refused or fails. Completed commands reply on their own.
type Reply struct {
	sender   port.TextSender
	describe func(domain.Permissions) string
}

// NewReply returns a reply listener. describe names permission bits and defaults to printing them in hex.
func NewReply(sender port.TextSender, describe func(domain.Permissions) string) *Reply {
	if describe == nil {
		describe = func(p domain.Permissions) string {
			return fmt.Sprintf("%#x", int64(p))
		}
	}

	return &Reply{sender: sender, describe: describe}
}

func (r *Reply) OnPermissionDenied(ctx context.Context, inv *domain.InvocationContext, err *domain.PermissionDenied) {
	var text string
	switch err.Reason {
	case domain.NotDeveloper:
		text = notDeveloper
	case domain.GuildOnly:
		text = guildOnly
	case domain.NotSafeForChannel:
		text = notSafeForChannel
	case domain.MissingCallerPermission:
		text = fmt.Sprintf(missingCaller, r.describe(err.Missing))
	case domain.MissingBotPermission:
		text = fmt.Sprintf(missingBot, r.describe(err.Missing))
	default:
		text = err.Error()
	}

	r.send(ctx, inv, text)
}

func (r *Reply) OnCooldown(ctx context.Context, inv *domain.InvocationContext, err *domain.CooldownActive) {
	r.send(ctx, inv, fmt.Sprintf(onCooldown, err.Remaining.Seconds()))
}

func (r *Reply) OnParseFailure(ctx context.Context, inv *domain.InvocationContext, err error) {
	usage := command.Usage(inv.Command, inv.Prefix, true)

	var missing *domain.MissingArgument
	var invalid *domain.InvalidFormat
	switch {
	case errors.As(err, &missing):
		r.send(ctx, inv, fmt.Sprintf(missingArgument, missing.Param.Name, usage))
	case errors.As(err, &invalid):
		r.send(ctx, inv, fmt.Sprintf(invalidArgument, invalid.Token, invalid.Param.Type, invalid.Param.Name, usage))
	default:
		r.send(ctx, inv, err.Error())
	}
}

func (r *Reply) OnExecutionFailure(ctx context.Context, inv *domain.InvocationContext, err *domain.ExecutionFailure) {
	if errors.Is(err, domain.ErrPoolSaturated) {
		r.send(ctx, inv, poolSaturated)
		return
	}

	r.send(ctx, inv, fmt.Sprintf(executionFailed, err.Command))
}

func (r *Reply) OnCompleted(context.Context, *domain.InvocationContext, time.Duration) {}

func (r *Reply) send(ctx context.Context, inv *domain.InvocationContext, text string) {
	_, err := r.sender.SendMessageReply(ctx, inv.Message, text)
	if err != nil {
		log.Warn().Err(err).Str("invocation", inv.ID.String()).Msg("failed to send failure reply")
	}
}
