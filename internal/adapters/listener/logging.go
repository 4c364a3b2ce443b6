package listener

import (
	"context"
	"flight/internal/core/domain"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logging writes every dispatch outcome to the global logger.
type Logging struct{}

func NewLogging() *Logging {
	return &Logging{}
}

func (l *Logging) OnPermissionDenied(_ context.Context, inv *domain.InvocationContext, err *domain.PermissionDenied) {
	event(inv, log.Info()).
		Stringer("reason", err.Reason).
		Int64("missing", int64(err.Missing)).
		Msg("permission denied")
}

func (l *Logging) OnCooldown(_ context.Context, inv *domain.InvocationContext, err *domain.CooldownActive) {
	event(inv, log.Info()).
		Int64("remainingMs", err.RemainingMillis()).
		Msg("command on cooldown")
}

func (l *Logging) OnParseFailure(_ context.Context, inv *domain.InvocationContext, err error) {
	event(inv, log.Info()).Err(err).Msg("invalid arguments")
}

func (l *Logging) OnExecutionFailure(_ context.Context, inv *domain.InvocationContext, err *domain.ExecutionFailure) {
	event(inv, log.Error()).Err(err.Cause).Msg("command failed")
}

func (l *Logging) OnCompleted(_ context.Context, inv *domain.InvocationContext, elapsed time.Duration) {
	event(inv, log.Info()).Dur("elapsed", elapsed).Msg("command completed")
}

func event(inv *domain.InvocationContext, e *zerolog.Event) *zerolog.Event {
	return e.
		Str("invocation", inv.ID.String()).
		Str("command", inv.Command.Name).
		Str("label", inv.Label).
		Str("author", inv.Author().ID).
		Str("channel", inv.Origin().ChannelID).
		Str("platform", inv.Message.Platform)
}
