package port

import (
	"context"
	"flight/internal/core/domain"
	"time"
)

// EventAdapter receives the outcome of every dispatch that resolved to a command. Exactly one method is called per
// invocation.
type EventAdapter interface {
	OnPermissionDenied(ctx context.Context, inv *domain.InvocationContext, err *domain.PermissionDenied)
	OnCooldown(ctx context.Context, inv *domain.InvocationContext, err *domain.CooldownActive)
	// OnParseFailure receives a *domain.MissingArgument or *domain.InvalidFormat.
	OnParseFailure(ctx context.Context, inv *domain.InvocationContext, err error)
	OnExecutionFailure(ctx context.Context, inv *domain.InvocationContext, err *domain.ExecutionFailure)
	OnCompleted(ctx context.Context, inv *domain.InvocationContext, elapsed time.Duration)
}

// NopEventAdapter can be embedded to implement only some of the callbacks.
type NopEventAdapter struct{}

func (NopEventAdapter) OnPermissionDenied(context.Context, *domain.InvocationContext, *domain.PermissionDenied) {
}

func (NopEventAdapter) OnCooldown(context.Context, *domain.InvocationContext, *domain.CooldownActive) {}

func (NopEventAdapter) OnParseFailure(context.Context, *domain.InvocationContext, error) {}

func (NopEventAdapter) OnExecutionFailure(context.Context, *domain.InvocationContext, *domain.ExecutionFailure) {
}

func (NopEventAdapter) OnCompleted(context.Context, *domain.InvocationContext, time.Duration) {}
