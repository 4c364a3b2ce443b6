package service

import (
	"context"
	"errors"
	"flight/internal/core/domain"
	"flight/internal/core/port"
	"flight/internal/core/service/cooldown"
	"flight/internal/core/service/execution"
	"flight/internal/core/service/parser"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dispatcher runs inbound messages through the command pipeline. Registration must finish before the first Dispatch.
type Dispatcher struct {
	commands  port.CommandRegistry
	parsers   *parser.Registry
	prefixes  port.PrefixProvider
	cooldowns port.CooldownProvider
	resolver  port.PermissionResolver
	executor  port.ExecutionStrategy
	adapters  []port.EventAdapter

	owners     []string
	ignoreBots bool
	gate       *PermissionGate
}

type Option func(*Dispatcher)

func WithPrefixProvider(p port.PrefixProvider) Option {
	return func(d *Dispatcher) {
		d.prefixes = p
	}
}

func WithCooldownTracker(t port.CooldownTracker) Option {
	return func(d *Dispatcher) {
		d.cooldowns = cooldown.NewProvider(t)
	}
}

func WithCooldownProvider(p port.CooldownProvider) Option {
	return func(d *Dispatcher) {
		d.cooldowns = p
	}
}

func WithPermissionResolver(r port.PermissionResolver) Option {
	return func(d *Dispatcher) {
		d.resolver = r
	}
}

func WithEventAdapters(adapters ...port.EventAdapter) Option {
	return func(d *Dispatcher) {
		d.adapters = append(d.adapters, adapters...)
	}
}

// WithOwnerIDs sets the users that pass every permission check and skip cooldowns.
func WithOwnerIDs(ids ...string) Option {
	return func(d *Dispatcher) {
		d.owners = append(d.owners, ids...)
	}
}

func WithIgnoreBots(ignore bool) Option {
	return func(d *Dispatcher) {
		d.ignoreBots = ignore
	}
}

func WithExecution(s port.ExecutionStrategy) Option {
	return func(d *Dispatcher) {
		d.executor = s
	}
}

func NewDispatcher(commands port.CommandRegistry, parsers *parser.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		commands:  commands,
		parsers:   parsers,
		prefixes:  NewDefaultPrefixProvider(nil, false),
		cooldowns: cooldown.NewProvider(cooldown.NewFixedWindow()),
		executor:  execution.Inline{},
	}

	for _, opt := range opts {
		opt(d)
	}

	d.gate = NewPermissionGate(d.owners, d.resolver)

	return d
}

func (d *Dispatcher) Commands() port.CommandRegistry {
	return d.commands
}

// Parsers returns the parser registry so custom types can be added before registering commands.
func (d *Dispatcher) Parsers() *parser.Registry {
	return d.parsers
}

func (d *Dispatcher) Register(def domain.CommandDefinition) error {
	return d.RegisterAll(def)
}

// RegisterAll registers all definitions or none. Every parameter type needs a parser.
func (d *Dispatcher) RegisterAll(defs ...domain.CommandDefinition) error {
	for _, def := range defs {
		for _, param := range def.Parameters {
			if !d.parsers.Has(param.Type) {
				return fmt.Errorf("%w: %s parameter %q has type %q", domain.ErrUnknownType, def.Name, param.Name, param.Type)
			}
		}
	}

	return d.commands.RegisterAll(defs...)
}

// Dispatch handles one message. Messages without a prefix, with an unknown command or from an ignored author are
// dropped without notifying adapters. Every other message produces exactly one adapter callback.
func (d *Dispatcher) Dispatch(ctx context.Context, message *domain.Message) domain.Result {
	res := domain.Result{State: domain.StateReceived}

	if d.ignoreBots && message.Author.Bot {
		res.Err = domain.ErrIgnoredAuthor
		return res
	}

	prefix, ok := domain.ResolvePrefix(message.Content, d.prefixes.Provide(message))
	if !ok {
		res.Err = domain.ErrNoPrefixMatch
		return res
	}
	res.State = domain.StatePrefixMatched

	inv := domain.NewInvocationContext(message, prefix)
	res.InvocationID = inv.ID

	label, rest := domain.SplitCommand(message.Content[len(prefix):])
	res.State = domain.StateTokenized

	def, ok := d.commands.Resolve(label)
	if !ok {
		log.Debug().Str("command", label).Msg("no handler for command")
		res.Err = domain.ErrUnknownCommand
		return res
	}
	res.State = domain.StateCommandResolved
	res.Command = def.Name

	tokens := domain.TokenizeWithOffsets(rest, def.ArgDelimiter())
	inv.Label = label
	inv.Command = def
	inv.RawArgs = rest
	inv.Args = domain.TokenTexts(tokens)

	l := log.With().
		Str("invocation", inv.ID.String()).
		Str("command", def.Name).
		Str("author", message.Author.ID).
		Str("platform", message.Platform).
		Logger()
	l.Debug().Strs("args", inv.Args).Msg("received command")

	var denied *domain.PermissionDenied
	if err := d.gate.Check(ctx, inv); errors.As(err, &denied) {
		l.Debug().Stringer("reason", denied.Reason).Msg("permission denied")
		d.notify(l, func(a port.EventAdapter) { a.OnPermissionDenied(ctx, inv, denied) })
		res.Err = denied
		return res
	}
	res.State = domain.StatePermissionChecked

	reservation, err := d.reserve(inv)
	if err != nil {
		active := &domain.CooldownActive{Key: domain.NewCooldownKey(def, message)}
		errors.As(err, &active)

		l.Debug().Dur("remaining", active.Remaining).Msg("command on cooldown")
		d.notify(l, func(a port.EventAdapter) { a.OnCooldown(ctx, inv, active) })
		res.Err = active
		return res
	}
	res.State = domain.StateCooldownChecked

	args, err := d.parsers.Bind(inv, tokens)
	if err != nil {
		reservation.Release()

		l.Debug().Err(err).Msg("failed to parse arguments")
		d.notify(l, func(a port.EventAdapter) { a.OnParseFailure(ctx, inv, err) })
		res.Err = err
		return res
	}
	res.State = domain.StateArgumentsBound

	execCtx := ctx
	if _, inline := d.executor.(execution.Inline); !inline {
		execCtx = context.WithoutCancel(ctx)
	}

	done := make(chan domain.Result, 1)
	res.State = domain.StateInvoking

	err = d.executor.Execute(func() {
		done <- d.invoke(execCtx, inv, args, l)
	})
	if err != nil {
		reservation.Release()

		failure := &domain.ExecutionFailure{Command: def.Name, Cause: err}
		l.Warn().Err(err).Msg("failed to schedule command")
		d.notify(l, func(a port.EventAdapter) { a.OnExecutionFailure(ctx, inv, failure) })
		res.State = domain.StateFailed
		res.Err = failure
		return res
	}
	reservation.Commit()

	select {
	case r := <-done:
		return r
	default:
		return res
	}
}

func (d *Dispatcher) reserve(inv *domain.InvocationContext) (port.Reservation, error) {
	def := inv.Command
	if !def.Cooldown.Enabled() || d.gate.IsOwner(inv.Author().ID) {
		return noopReservation{}, nil
	}

	return d.cooldowns.Tracker().Reserve(domain.NewCooldownKey(def, inv.Message), def.Cooldown)
}

func (d *Dispatcher) invoke(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments,
	l zerolog.Logger) domain.Result {
	res := domain.Result{Command: inv.Command.Name, InvocationID: inv.ID}

	start := time.Now()
	err := call(ctx, inv, args)
	elapsed := time.Since(start)

	if err != nil {
		failure := &domain.ExecutionFailure{Command: inv.Command.Name, Cause: err}
		l.Err(err).Dur("elapsed", elapsed).Msg("failed to respond to command")
		d.notify(l, func(a port.EventAdapter) { a.OnExecutionFailure(ctx, inv, failure) })

		res.State = domain.StateFailed
		res.Err = failure
		return res
	}

	l.Debug().Dur("elapsed", elapsed).Msg("command completed")
	d.notify(l, func(a port.EventAdapter) { a.OnCompleted(ctx, inv, elapsed) })

	res.State = domain.StateCompleted
	return res
}

func call(ctx context.Context, inv *domain.InvocationContext, args *domain.Arguments) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Bytes("stack", debug.Stack()).Msg("command handler panicked")
			err = fmt.Errorf("handler panicked: %v", rec)
		}
	}()

	return inv.Command.Handler(ctx, inv, args)
}

// notify calls every adapter. A panicking adapter does not stop the others.
func (d *Dispatcher) notify(l zerolog.Logger, fn func(a port.EventAdapter)) {
	for _, a := range d.adapters {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					l.Error().Interface("panic", rec).Msg("event adapter panicked")
				}
			}()

			fn(a)
		}()
	}
}

type noopReservation struct{}

func (noopReservation) Commit()  {}
func (noopReservation) Release() {}
