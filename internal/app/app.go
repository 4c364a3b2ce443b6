package app

import (
	"context"
	"flight/internal/adapters/listener"
	"flight/internal/config"
	"flight/internal/core/domain"
	"flight/internal/core/domain/command"
	"flight/internal/core/domain/commands"
	"flight/internal/core/port"
	"flight/internal/core/service"
	"flight/internal/core/service/cooldown"
	"flight/internal/core/service/execution"
	"flight/internal/core/service/parser"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Platform holds the adapters of one chat platform. Permissions and Identities may be nil when the platform has no
// such concept.
type Platform struct {
	Sender      port.TextSender
	Permissions port.PermissionResolver
	Identities  port.IdentityResolver
	// Describe names permission bits in replies.
	Describe func(domain.Permissions) string
}

type App struct {
	Dispatcher *service.Dispatcher
	tracker    cooldown.Tracker
	executor   execution.Strategy
}

// New builds a dispatcher from the configuration and registers the built-in commands.
func New(cfg *config.Config, platform Platform) (*App, error) {
	tracker, err := cooldown.New(cfg.Cooldown.Policy, cooldown.WithPruneInterval(cfg.Cooldown.PruneInterval))
	if err != nil {
		return nil, err
	}

	executor, err := execution.New(cfg.Execution.Strategy, cfg.Execution.Workers, cfg.Execution.QueueSize)
	if err != nil {
		return nil, err
	}

	opts := []service.Option{
		service.WithPrefixProvider(service.NewDefaultPrefixProvider(cfg.Dispatch.Prefixes,
			cfg.Dispatch.AllowMentionPrefix)),
		service.WithCooldownTracker(tracker),
		service.WithExecution(executor),
		service.WithOwnerIDs(cfg.Dispatch.OwnerIDs...),
		service.WithIgnoreBots(cfg.Dispatch.IgnoreBots),
		service.WithEventAdapters(listener.NewLogging(), listener.NewReply(platform.Sender, platform.Describe)),
	}
	if platform.Permissions != nil {
		opts = append(opts, service.WithPermissionResolver(platform.Permissions))
	}

	dispatcher := service.NewDispatcher(command.NewRegistry(), parser.NewDefaultRegistry(platform.Identities), opts...)

	if err := dispatcher.RegisterAll(builtins(cfg, platform.Sender, dispatcher.Commands())...); err != nil {
		executor.Close()
		return nil, fmt.Errorf("failed registering built-in commands: %w", err)
	}

	log.Info().
		Strs("commands", dispatcher.Commands().ListCommands()).
		Str("execution", cfg.Execution.Strategy).
		Str("cooldown", cfg.Cooldown.Policy).
		Msg("dispatcher ready")

	return &App{Dispatcher: dispatcher, tracker: tracker, executor: executor}, nil
}

func builtins(cfg *config.Config, sender port.TextSender, registry port.CommandRegistry) []domain.CommandDefinition {
	defs := []domain.CommandDefinition{
		commands.NewPingHandler(sender).Definition(),
		commands.NewEchoHandler(sender).Definition(),
		commands.NewRollHandler(sender).Definition(),
		commands.NewChooseHandler(sender).Definition(),
		commands.NewWhoisHandler(sender).Definition(),
		commands.NewAvatarHandler(sender).Definition(),
		commands.NewDebugHandler(sender, registry).Definition(),
	}

	if cfg.Help.Enabled {
		defs = append(defs, commands.NewHelpHandler(sender, registry, cfg.Help.ShowParameterTypes).Definition())
	}

	return defs
}

// Run prunes idle cooldown state until ctx is done.
func (a *App) Run(ctx context.Context) {
	a.tracker.Run(ctx)
}

// Close waits for running commands to finish.
func (a *App) Close() {
	a.executor.Close()
}
