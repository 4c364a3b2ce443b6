package main

import (
	"context"
	"errors"
	"flight/internal/adapters/handler"
	"flight/internal/adapters/resolver"
	"flight/internal/adapters/sender"
	"flight/internal/app"
	"flight/internal/config"
	"flight/internal/core/domain"
	"flight/internal/logger"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "flight",
		Short:        "Prefix command bot for Discord and Telegram",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to the config file (default ./config.toml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Connect to the configured platform and handle commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath)
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and list the registered commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			a, err := app.New(cfg, app.Platform{Sender: discardSender{}})
			if err != nil {
				return err
			}
			defer a.Close()

			for _, name := range a.Dispatcher.Commands().ListCommands() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}

	rootCmd.AddCommand(runCmd, checkCmd)
	rootCmd.RunE = runCmd.RunE

	return rootCmd
}

func run(ctx context.Context, configPath string) error {
	log.Info().Msg("starting flight...")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	closer, err := logger.Setup(logger.Options{
		Level:      cfg.Bot.LogLevel,
		File:       cfg.Bot.LogFile,
		MaxSizeMB:  cfg.Bot.LogMaxSizeMB,
		MaxBackups: cfg.Bot.LogMaxBackups,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch cfg.Platform {
	case config.PlatformDiscord:
		return runDiscord(ctx, cfg)
	case config.PlatformTelegram:
		return runTelegram(ctx, cfg)
	default:
		return fmt.Errorf("unsupported platform %q", cfg.Platform)
	}
}

func runDiscord(ctx context.Context, cfg *config.Config) error {
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed initializing discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	a, err := app.New(cfg, app.Platform{
		Sender:      sender.NewDiscord(session),
		Permissions: resolver.NewDiscordPermissions(session),
		Identities:  resolver.NewDiscordIdentities(session.State),
		Describe:    resolver.DescribePermissions,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	session.AddHandler(handler.NewDiscord(ctx, a.Dispatcher).OnMessageCreate)

	if err := session.Open(); err != nil {
		return fmt.Errorf("failed opening discord gateway: %w", err)
	}
	defer session.Close()

	go a.Run(ctx)

	log.Info().Msg("bot listening")
	<-ctx.Done()
	log.Info().Msg("shutting down")

	return nil
}

func runTelegram(ctx context.Context, cfg *config.Config) error {
	b, err := bot.New(cfg.Telegram.BotToken, bot.WithDefaultHandler(noOpHandler))
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed fetching bot user: %w", err)
	}

	a, err := app.New(cfg, app.Platform{Sender: sender.NewTelegram(b)})
	if err != nil {
		return err
	}
	defer a.Close()

	telegramHandler := handler.NewTelegram(a.Dispatcher, me.Username)

	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, telegramHandler.Handle)
	b.RegisterHandler(bot.HandlerTypePhotoCaption, "", bot.MatchTypePrefix, telegramHandler.Handle)

	go a.Run(ctx)

	log.Info().Str("username", me.Username).Msg("bot listening")
	b.Start(ctx)

	if errors.Is(ctx.Err(), context.Canceled) {
		log.Info().Msg("shutting down")
	}

	return nil
}

func noOpHandler(_ context.Context, _ *bot.Bot, _ *models.Update) {}

type discardSender struct{}

func (discardSender) SendMessageReply(context.Context, *domain.Message, string) (string, error) {
	return "", nil
}
