package config

import (
	"errors"
	"flight/internal/core/service/cooldown"
	"flight/internal/core/service/execution"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"

	EnvPrefix = "FLIGHT"
)

type DiscordConfig struct {
	Token string `mapstructure:"token"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

type BotConfig struct {
	LogLevel string `mapstructure:"log_level"`
	// LogFile enables a rotated log file next to the console output.
	LogFile       string `mapstructure:"log_file"`
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `mapstructure:"log_max_backups"`
}

type DispatchConfig struct {
	Prefixes           []string `mapstructure:"prefixes"`
	AllowMentionPrefix bool     `mapstructure:"allow_mention_prefix"`
	IgnoreBots         bool     `mapstructure:"ignore_bots"`
	OwnerIDs           []string `mapstructure:"owner_ids"`
}

type ExecutionConfig struct {
	Strategy  string `mapstructure:"strategy"`
	Workers   int    `mapstructure:"workers"`
	QueueSize int    `mapstructure:"queue_size"`
}

type CooldownConfig struct {
	Policy        string        `mapstructure:"policy"`
	PruneInterval time.Duration `mapstructure:"prune_interval"`
}

type HelpConfig struct {
	Enabled            bool `mapstructure:"enabled"`
	ShowParameterTypes bool `mapstructure:"show_parameter_types"`
}

type Config struct {
	Platform  string          `mapstructure:"platform"`
	Discord   DiscordConfig   `mapstructure:"discord"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Bot       BotConfig       `mapstructure:"bot"`
	Dispatch  DispatchConfig  `mapstructure:"dispatch"`
	Execution ExecutionConfig `mapstructure:"execution"`
	Cooldown  CooldownConfig  `mapstructure:"cooldown"`
	Help      HelpConfig      `mapstructure:"help"`
}

// SetDefaults registers every key, which also makes each of them overridable from the environment.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("platform", PlatformDiscord)
	v.SetDefault("discord.token", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.log_file", "")
	v.SetDefault("bot.log_max_size_mb", 10)
	v.SetDefault("bot.log_max_backups", 3)
	v.SetDefault("dispatch.prefixes", []string{"!"})
	v.SetDefault("dispatch.allow_mention_prefix", true)
	v.SetDefault("dispatch.ignore_bots", true)
	v.SetDefault("dispatch.owner_ids", []string{})
	v.SetDefault("execution.strategy", execution.StrategyInline)
	v.SetDefault("execution.workers", execution.DefaultWorkers)
	v.SetDefault("execution.queue_size", execution.DefaultQueueSize)
	v.SetDefault("cooldown.policy", cooldown.PolicyFixed)
	v.SetDefault("cooldown.prune_interval", cooldown.DefaultPruneInterval)
	v.SetDefault("help.enabled", true)
	v.SetDefault("help.show_parameter_types", false)
}

// Load reads config.toml from path, or from the working directory when path is empty, and applies FLIGHT_*
// environment overrides. A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log.Info().Str("path", path).Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Warn().Msg("no config file found, using defaults and environment")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Normalize validates the configuration and fills in derived defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	switch cfg.Platform {
	case PlatformDiscord:
		if strings.TrimSpace(cfg.Discord.Token) == "" {
			return fmt.Errorf("discord.token is required when platform is 'discord'")
		}
	case PlatformTelegram:
		if strings.TrimSpace(cfg.Telegram.BotToken) == "" {
			return fmt.Errorf("telegram.bot_token is required when platform is 'telegram'")
		}
	default:
		return fmt.Errorf("invalid platform %q; allowed: discord, telegram", cfg.Platform)
	}

	cfg.Bot.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Bot.LogLevel))
	if cfg.Bot.LogLevel == "" {
		cfg.Bot.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(cfg.Bot.LogLevel); err != nil {
		return fmt.Errorf("invalid bot.log_level %q: %w", cfg.Bot.LogLevel, err)
	}

	prefixes := cfg.Dispatch.Prefixes[:0]
	for _, p := range cfg.Dispatch.Prefixes {
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	cfg.Dispatch.Prefixes = prefixes
	if len(prefixes) == 0 && !cfg.Dispatch.AllowMentionPrefix {
		return fmt.Errorf("dispatch.prefixes is empty and mention prefixes are disabled")
	}

	owners := cfg.Dispatch.OwnerIDs[:0]
	for _, id := range cfg.Dispatch.OwnerIDs {
		if id = strings.TrimSpace(id); id != "" {
			owners = append(owners, id)
		}
	}
	cfg.Dispatch.OwnerIDs = owners

	cfg.Execution.Strategy = strings.ToLower(strings.TrimSpace(cfg.Execution.Strategy))
	switch cfg.Execution.Strategy {
	case "":
		cfg.Execution.Strategy = execution.StrategyInline
	case execution.StrategyInline:
	case execution.StrategyPooled:
		if cfg.Execution.Workers <= 0 {
			return fmt.Errorf("execution.workers must be > 0 when execution.strategy is 'pooled'")
		}
		if cfg.Execution.QueueSize < 0 {
			return fmt.Errorf("execution.queue_size must be >= 0")
		}
	default:
		return fmt.Errorf("invalid execution.strategy %q; allowed: inline, pooled", cfg.Execution.Strategy)
	}

	cfg.Cooldown.Policy = strings.ToLower(strings.TrimSpace(cfg.Cooldown.Policy))
	switch cfg.Cooldown.Policy {
	case "":
		cfg.Cooldown.Policy = cooldown.PolicyFixed
	case cooldown.PolicyFixed, cooldown.PolicySliding, cooldown.PolicyBucket:
	default:
		return fmt.Errorf("invalid cooldown.policy %q; allowed: fixed, sliding, bucket", cfg.Cooldown.Policy)
	}
	if cfg.Cooldown.PruneInterval <= 0 {
		cfg.Cooldown.PruneInterval = cooldown.DefaultPruneInterval
	}

	return nil
}

// Token returns the credential of the configured platform.
func (c *Config) Token() string {
	if c.Platform == PlatformTelegram {
		return c.Telegram.BotToken
	}

	return c.Discord.Token
}
