package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
type Config struct {
	Settings Settings
	Redis    RedisConfig
	Relay    RelayConfig
	Discord  DiscordConfig
	World    WorldConfig
	DND5E    DND5EConfig
	Logging  LoggingConfig
}

// Settings are the world-level toggles consumed by the saves services.
type Settings struct {
	// HideSavingThrows suppresses the chat message a save roll would create.
	HideSavingThrows bool `env:"HIDE_SAVING_THROWS" envDefault:"false"`

	// IgnoreHealingSaves shows healing-eligible tokens as healed in the saves list.
	IgnoreHealingSaves bool `env:"IGNORE_HEALING_SAVES" envDefault:"true"`

	// ApplyHealing lets healing rolls bypass the save result for eligible tokens.
	ApplyHealing bool `env:"APPLY_HEALING" envDefault:"true"`

	// SkipMultipleRollConfirmation rolls batches without asking first.
	SkipMultipleRollConfirmation bool `env:"SKIP_MULTIPLE_ROLL_CONFIRMATION" envDefault:"false"`

	// ForceSkipDialog inverts the meaning of the shift modifier when rolling.
	ForceSkipDialog bool `env:"FORCE_SKIP_DIALOG" envDefault:"false"`
}

// DefaultSettings mirrors the envDefault values for code that builds a Config by hand.
func DefaultSettings() Settings {
	return Settings{
		IgnoreHealingSaves: true,
		ApplyHealing:       true,
	}
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL"`
}

// RelayTransport selects how relay messages travel between clients.
type RelayTransport string

const (
	RelayTransportMemory    RelayTransport = "memory"
	RelayTransportRedis     RelayTransport = "redis"
	RelayTransportWebsocket RelayTransport = "websocket"
)

// RelayConfig holds relay transport configuration
type RelayConfig struct {
	Transport RelayTransport `env:"RELAY_TRANSPORT" envDefault:"memory"`
	HubURL    string         `env:"RELAY_HUB_URL" envDefault:"ws://localhost:8089/relay"`
	HubAddr   string         `env:"RELAY_HUB_ADDR" envDefault:":8089"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token     string `env:"DISCORD_TOKEN"`
	AppID     string `env:"DISCORD_APP_ID"`
	GuildID   string `env:"DISCORD_GUILD_ID"`
	ChannelID string `env:"DISCORD_CHANNEL_ID"`
	// GMUserIDs are the Discord users who act as gamemasters.
	GMUserIDs []string `env:"DISCORD_GM_USER_IDS" envSeparator:","`
}

// WorldConfig points at the world seed and the scene commands refer to
type WorldConfig struct {
	File    string `env:"WORLD_FILE"`
	SceneID string `env:"WORLD_SCENE" envDefault:"table"`
}

// DND5EConfig holds D&D 5e API configuration
type DND5EConfig struct {
	BaseURL string `env:"DND5E_API_URL" envDefault:"https://www.dnd5eapi.co/api"`
}

// LoggingConfig selects zap's level and encoder
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	switch cfg.Relay.Transport {
	case RelayTransportMemory, RelayTransportWebsocket:
	case RelayTransportRedis:
		if cfg.Redis.URL == "" {
			return nil, fmt.Errorf("REDIS_URL is required for the redis relay transport")
		}
	default:
		return nil, fmt.Errorf("unknown RELAY_TRANSPORT %q", cfg.Relay.Transport)
	}

	return cfg, nil
}
