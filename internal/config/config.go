package config

import (
	"errors"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the environment-driven configuration. Production credentials are
// the default; development credentials are used only when DEV_MODE is set and
// both dev values are present.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	ClientID     string `env:"CLIENT_ID"`

	DevDiscordToken string `env:"DEV_DISCORD_TOKEN"`
	DevClientID     string `env:"DEV_CLIENT_ID"`
	DevMode         bool   `env:"DEV_MODE"`

	OwnerID          string `env:"OWNER_ID"`
	StartupChannelID string `env:"STARTUP_CHANNEL_ID"`

	BlacklistPath   string `env:"BLACKLIST_PATH" envDefault:"gulag.txt"`
	TempDir         string `env:"TEMP_DIR" envDefault:"temp"`
	DefinitionsPath string `env:"DEFINITIONS_PATH"`
	StatusURL       string `env:"STATUS_URL"`

	SourcegraphAPIKey string `env:"SOURCEGRAPH_API_KEY"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// New loads .env (if present) and parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using system environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrMissingCredentials is returned when neither credential set is complete.
var ErrMissingCredentials = errors.New("missing DISCORD_TOKEN or CLIENT_ID")

// Credentials selects the token and application id to use: development ones
// when DevMode is set and both are present, production otherwise.
func (c *Config) Credentials() (token, appID string, err error) {
	if c.DevMode && c.DevDiscordToken != "" && c.DevClientID != "" {
		return c.DevDiscordToken, c.DevClientID, nil
	}
	if c.DiscordToken == "" || c.ClientID == "" {
		return "", "", ErrMissingCredentials
	}
	return c.DiscordToken, c.ClientID, nil
}
