package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestCredentialsProduction(t *testing.T) {
	cfg := &Config{DiscordToken: "prod-token", ClientID: "prod-app"}
	token, appID, err := cfg.Credentials()
	require.NoError(t, err)
	require.Equal(t, "prod-token", token)
	require.Equal(t, "prod-app", appID)
}

func TestCredentialsDevMode(t *testing.T) {
	cfg := &Config{
		DiscordToken:    "prod-token",
		ClientID:        "prod-app",
		DevDiscordToken: "dev-token",
		DevClientID:     "dev-app",
		DevMode:         true,
	}
	token, appID, err := cfg.Credentials()
	require.NoError(t, err)
	require.Equal(t, "dev-token", token)
	require.Equal(t, "dev-app", appID)
}

func TestCredentialsDevModeIncomplete(t *testing.T) {
	// Dev mode without both dev values falls back to production.
	cfg := &Config{
		DiscordToken: "prod-token",
		ClientID:     "prod-app",
		DevMode:      true,
	}
	token, _, err := cfg.Credentials()
	require.NoError(t, err)
	require.Equal(t, "prod-token", token)
}

func TestCredentialsMissing(t *testing.T) {
	_, _, err := (&Config{}).Credentials()
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoadDefinitionsBuiltin(t *testing.T) {
	defs := LoadDefinitions("")
	require.NotEmpty(t, defs.Global)
	require.NotEmpty(t, defs.User)
	require.NotEmpty(t, defs.Message)

	for _, cmd := range defs.Global {
		require.Equal(t, discordgo.ChatApplicationCommand, cmd.Type, cmd.Name)
		require.NotNil(t, cmd.IntegrationTypes, cmd.Name)
	}
	for _, cmd := range defs.Message {
		require.Equal(t, discordgo.MessageApplicationCommand, cmd.Type, cmd.Name)
	}
}

func TestLoadDefinitionsUnreadable(t *testing.T) {
	defs := LoadDefinitions(filepath.Join(t.TempDir(), "nope.json"))
	require.Empty(t, defs.Global)
}

func TestLoadDefinitionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.json")
	raw := `{"global":[{"name":"custom","description":"d","type":1}]}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	defs := LoadDefinitions(path)
	require.Len(t, defs.Global, 1)
	require.Equal(t, "custom", defs.Global[0].Name)
}
