package discord

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aurora/internal/config"
)

func entryPointCommand(name string) *discordgo.ApplicationCommand {
	types := []discordgo.ApplicationIntegrationType{discordgo.ApplicationIntegrationUserInstall}
	return &discordgo.ApplicationCommand{Name: name, IntegrationTypes: &types}
}

func TestMergeGlobalCommandsStaticWins(t *testing.T) {
	defs := config.Definitions{
		Global: []*discordgo.ApplicationCommand{{Name: "foo", Description: "ours"}},
	}
	existing := []*discordgo.ApplicationCommand{
		entryPointCommand("foo"),
		entryPointCommand("bar"),
	}

	var logs bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&logs)
	defer func() { log.Logger = prev }()

	merged := mergeGlobalCommands(defs, existing)

	names := make(map[string]int)
	for _, cmd := range merged {
		names[cmd.Name]++
	}
	require.Equal(t, 1, names["foo"])
	require.Equal(t, 1, names["bar"])

	for _, cmd := range merged {
		if cmd.Name == "foo" {
			require.Equal(t, "ours", cmd.Description)
		}
	}

	// Dropping a remote entry point in favor of a static definition is
	// worth an operator-visible warning.
	require.Contains(t, logs.String(), "shadowed by a static definition")
	require.Contains(t, logs.String(), `"warn"`)
}

func TestMergeGlobalCommandsDropsPlainRemote(t *testing.T) {
	defs := config.Definitions{
		Global: []*discordgo.ApplicationCommand{{Name: "foo"}},
	}
	// A remote command without the user-install marker is not an entry
	// point and must not survive the overwrite.
	existing := []*discordgo.ApplicationCommand{{Name: "stale"}}

	merged := mergeGlobalCommands(defs, existing)
	require.Len(t, merged, 1)
	require.Equal(t, "foo", merged[0].Name)
}

func TestMergeGlobalCommandsScopeOrder(t *testing.T) {
	defs := config.Definitions{
		Global: []*discordgo.ApplicationCommand{{Name: "dup", Description: "global"}},
		User:   []*discordgo.ApplicationCommand{{Name: "dup", Description: "user"}, {Name: "User Info"}},
		Message: []*discordgo.ApplicationCommand{
			{Name: "Convert to GIF"},
		},
	}

	merged := mergeGlobalCommands(defs, nil)
	require.Len(t, merged, 3)
	require.Equal(t, "global", merged[0].Description)
}

func TestRegisterGlobalCommandsFetchFailure(t *testing.T) {
	defs := config.Definitions{
		Global: []*discordgo.ApplicationCommand{{Name: "foo"}},
	}

	s := &mockSession{}
	s.On("ApplicationCommands", "app", "").Return(nil, errors.New("api down"))
	s.On("ApplicationCommandBulkOverwrite", "app", "", mock.MatchedBy(func(cmds []*discordgo.ApplicationCommand) bool {
		return len(cmds) == 1 && cmds[0].Name == "foo"
	})).Return(nil, nil)

	// A failed fetch skips entry-point preservation but still publishes.
	registerGlobalCommands(s, "app", defs)
	s.AssertExpectations(t)
}

func TestRegisterGuildCommandsEmpty(t *testing.T) {
	s := &mockSession{}
	registerGuildCommands(s, "app", "g1", nil)
	s.AssertNotCalled(t, "ApplicationCommandBulkOverwrite", mock.Anything, mock.Anything, mock.Anything)
}
