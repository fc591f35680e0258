package discord

import (
	"errors"
	"slices"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"aurora/internal/config"
)

// errCodeEntryPoint is Discord's error for a bulk overwrite that would drop
// an Entry Point command the application still requires.
const errCodeEntryPoint = 50240

// registerGlobalCommands publishes the merged global definition set with one
// bulk overwrite. Failures are logged, never fatal: the bot still serves
// whatever Discord already has.
func registerGlobalCommands(s Session, appID string, defs config.Definitions) {
	existing, err := s.ApplicationCommands(appID, "")
	if err != nil {
		log.Warn().Err(err).Msg("could not fetch existing commands, entry-point preservation skipped")
		existing = nil
	}

	merged := mergeGlobalCommands(defs, existing)
	if _, err := s.ApplicationCommandBulkOverwrite(appID, "", merged); err != nil {
		var restErr *discordgo.RESTError
		if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == errCodeEntryPoint {
			log.Error().Err(err).Msg("bulk overwrite rejected: the application has an Entry Point command that must be kept; add it to the definitions or disable the activity entry point")
			return
		}
		log.Error().Err(err).Msg("failed to register global commands")
		return
	}
	log.Info().Int("count", len(merged)).Msg("registered global commands")
}

// registerGuildCommands publishes guild-scoped definitions to one guild.
func registerGuildCommands(s Session, appID, guildID string, defs []*discordgo.ApplicationCommand) {
	if len(defs) == 0 {
		return
	}
	if _, err := s.ApplicationCommandBulkOverwrite(appID, guildID, defs); err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to register guild commands")
		return
	}
	log.Info().Str("guild", guildID).Int("count", len(defs)).Msg("registered guild commands")
}

// mergeGlobalCommands combines the chat, user-context and message-context
// definitions and preserves any remote entry-point command a definition does
// not already cover. On a name collision the first writer wins.
func mergeGlobalCommands(defs config.Definitions, existing []*discordgo.ApplicationCommand) []*discordgo.ApplicationCommand {
	var merged []*discordgo.ApplicationCommand
	seen := make(map[string]bool)

	add := func(list []*discordgo.ApplicationCommand, scope string) {
		for _, cmd := range list {
			if seen[cmd.Name] {
				log.Warn().Str("command", cmd.Name).Str("scope", scope).Msg("duplicate command definition, keeping first")
				continue
			}
			seen[cmd.Name] = true
			merged = append(merged, cmd)
		}
	}

	add(defs.Global, "global")
	add(defs.User, "user")
	add(defs.Message, "message")

	for _, cmd := range existing {
		if !isEntryPoint(cmd) {
			continue
		}
		if seen[cmd.Name] {
			log.Warn().Str("command", cmd.Name).Msg("remote entry-point command shadowed by a static definition")
			continue
		}
		seen[cmd.Name] = true
		merged = append(merged, cmd)
		log.Info().Str("command", cmd.Name).Msg("preserving remote entry-point command")
	}
	return merged
}

// isEntryPoint reports whether a remote command carries the user-install
// integration marker, which is what a bulk overwrite must not drop.
func isEntryPoint(cmd *discordgo.ApplicationCommand) bool {
	return cmd.IntegrationTypes != nil &&
		slices.Contains(*cmd.IntegrationTypes, discordgo.ApplicationIntegrationUserInstall)
}
