package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"aurora/internal/version"
)

// notifyStartup posts a startup embed to the configured channel and the
// owner's DM. Both deliveries are best-effort.
func (b *Bot) notifyStartup(guilds int) {
	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " is online",
		Description: fmt.Sprintf("Version %s, serving %d guilds.", version.Version, guilds),
		Color:       0x2ecc71,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if b.cfg.StartupChannelID != "" {
		b.sendChannelEmbed(b.cfg.StartupChannelID, embed)
	}
	b.sendOwnerEmbed(embed)
}

// notifyShutdown tells the owner the process is going down. Best-effort: the
// session may already be closing.
func (b *Bot) notifyShutdown() {
	b.sendOwnerEmbed(&discordgo.MessageEmbed{
		Title:     version.AppName + " is shutting down",
		Color:     0xe74c3c,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (b *Bot) notifyGuildJoin(g *discordgo.GuildCreate) {
	b.sendOwnerEmbed(&discordgo.MessageEmbed{
		Title:       "Joined a new guild",
		Description: fmt.Sprintf("**%s** (%s), %d members", g.Name, g.ID, g.MemberCount),
		Color:       0x3498db,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

func (b *Bot) sendOwnerEmbed(embed *discordgo.MessageEmbed) {
	if b.cfg.OwnerID == "" {
		return
	}
	channel, err := b.dg.UserChannelCreate(b.cfg.OwnerID)
	if err != nil {
		log.Warn().Err(err).Msg("could not open owner DM channel")
		return
	}
	b.sendChannelEmbed(channel.ID, embed)
}

func (b *Bot) sendChannelEmbed(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := b.dg.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Warn().Err(err).Str("channel", channelID).Msg("could not send notification")
	}
}
