// Package general holds handlers about the bot process itself.
package general

import (
	"fmt"
	"runtime"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/internal/version"
)

// Info shows what the bot is and how it was built.
type Info struct {
	command.Base
	ownerID string
}

func NewInfo(deps *command.Deps) (command.Command, error) {
	return &Info{
		Base: command.Base{
			CommandName: "info",
			Desc:        "Display information about the bot",
			Cat:         "general",
		},
		ownerID: deps.Config.OwnerID,
	}, nil
}

func (c *Info) Execute(ic command.Interaction) error {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Version", Value: version.Version, Inline: true},
		{Name: "Built", Value: version.BuildDate, Inline: true},
		{Name: "Runtime", Value: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH), Inline: true},
	}
	if c.ownerID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Owner", Value: "<@" + c.ownerID + ">", Inline: true,
		})
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       version.AppName,
			Description: "A multi-purpose utility bot. Use it anywhere once installed on your account.",
			Color:       0x7289da,
			Fields:      fields,
		}},
	}, false)
	return nil
}
