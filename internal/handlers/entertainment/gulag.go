package entertainment

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/blacklist"
	"aurora/internal/command"
)

// Gulag adds and removes blacklist members. Both subcommands are gated on
// the configured owner id.
type Gulag struct {
	command.Base
	blacklist *blacklist.Service
	ownerID   string
}

func NewGulag(deps *command.Deps) (command.Command, error) {
	return &Gulag{
		Base: command.Base{
			CommandName: "gulag",
			Desc:        "Manage the gulag (blacklist)",
			Cat:         "entertainment",
		},
		blacklist: deps.Blacklist,
		ownerID:   deps.Config.OwnerID,
	}, nil
}

func (c *Gulag) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	if ic.UserID() != c.ownerID {
		command.SendError(ic, "Only the bot owner can use this command.")
		return nil
	}

	target := ic.Options().User("user")
	if target == nil {
		command.SendError(ic, "Please specify a user.")
		return nil
	}

	switch ic.Options().Subcommand() {
	case "add":
		return c.add(ic, target)
	case "remove":
		return c.remove(ic, target)
	default:
		command.SendError(ic, "Unknown subcommand.")
		return nil
	}
}

func (c *Gulag) add(ic command.Interaction, target *discordgo.User) error {
	added, err := c.blacklist.Add(target.ID)
	if err != nil {
		command.SendError(ic, "Could not update the gulag.")
		return nil
	}
	if !added {
		command.SendError(ic, "This user is already in the gulag.")
		return nil
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Gulag Transport",
			Description: fmt.Sprintf("<@%s> has been sent to The Gulag", target.ID),
			Color:       0xff0000,
		}},
	}, false)
	return nil
}

func (c *Gulag) remove(ic command.Interaction, target *discordgo.User) error {
	removed, err := c.blacklist.Remove(target.ID)
	if err != nil {
		command.SendError(ic, "Could not update the gulag.")
		return nil
	}
	if !removed {
		command.SendError(ic, "This user is not in the gulag.")
		return nil
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Gulag Release",
			Description: fmt.Sprintf("<@%s> has been released from The Gulag", target.ID),
			Color:       0x00ff00,
		}},
	}, false)
	return nil
}
