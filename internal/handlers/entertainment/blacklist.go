// Package entertainment holds the blacklist commands.
package entertainment

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/blacklist"
	"aurora/internal/command"
)

// Blacklist lists the current gulag members.
type Blacklist struct {
	command.Base
	blacklist *blacklist.Service
}

func NewBlacklist(deps *command.Deps) (command.Command, error) {
	return &Blacklist{
		Base: command.Base{
			CommandName: "blacklist",
			Desc:        "Lists all blacklisted users",
			Cat:         "entertainment",
		},
		blacklist: deps.Blacklist,
	}, nil
}

func (c *Blacklist) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	ids, err := c.blacklist.List()
	if err != nil {
		command.SendError(ic, "Could not read the gulag.")
		return nil
	}
	if len(ids) == 0 {
		command.SendError(ic, "The gulag is empty.")
		return nil
	}

	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "The Gulag",
			Description: strings.Join(mentions, "\n"),
			Color:       0xff0000,
		}},
	}, false)
	return nil
}
