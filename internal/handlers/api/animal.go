package api

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// Animal posts a random animal image with a fact.
type Animal struct {
	command.Base
	client *fetch.Client
}

func NewAnimal(deps *command.Deps) (command.Command, error) {
	return &Animal{
		Base: command.Base{
			CommandName: "animal",
			Desc:        "Get a random animal image",
			Cat:         "api",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Animal) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	kind := ic.Options().String("type")
	if kind == "" {
		command.SendError(ic, "Please pick an animal type.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var payload struct {
		Image string `json:"image"`
		Fact  string `json:"fact"`
	}
	endpoint := "https://some-random-api.com/animal/" + kind
	if err := c.client.JSON(ctx, endpoint, &payload); err != nil || payload.Image == "" {
		command.SendError(ic, fmt.Sprintf("Could not fetch a %s right now.", kind))
		return nil
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Random " + kind,
			Description: payload.Fact,
			Color:       0x2ecc71,
			Image:       &discordgo.MessageEmbedImage{URL: payload.Image},
		}},
	}, false)
	return nil
}
