package api

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// Anime posts reaction GIFs from waifu.pics, or a quote from animechan.
type Anime struct {
	command.Base
	client *fetch.Client
}

func NewAnime(deps *command.Deps) (command.Command, error) {
	return &Anime{
		Base: command.Base{
			CommandName: "anime",
			Desc:        "Get anime-related content",
			Cat:         "api",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Anime) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	kind := ic.Options().String("type")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if kind == "quote" {
		var quote struct {
			Anime     string `json:"anime"`
			Character string `json:"character"`
			Quote     string `json:"quote"`
		}
		if err := c.client.JSON(ctx, "https://animechan.io/api/v1/quotes/random", &quote); err != nil || quote.Quote == "" {
			command.SendError(ic, "Could not fetch a quote right now.")
			return nil
		}
		command.Send(ic, &command.Response{
			Embeds: []*discordgo.MessageEmbed{{
				Description: fmt.Sprintf("“%s”", quote.Quote),
				Color:       0x9b59b6,
				Footer:      &discordgo.MessageEmbedFooter{Text: quote.Character + ", " + quote.Anime},
			}},
		}, false)
		return nil
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := c.client.JSON(ctx, "https://api.waifu.pics/sfw/"+kind, &payload); err != nil || payload.URL == "" {
		command.SendError(ic, "Could not fetch anime content right now.")
		return nil
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Color: 0x9b59b6,
			Image: &discordgo.MessageEmbedImage{URL: payload.URL},
		}},
	}, false)
	return nil
}
