package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// Urban looks up a term (or a random one) on Urban Dictionary.
type Urban struct {
	command.Base
	client *fetch.Client
}

func NewUrban(deps *command.Deps) (command.Command, error) {
	return &Urban{
		Base: command.Base{
			CommandName: "urban",
			Desc:        "Look up a term on Urban Dictionary",
			Cat:         "api",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Urban) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	term := ic.Options().String("term")
	random := ic.Options().Bool("random")
	if term == "" && !random {
		command.SendError(ic, "Provide a term or set random to true.")
		return nil
	}

	endpoint := "https://api.urbandictionary.com/v0/random"
	if !random {
		endpoint = "https://api.urbandictionary.com/v0/define?term=" + url.QueryEscape(term)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var payload struct {
		List []struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
			Example    string `json:"example"`
			ThumbsUp   int    `json:"thumbs_up"`
			Permalink  string `json:"permalink"`
		} `json:"list"`
	}
	if err := c.client.JSON(ctx, endpoint, &payload); err != nil {
		command.SendError(ic, "Could not reach Urban Dictionary.")
		return nil
	}
	if len(payload.List) == 0 {
		command.SendError(ic, fmt.Sprintf("No definition found for **%s**.", term))
		return nil
	}

	entry := payload.List[0]
	clean := func(s string) string {
		s = strings.ReplaceAll(s, "[", "")
		s = strings.ReplaceAll(s, "]", "")
		if len(s) > 1000 {
			s = s[:997] + "..."
		}
		return s
	}

	embed := &discordgo.MessageEmbed{
		Title:       entry.Word,
		URL:         entry.Permalink,
		Description: clean(entry.Definition),
		Color:       0xe67e22,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("👍 %d", entry.ThumbsUp)},
	}
	if entry.Example != "" {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Example", Value: clean(entry.Example)},
		}
	}

	command.Send(ic, &command.Response{Embeds: []*discordgo.MessageEmbed{embed}}, false)
	return nil
}
