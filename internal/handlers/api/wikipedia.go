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

// Wikipedia fetches a page summary in the chosen language.
type Wikipedia struct {
	command.Base
	client *fetch.Client
}

func NewWikipedia(deps *command.Deps) (command.Command, error) {
	return &Wikipedia{
		Base: command.Base{
			CommandName: "wikipedia",
			Desc:        "Look up a topic on Wikipedia",
			Cat:         "api",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Wikipedia) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	query := ic.Options().String("query")
	if query == "" {
		command.SendError(ic, "Please provide a topic to look up.")
		return nil
	}
	lang := ic.Options().String("language")
	if lang == "" {
		lang = "en"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var summary struct {
		Title     string `json:"title"`
		Extract   string `json:"extract"`
		Thumbnail struct {
			Source string `json:"source"`
		} `json:"thumbnail"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}

	title := strings.ReplaceAll(query, " ", "_")
	endpoint := fmt.Sprintf("https://%s.wikipedia.org/api/rest_v1/page/summary/%s", lang, url.PathEscape(title))
	if err := c.client.JSON(ctx, endpoint, &summary); err != nil || summary.Extract == "" {
		command.SendError(ic, fmt.Sprintf("No Wikipedia article found for **%s**.", query))
		return nil
	}

	extract := summary.Extract
	if len(extract) > 1500 {
		extract = extract[:1497] + "..."
	}

	embed := &discordgo.MessageEmbed{
		Title:       summary.Title,
		URL:         summary.ContentURLs.Desktop.Page,
		Description: extract,
		Color:       0xecf0f1,
	}
	if summary.Thumbnail.Source != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: summary.Thumbnail.Source}
	}

	command.Send(ic, &command.Response{Embeds: []*discordgo.MessageEmbed{embed}}, false)
	return nil
}
