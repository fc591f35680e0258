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

type mcReport struct {
	Online bool `json:"online"`
	IP     string
	Port   int `json:"port"`
	Motd   struct {
		Clean []string `json:"clean"`
	} `json:"motd"`
	Players struct {
		Online int `json:"online"`
		Max    int `json:"max"`
	} `json:"players"`
	Version any `json:"version"`
}

// MCStatus checks a Minecraft server through api.mcsrvstat.us.
type MCStatus struct {
	command.Base
	client *fetch.Client
}

func NewMCStatus(deps *command.Deps) (command.Command, error) {
	return &MCStatus{
		Base: command.Base{
			CommandName: "mcstatus",
			Desc:        "Check the status of a Minecraft server",
			Cat:         "api",
		},
		client: deps.Fetch,
	}, nil
}

func (c *MCStatus) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	server := ic.Options().String("server")
	if server == "" {
		command.SendError(ic, "Please provide a server address.")
		return nil
	}

	endpoint := "https://api.mcsrvstat.us/3/" + url.PathEscape(server)
	if ic.Options().Bool("bedrock") {
		endpoint = "https://api.mcsrvstat.us/bedrock/3/" + url.PathEscape(server)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var report mcReport
	if err := c.client.JSON(ctx, endpoint, &report); err != nil {
		command.SendError(ic, fmt.Sprintf("Could not query **%s**.", server))
		return nil
	}
	if !report.Online {
		command.Send(ic, &command.Response{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       server,
				Description: "Server is **offline** or unreachable.",
				Color:       0xe74c3c,
			}},
		}, false)
		return nil
	}

	// The /3/ API returns version as a string for Java and an object for
	// Bedrock; render whichever shape came back.
	version := ""
	switch v := report.Version.(type) {
	case string:
		version = v
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			version = name
		}
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Players", Value: fmt.Sprintf("%d / %d", report.Players.Online, report.Players.Max), Inline: true},
	}
	if version != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Version", Value: version, Inline: true})
	}
	if motd := strings.TrimSpace(strings.Join(report.Motd.Clean, "\n")); motd != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "MOTD", Value: motd})
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:  server,
			Color:  0x2ecc71,
			Fields: fields,
		}},
	}, false)
	return nil
}
