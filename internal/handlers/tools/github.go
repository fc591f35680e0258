package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// GitHub shows a repository summary from the public GitHub API.
type GitHub struct {
	command.Base
	client *fetch.Client
}

func NewGitHub(deps *command.Deps) (command.Command, error) {
	return &GitHub{
		Base: command.Base{
			CommandName: "github",
			Desc:        "Show a GitHub repository summary",
			Cat:         "tools",
		},
		client: deps.Fetch,
	}, nil
}

func (c *GitHub) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	repo := strings.Trim(strings.TrimSpace(ic.Options().String("repository")), "/")
	if repo == "" || strings.Count(repo, "/") != 1 {
		command.SendError(ic, "Please provide a repository as owner/name.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var payload struct {
		FullName    string `json:"full_name"`
		Description string `json:"description"`
		HTMLURL     string `json:"html_url"`
		Language    string `json:"language"`
		License     struct {
			SPDXID string `json:"spdx_id"`
		} `json:"license"`
		Stars    int    `json:"stargazers_count"`
		Forks    int    `json:"forks_count"`
		Issues   int    `json:"open_issues_count"`
		Archived bool   `json:"archived"`
		PushedAt string `json:"pushed_at"`
		Owner    struct {
			AvatarURL string `json:"avatar_url"`
		} `json:"owner"`
	}
	if err := c.client.JSON(ctx, "https://api.github.com/repos/"+repo, &payload); err != nil {
		command.SendError(ic, fmt.Sprintf("Repository **%s** was not found.", repo))
		return nil
	}

	desc := payload.Description
	if desc == "" {
		desc = "*no description*"
	}
	if payload.Archived {
		desc += "\n\n⚠️ This repository is archived."
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Stars", Value: fmt.Sprintf("%d", payload.Stars), Inline: true},
		{Name: "Forks", Value: fmt.Sprintf("%d", payload.Forks), Inline: true},
		{Name: "Open Issues", Value: fmt.Sprintf("%d", payload.Issues), Inline: true},
	}
	if payload.Language != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Language", Value: payload.Language, Inline: true})
	}
	if payload.License.SPDXID != "" && payload.License.SPDXID != "NOASSERTION" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "License", Value: payload.License.SPDXID, Inline: true})
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       payload.FullName,
			URL:         payload.HTMLURL,
			Description: desc,
			Color:       0x24292e,
			Fields:      fields,
			Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: payload.Owner.AvatarURL},
			Footer:      &discordgo.MessageEmbedFooter{Text: "Last push: " + payload.PushedAt},
		}},
	}, false)
	return nil
}
