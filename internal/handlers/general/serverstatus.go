package general

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// ServerStatus proxies the configured host status endpoint.
type ServerStatus struct {
	command.Base
	client    *fetch.Client
	statusURL string
}

func NewServerStatus(deps *command.Deps) (command.Command, error) {
	return &ServerStatus{
		Base: command.Base{
			CommandName: "server_status",
			Desc:        "Shows the status of the host server",
			Cat:         "general",
		},
		client:    deps.Fetch,
		statusURL: deps.Config.StatusURL,
	}, nil
}

func (c *ServerStatus) Execute(ic command.Interaction) error {
	if c.statusURL == "" {
		command.SendError(ic, "No status endpoint is configured.")
		return nil
	}

	command.Defer(ic, false)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, c.statusURL)
	if err != nil {
		command.SendError(ic, "Could not reach the status endpoint.")
		return nil
	}

	if ic.Options().Bool("raw") {
		var pretty json.RawMessage = raw
		if indented, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			raw = indented
		}
		text := string(raw)
		if len(text) > 1900 {
			text = text[:1900] + "\n..."
		}
		command.Send(ic, &command.Response{Content: "```json\n" + text + "\n```"}, false)
		return nil
	}

	var status map[string]any
	if err := json.Unmarshal(raw, &status); err != nil {
		command.SendError(ic, "The status endpoint returned something unexpected.")
		return nil
	}

	var fields []*discordgo.MessageEmbedField
	for key, value := range status {
		switch v := value.(type) {
		case string, float64, bool:
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   key,
				Value:  fmt.Sprintf("%v", v),
				Inline: true,
			})
		}
		if len(fields) >= 12 {
			break
		}
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:  "Server status",
			Color:  0x2ecc71,
			Fields: fields,
		}},
	}, false)
	return nil
}
