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

// Currency converts an amount between currencies using open.er-api.com.
type Currency struct {
	command.Base
	client *fetch.Client
}

func NewCurrency(deps *command.Deps) (command.Command, error) {
	return &Currency{
		Base: command.Base{
			CommandName: "currency",
			Desc:        "Convert between currencies",
			Cat:         "tools",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Currency) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	amount := ic.Options().Number("amount")
	from := strings.ToUpper(strings.TrimSpace(ic.Options().String("from")))
	to := strings.ToUpper(strings.TrimSpace(ic.Options().String("to")))
	if amount <= 0 || from == "" || to == "" {
		command.SendError(ic, "Please provide a positive amount and two currency codes.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var payload struct {
		Result         string             `json:"result"`
		TimeLastUpdate string             `json:"time_last_update_utc"`
		Rates          map[string]float64 `json:"rates"`
	}
	if err := c.client.JSON(ctx, "https://open.er-api.com/v6/latest/"+from, &payload); err != nil || payload.Result != "success" {
		command.SendError(ic, fmt.Sprintf("Could not fetch rates for **%s**.", from))
		return nil
	}

	rate, ok := payload.Rates[to]
	if !ok {
		command.SendError(ic, fmt.Sprintf("Unknown currency code **%s**.", to))
		return nil
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Currency conversion",
			Description: fmt.Sprintf("**%.2f %s** = **%.2f %s**", amount, from, amount*rate, to),
			Color:       0xf1c40f,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("1 %s = %.4f %s · %s", from, rate, to, payload.TimeLastUpdate),
			},
		}},
	}, false)
	return nil
}
