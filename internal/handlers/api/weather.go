// Package api holds handlers that proxy public JSON APIs.
package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

type wttrReport struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		FeelsLikeC  string `json:"FeelsLikeC"`
		Humidity    string `json:"humidity"`
		WindspeedKm string `json:"windspeedKmph"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
	NearestArea []struct {
		AreaName []struct {
			Value string `json:"value"`
		} `json:"areaName"`
		Country []struct {
			Value string `json:"value"`
		} `json:"country"`
	} `json:"nearest_area"`
}

// Weather reports current conditions for a location via wttr.in.
type Weather struct {
	command.Base
	client *fetch.Client
}

func NewWeather(deps *command.Deps) (command.Command, error) {
	return &Weather{
		Base: command.Base{
			CommandName: "weather",
			Desc:        "Get current weather for a location",
			Cat:         "api",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Weather) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	location := ic.Options().String("location")
	if location == "" {
		command.SendError(ic, "Please provide a location.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	var report wttrReport
	endpoint := fmt.Sprintf("https://wttr.in/%s?format=j1", url.PathEscape(location))
	if err := c.client.JSON(ctx, endpoint, &report); err != nil {
		command.SendError(ic, fmt.Sprintf("Could not fetch weather for **%s**.", location))
		return nil
	}
	if len(report.CurrentCondition) == 0 {
		command.SendError(ic, fmt.Sprintf("No weather data found for **%s**.", location))
		return nil
	}

	cur := report.CurrentCondition[0]
	desc := ""
	if len(cur.WeatherDesc) > 0 {
		desc = cur.WeatherDesc[0].Value
	}

	place := location
	if len(report.NearestArea) > 0 && len(report.NearestArea[0].AreaName) > 0 {
		place = report.NearestArea[0].AreaName[0].Value
		if len(report.NearestArea[0].Country) > 0 {
			place += ", " + report.NearestArea[0].Country[0].Value
		}
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title: "Weather in " + place,
			Color: 0x3498db,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Condition", Value: desc, Inline: true},
				{Name: "Temperature", Value: cur.TempC + "°C", Inline: true},
				{Name: "Feels Like", Value: cur.FeelsLikeC + "°C", Inline: true},
				{Name: "Humidity", Value: cur.Humidity + "%", Inline: true},
				{Name: "Wind", Value: cur.WindspeedKm + " km/h", Inline: true},
			},
		}},
	}, false)
	return nil
}
