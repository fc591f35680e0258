package general

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

// FetchData GETs an arbitrary URL and shows the JSON response.
type FetchData struct {
	command.Base
	client *fetch.Client
}

func NewFetchData(deps *command.Deps) (command.Command, error) {
	return &FetchData{
		Base: command.Base{
			CommandName: "fetch_data",
			Desc:        "Fetches data from an API",
			Cat:         "general",
		},
		client: deps.Fetch,
	}, nil
}

func (c *FetchData) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	target := ic.Options().String("url")
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		command.SendError(ic, "Please provide a valid http(s) URL.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, target)
	if err != nil {
		command.SendError(ic, "Could not fetch that URL.")
		return nil
	}

	// Pretty-print when it is JSON, otherwise show as-is.
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
