package general

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"aurora/internal/command"
	"aurora/pkg/fetch"
)

const (
	codyEndpoint = "https://sourcegraph.com/.api/completions/stream"

	// maxCodyQuestion is the upstream limit on prompt length.
	maxCodyQuestion = 1999
)

// Cody forwards a question to Sourcegraph's Cody completion API.
type Cody struct {
	command.Base
	client *fetch.Client
	apiKey string
}

func NewCody(deps *command.Deps) (command.Command, error) {
	return &Cody{
		Base: command.Base{
			CommandName: "cody",
			Desc:        "Ask Cody (Sourcegraph AI) a programming question",
			Cat:         "general",
		},
		client: deps.Fetch,
		apiKey: deps.Config.SourcegraphAPIKey,
	}, nil
}

func (c *Cody) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	if c.apiKey == "" {
		command.SendError(ic, "Sourcegraph API key not configured. Please add SOURCEGRAPH_API_KEY to your environment variables.")
		return nil
	}

	question := ic.Options().String("question")
	if len(question) > maxCodyQuestion {
		command.SendError(ic, fmt.Sprintf("Your question is too long, the limit is %d characters.", maxCodyQuestion))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	payload := map[string]any{
		"messages":          []map[string]string{{"speaker": "human", "text": question}},
		"temperature":       0.3,
		"maxTokensToSample": 2000,
		"topK":              50,
		"topP":              0.95,
	}
	raw, err := c.client.PostJSON(ctx, codyEndpoint, payload, map[string]string{
		"Authorization": "token " + c.apiKey,
	})
	if err != nil {
		log.Error().Err(err).Msg("cody request failed")
		command.SendError(ic, "Sorry, I couldn't get an answer from Cody. Please try again later.")
		return nil
	}

	answer := parseCodyStream(string(raw))
	if answer == "" {
		answer = "No response received from Cody."
	}

	full := fmt.Sprintf("**Question:** %s\n\n**Cody's Answer:**\n%s", question, answer)
	if len(full) > 1900 {
		cut := 1900 - len(question) - 50
		if cut < 0 {
			cut = 0
		}
		answer = answer[:cut] + "...\n(Response truncated due to Discord's character limit)"
		full = fmt.Sprintf("**Question:** %s\n\n**Cody's Answer:**\n%s", question, answer)
	}

	command.Send(ic, &command.Response{Content: full}, false)
	return nil
}

// parseCodyStream extracts the final completion from a server-sent event
// stream. Each event is a "event: <type>" line followed by a "data: <json>"
// line; completion events carry the accumulated answer, so the last one wins.
func parseCodyStream(stream string) string {
	var completion string
	for _, event := range strings.Split(stream, "\n\n") {
		lines := strings.Split(strings.TrimSpace(event), "\n")
		if len(lines) < 2 || strings.TrimSpace(lines[0]) != "event: completion" {
			continue
		}
		data, ok := strings.CutPrefix(strings.TrimSpace(lines[1]), "data: ")
		if !ok {
			continue
		}
		var payload struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			continue
		}
		if payload.Completion != "" {
			completion = payload.Completion
		}
	}
	return completion
}
