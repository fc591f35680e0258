package tools

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

// Translate uses the public Google Translate gtx endpoint. The response is a
// nested array, not an object, so it is decoded into []any and walked.
type Translate struct {
	command.Base
	client *fetch.Client
}

func NewTranslate(deps *command.Deps) (command.Command, error) {
	return &Translate{
		Base: command.Base{
			CommandName: "translate",
			Desc:        "Translate text to another language",
			Cat:         "tools",
		},
		client: deps.Fetch,
	}, nil
}

func (c *Translate) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	text := ic.Options().String("text")
	target := strings.ToLower(strings.TrimSpace(ic.Options().String("to")))
	if text == "" || target == "" {
		command.SendError(ic, "Please provide text and a target language code.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf(
		"https://translate.googleapis.com/translate_a/single?client=gtx&sl=auto&tl=%s&dt=t&q=%s",
		url.QueryEscape(target), url.QueryEscape(text))

	var payload []any
	if err := c.client.JSON(ctx, endpoint, &payload); err != nil {
		command.SendError(ic, "Translation failed.")
		return nil
	}

	translated, detected := parseTranslation(payload)
	if translated == "" {
		command.SendError(ic, "Translation failed.")
		return nil
	}
	if len(translated) > 1900 {
		translated = translated[:1900] + "..."
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Translation",
			Description: translated,
			Color:       0x4285f4,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("%s → %s", detected, target),
			},
		}},
	}, false)
	return nil
}

// parseTranslation extracts the joined segments and detected source language
// from the gtx payload: [[["hola","hello",...],...],null,"en",...].
func parseTranslation(payload []any) (translated, detected string) {
	if len(payload) == 0 {
		return "", ""
	}
	segments, ok := payload[0].([]any)
	if !ok {
		return "", ""
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			sb.WriteString(s)
		}
	}

	detected = "auto"
	if len(payload) > 2 {
		if s, ok := payload[2].(string); ok {
			detected = s
		}
	}
	return sb.String(), detected
}
