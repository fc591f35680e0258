// Package tools holds utility handlers that compute locally or call small
// public endpoints.
package tools

import (
	"fmt"
	"strconv"
	"strings"

	"aurora/internal/command"
)

// Binary converts text to space-separated binary octets and back.
type Binary struct {
	command.Base
}

func NewBinary(_ *command.Deps) (command.Command, error) {
	return &Binary{
		Base: command.Base{
			CommandName: "binary",
			Desc:        "Translate between text and binary",
			Cat:         "tools",
		},
	}, nil
}

func (c *Binary) Execute(ic command.Interaction) error {
	text := ic.Options().String("text")
	if text == "" {
		command.SendError(ic, "Please provide text to convert.")
		return nil
	}

	mode := ic.Options().String("mode")
	if mode == "" {
		if looksBinary(text) {
			mode = "decode"
		} else {
			mode = "encode"
		}
	}

	var result string
	switch mode {
	case "encode":
		result = encodeBinary(text)
	case "decode":
		decoded, err := decodeBinary(text)
		if err != nil {
			command.SendError(ic, "That does not look like valid binary.")
			return nil
		}
		result = decoded
	default:
		command.SendError(ic, "Unknown mode.")
		return nil
	}

	if len(result) > 1900 {
		result = result[:1900] + "..."
	}
	command.Send(ic, &command.Response{Content: "```\n" + result + "\n```"}, false)
	return nil
}

func looksBinary(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '0' && r != '1' && r != ' ' {
			return false
		}
	}
	return true
}

func encodeBinary(text string) string {
	parts := make([]string, 0, len(text))
	for _, b := range []byte(text) {
		parts = append(parts, fmt.Sprintf("%08b", b))
	}
	return strings.Join(parts, " ")
}

func decodeBinary(text string) (string, error) {
	var sb strings.Builder
	for _, chunk := range strings.Fields(text) {
		value, err := strconv.ParseUint(chunk, 2, 8)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte(value))
	}
	return sb.String(), nil
}
