package network

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
)

// maxPorts bounds one invocation so the command cannot be used as a scanner.
const maxPorts = 10

// CheckPort probes a short list of TCP ports on a host.
type CheckPort struct {
	command.Base
}

func NewCheckPort(_ *command.Deps) (command.Command, error) {
	return &CheckPort{
		Base: command.Base{
			CommandName: "checkport",
			Desc:        "Check whether TCP ports are open on a host",
			Cat:         "network",
		},
	}, nil
}

func (c *CheckPort) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	target := ic.Options().String("target")
	if target == "" {
		command.SendError(ic, "Please provide a host or IP address.")
		return nil
	}

	ports, err := parsePorts(ic.Options().String("ports"))
	if err != nil {
		command.SendError(ic, err.Error())
		return nil
	}

	var lines []string
	open := 0
	for _, port := range ports {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(target, strconv.Itoa(port)), 3*time.Second)
		if err != nil {
			lines = append(lines, fmt.Sprintf("%5d  closed", port))
			continue
		}
		conn.Close()
		open++
		lines = append(lines, fmt.Sprintf("%5d  open", port))
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Port check: " + target,
			Description: "```\n" + strings.Join(lines, "\n") + "\n```",
			Color:       0x3498db,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("%d/%d open", open, len(ports)),
			},
		}},
	}, false)
	return nil
}

// parsePorts turns a comma-separated list into validated port numbers,
// defaulting to 80 and 443.
func parsePorts(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return []int{80, 443}, nil
	}

	var ports []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		port, err := strconv.Atoi(part)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid port %q", part)
		}
		ports = append(ports, port)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("no valid ports given")
	}
	if len(ports) > maxPorts {
		return nil, fmt.Errorf("too many ports, at most %d per check", maxPorts)
	}
	return ports, nil
}
