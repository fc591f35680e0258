package network

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
)

const defaultHops = 16

// Traceroute runs the system traceroute binary against a target. Slow by
// nature, so the reply is always deferred and carries a longer cooldown.
type Traceroute struct {
	command.Base
}

func NewTraceroute(_ *command.Deps) (command.Command, error) {
	c := &Traceroute{
		Base: command.Base{
			CommandName: "traceroute",
			Desc:        "Show network path to a destination",
			Cat:         "network",
		},
	}
	c.WithCooldown(30 * time.Second)
	return c, nil
}

func (c *Traceroute) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	target := ic.Options().String("target")
	if target == "" {
		command.SendError(ic, "Please provide an IP address or domain.")
		return nil
	}

	hops := ic.Options().Int("hops")
	if hops < 1 || hops > 32 {
		hops = defaultHops
	}

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	out, err := exec.CommandContext(ctx, "traceroute", "-m", strconv.FormatInt(hops, 10), "-w", "2", target).CombinedOutput()
	if err != nil && len(out) == 0 {
		command.SendError(ic, fmt.Sprintf("Traceroute to **%s** failed.", target))
		return nil
	}

	text := strings.TrimSpace(string(out))
	if len(text) > 3900 {
		text = text[:3900] + "\n..."
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "Traceroute to " + target,
			Description: "```\n" + text + "\n```",
			Color:       0x3498db,
		}},
	}, false)
	return nil
}
