// Package network holds handlers that probe remote hosts directly.
package network

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
)

const pingAttempts = 4

// Ping measures TCP connect latency to a host. ICMP needs raw sockets, so a
// TCP dial against a well-known port stands in for it.
type Ping struct {
	command.Base
}

func NewPing(_ *command.Deps) (command.Command, error) {
	return &Ping{
		Base: command.Base{
			CommandName: "ping",
			Desc:        "Pings a remote server.",
			Cat:         "network",
		},
	}, nil
}

func (c *Ping) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	target := ic.Options().String("ip")
	if target == "" {
		command.SendError(ic, "Please provide an IP address or hostname.")
		return nil
	}

	host, port := target, "80"
	if h, p, err := net.SplitHostPort(target); err == nil {
		host, port = h, p
	}

	var lines []string
	var total time.Duration
	ok := 0
	for i := 0; i < pingAttempts; i++ {
		start := time.Now()
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 3*time.Second)
		if err != nil {
			lines = append(lines, fmt.Sprintf("seq %d: timeout", i+1))
			continue
		}
		conn.Close()
		rtt := time.Since(start)
		total += rtt
		ok++
		lines = append(lines, fmt.Sprintf("seq %d: %.1f ms", i+1, float64(rtt.Microseconds())/1000))
	}

	if ok == 0 {
		command.SendError(ic, fmt.Sprintf("**%s** did not respond on port %s.", host, port))
		return nil
	}

	avg := float64(total.Microseconds()) / float64(ok) / 1000
	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       fmt.Sprintf("Ping %s:%s", host, port),
			Description: "```\n" + strings.Join(lines, "\n") + "\n```",
			Color:       0x3498db,
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("%d/%d reachable, avg %.1f ms", ok, pingAttempts, avg),
			},
		}},
	}, false)
	return nil
}
