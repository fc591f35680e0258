package network

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
)

// CheckDNS resolves a domain through a chosen public resolver.
type CheckDNS struct {
	command.Base
}

func NewCheckDNS(_ *command.Deps) (command.Command, error) {
	return &CheckDNS{
		Base: command.Base{
			CommandName: "checkdns",
			Desc:        "Check if a domain resolves through a DNS provider",
			Cat:         "network",
		},
	}, nil
}

func (c *CheckDNS) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	domain := ic.Options().String("domain")
	if domain == "" {
		command.SendError(ic, "Please provide a domain name.")
		return nil
	}
	provider := ic.Options().String("provider")
	if provider == "" {
		provider = "1.1.1.1"
	}

	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			d := net.Dialer{Timeout: 5 * time.Second}
			return d.DialContext(ctx, network, net.JoinHostPort(provider, "53"))
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	addrs, err := resolver.LookupHost(ctx, domain)
	elapsed := time.Since(start)
	if err != nil {
		command.SendError(ic, fmt.Sprintf("**%s** did not resolve via %s.", domain, provider))
		return nil
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title: "DNS lookup: " + domain,
			Color: 0x2ecc71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Provider", Value: provider, Inline: true},
				{Name: "Time", Value: fmt.Sprintf("%d ms", elapsed.Milliseconds()), Inline: true},
				{Name: "Addresses", Value: "```\n" + strings.Join(addrs, "\n") + "\n```"},
			},
		}},
	}, false)
	return nil
}
