package network

import (
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
)

// Whois queries the WHOIS protocol (port 43) starting at IANA and following
// one referral to the authoritative registry.
type Whois struct {
	command.Base
}

func NewWhois(_ *command.Deps) (command.Command, error) {
	return &Whois{
		Base: command.Base{
			CommandName: "whois",
			Desc:        "Look up WHOIS information for a domain",
			Cat:         "network",
		},
	}, nil
}

func (c *Whois) Execute(ic command.Interaction) error {
	command.Defer(ic, false)

	domain := strings.ToLower(strings.TrimSpace(ic.Options().String("domain")))
	if domain == "" {
		command.SendError(ic, "Please provide a domain name.")
		return nil
	}

	body, err := whoisQuery("whois.iana.org", domain)
	if err != nil {
		command.SendError(ic, fmt.Sprintf("WHOIS lookup for **%s** failed.", domain))
		return nil
	}
	if referral := whoisReferral(body); referral != "" {
		if deeper, err := whoisQuery(referral, domain); err == nil {
			body = deeper
		}
	}

	text := strings.TrimSpace(body)
	if text == "" {
		command.SendError(ic, fmt.Sprintf("No WHOIS data found for **%s**.", domain))
		return nil
	}
	if len(text) > 3900 {
		text = text[:3900] + "\n..."
	}

	command.Send(ic, &command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       "WHOIS: " + domain,
			Description: "```\n" + text + "\n```",
			Color:       0x95a5a6,
		}},
	}, false)
	return nil
}

func whoisQuery(server, domain string) (string, error) {
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(server, "43"), 10*time.Second)
	if err != nil {
		return "", err
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(15 * time.Second))

	if _, err := fmt.Fprintf(conn, "%s\r\n", domain); err != nil {
		return "", err
	}
	raw, err := io.ReadAll(io.LimitReader(conn, 64<<10))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// whoisReferral pulls the registry server out of an IANA response.
func whoisReferral(body string) string {
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "whois", "refer":
			return strings.TrimSpace(value)
		}
	}
	return ""
}
