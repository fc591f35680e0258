package tools

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"aurora/internal/command"
)

func TestRenameSessionLifecycle(t *testing.T) {
	parkRename("u1", &command.PendingRename{
		Attachment: &discordgo.MessageAttachment{Filename: "a.png"},
		Created:    time.Now(),
	})

	session := takeRename("u1")
	require.NotNil(t, session)
	require.Equal(t, "a.png", session.Attachment.Filename)

	// A session may only be consumed once.
	require.Nil(t, takeRename("u1"))
}

func TestRenameSessionExpiry(t *testing.T) {
	parkRename("u2", &command.PendingRename{
		URL:     "https://example.com/a.png",
		Created: time.Now().Add(-command.RenameSessionTTL - time.Minute),
	})
	require.Nil(t, takeRename("u2"))
}

func TestRenameSessionOverwrite(t *testing.T) {
	parkRename("u3", &command.PendingRename{URL: "https://example.com/old.png", Created: time.Now()})
	parkRename("u3", &command.PendingRename{URL: "https://example.com/new.png", Created: time.Now()})

	session := takeRename("u3")
	require.NotNil(t, session)
	require.Equal(t, "https://example.com/new.png", session.URL)
}
