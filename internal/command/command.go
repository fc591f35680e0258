// Package command defines the contract every command handler satisfies, the
// interaction-context abstraction the dispatcher hands to handlers, and the
// registry that owns the name-keyed handler map.
package command

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Command is implemented by every handler. Execute must leave exactly one of
// {reply, edit-reply} performed on every path and should contain its own
// failures; a returned error (or panic) is the dispatcher's last resort.
type Command interface {
	Name() string
	Description() string
	Category() string
	Cooldown() time.Duration
	Execute(ic Interaction) error
}

// Base carries the shared metadata; embed it and set the fields in the
// handler's constructor.
type Base struct {
	CommandName string
	Desc        string
	Cat         string
	CooldownDur time.Duration
}

func (b *Base) Name() string        { return b.CommandName }
func (b *Base) Description() string { return b.Desc }
func (b *Base) Category() string    { return b.Cat }

// Cooldown returns the per-user cooldown, defaulting to 2 seconds.
func (b *Base) Cooldown() time.Duration {
	if b.CooldownDur <= 0 {
		return 2 * time.Second
	}
	return b.CooldownDur
}

// WithCooldown overrides the default cooldown; returns the Base for chaining.
func (b *Base) WithCooldown(d time.Duration) *Base {
	b.CooldownDur = d
	return b
}

// Defer acknowledges the interaction if it has not been deferred or replied
// to yet. Safe to call more than once.
func Defer(ic Interaction, ephemeral bool) {
	if ic.Deferred() || ic.Replied() {
		return
	}
	if err := ic.DeferReply(ephemeral); err != nil {
		log.Error().Err(err).Str("command", ic.CommandName()).Msg("failed to defer reply")
	}
}

// Send delivers resp: an edit when the interaction was already deferred or
// replied to, a fresh reply otherwise. The ephemeral flag only applies to a
// fresh reply; edits cannot change visibility. Send failures are logged and
// swallowed so a broken response path never takes the process down.
func Send(ic Interaction, resp *Response, ephemeral bool) {
	var err error
	if ic.Deferred() || ic.Replied() {
		err = ic.EditReply(resp)
	} else {
		err = ic.Reply(resp, ephemeral)
	}
	if err != nil {
		log.Error().Err(err).Str("command", ic.CommandName()).Msg("failed to send response")
	}
}

// SendError delivers an error message with the visual error marker,
// ephemerally when it is the first reply.
func SendError(ic Interaction, msg string) {
	Send(ic, &Response{Content: "❌ " + msg, IsError: true}, true)
}
