package discord

import (
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"aurora/internal/blacklist"
	"aurora/internal/command"
	"aurora/internal/handlers/tools"
	"aurora/internal/ratelimit"
	"aurora/pkg/fetch"
)

// blacklistExempt names the chat commands blacklisted users may still run,
// so the owner can manage the list from anywhere.
var blacklistExempt = map[string]bool{
	"gulag": true,
}

// gifPresets maps the message-context menu entries onto gif handler options.
var gifPresets = map[string]command.MapOptions{
	"Convert to GIF":               {},
	"Convert to GIF (HQ)":          {Bools: map[string]bool{"hq": true}},
	"Convert to GIF (rename only)": {Bools: map[string]bool{"rename-only": true}},
}

// Dispatcher routes every inbound interaction to its handler: modal
// submissions, chat commands, and the fixed user/message context behaviors.
type Dispatcher struct {
	registry  *command.Registry
	limiter   *ratelimit.Limiter
	blacklist *blacklist.Service
	fetch     *fetch.Client
}

func NewDispatcher(registry *command.Registry, limiter *ratelimit.Limiter, bl *blacklist.Service, fc *fetch.Client) *Dispatcher {
	return &Dispatcher{registry: registry, limiter: limiter, blacklist: bl, fetch: fc}
}

// Handle is the single entry point for InteractionCreate events. Whatever a
// handler does, the user gets at most one generic error message and the
// process stays up.
func (d *Dispatcher) Handle(s Session, e *discordgo.InteractionCreate) {
	ic := newLiveInteraction(s, e, "", command.MapOptions{})

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("command", ic.name).Msg("handler panicked")
			d.sendGenericError(ic)
		}
	}()

	var err error
	switch e.Type {
	case discordgo.InteractionModalSubmit:
		err = d.handleModal(ic, e.ModalSubmitData())
	case discordgo.InteractionApplicationCommand:
		data := e.ApplicationCommandData()
		ic.name = data.Name
		switch data.CommandType {
		case discordgo.UserApplicationCommand:
			err = d.handleUserContext(ic, data)
		case discordgo.MessageApplicationCommand:
			err = d.handleMessageContext(ic, data)
		default:
			err = d.handleChat(ic, data)
		}
	default:
		return
	}

	if err != nil {
		log.Error().Err(err).Str("command", ic.name).Msg("handler failed")
		d.sendGenericError(ic)
	}
}

// sendGenericError makes the one last-resort attempt to tell the user
// something went wrong. Its own failure is logged and swallowed.
func (d *Dispatcher) sendGenericError(ic *liveInteraction) {
	resp := &command.Response{Content: "❌ An error occurred while executing this command.", IsError: true}
	var err error
	if ic.Deferred() || ic.Replied() {
		err = ic.EditReply(resp)
	} else {
		err = ic.Reply(resp, true)
	}
	if err != nil {
		log.Error().Err(err).Str("command", ic.name).Msg("failed to deliver error message")
	}
}

func (d *Dispatcher) handleChat(ic *liveInteraction, data discordgo.ApplicationCommandInteractionData) error {
	ic.opts = newLiveOptions(data)

	if !blacklistExempt[data.Name] && d.blacklist.IsBlacklisted(ic.UserID()) {
		return ic.Reply(&command.Response{Content: "You are blacklisted from using this bot."}, true)
	}

	cmd, ok := d.registry.Get(data.Name)
	if !ok {
		return ic.Reply(&command.Response{
			Content: fmt.Sprintf("Command '%s' is not implemented yet.", data.Name),
		}, true)
	}

	if res := d.limiter.Check(ic.UserID(), data.Name, cmd.Cooldown()); res.Limited {
		return ic.Reply(&command.Response{
			Content: fmt.Sprintf("Please wait %s more seconds before using this command again.", res.Remaining),
		}, true)
	}

	log.Info().Str("command", data.Name).Str("user", ic.Username()).Msg("executing command")
	return cmd.Execute(ic)
}

func (d *Dispatcher) handleModal(ic *liveInteraction, data discordgo.ModalSubmitInteractionData) error {
	if !strings.HasPrefix(data.CustomID, tools.RenameModalID) {
		log.Warn().Str("custom_id", data.CustomID).Msg("unknown modal submission")
		return nil
	}
	ic.name = "rename"
	return tools.CompleteRename(ic, d.fetch, modalInputValue(data, tools.RenameInputID))
}

// modalInputValue digs the named text input out of the modal's component
// tree.
func modalInputValue(data discordgo.ModalSubmitInteractionData, inputID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if ok && input.CustomID == inputID {
				return input.Value
			}
		}
	}
	return ""
}

// handleUserContext serves the fixed "User Info" profile embed.
func (d *Dispatcher) handleUserContext(ic *liveInteraction, data discordgo.ApplicationCommandInteractionData) error {
	if data.Resolved == nil {
		return fmt.Errorf("user context %q: no resolved data", data.Name)
	}
	target := data.Resolved.Users[data.TargetID]
	if target == nil {
		return fmt.Errorf("user context %q: target %s not resolved", data.Name, data.TargetID)
	}

	created := "unknown"
	if ts, err := discordgo.SnowflakeTimestamp(target.ID); err == nil {
		created = ts.UTC().Format("2006-01-02 15:04 UTC")
	}

	name := target.Username
	if target.GlobalName != "" {
		name = fmt.Sprintf("%s (%s)", target.GlobalName, target.Username)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "ID", Value: target.ID, Inline: true},
		{Name: "Created", Value: created, Inline: true},
	}
	if target.Bot {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Bot", Value: "Yes", Inline: true})
	}

	return ic.Reply(&command.Response{
		Embeds: []*discordgo.MessageEmbed{{
			Title:     name,
			Color:     0x7289da,
			Fields:    fields,
			Thumbnail: &discordgo.MessageEmbedThumbnail{URL: target.AvatarURL("256")},
		}},
	}, true)
}

// handleMessageContext runs the gif handler over every attachment of the
// target message and reports one aggregated result.
func (d *Dispatcher) handleMessageContext(ic *liveInteraction, data discordgo.ApplicationCommandInteractionData) error {
	preset, ok := gifPresets[data.Name]
	if !ok {
		return ic.Reply(&command.Response{
			Content: fmt.Sprintf("Command '%s' is not implemented yet.", data.Name),
		}, true)
	}

	cmd, ok := d.registry.Get("gif")
	if !ok {
		return fmt.Errorf("gif handler not loaded")
	}

	if data.Resolved == nil || data.Resolved.Messages[data.TargetID] == nil {
		return ic.Reply(&command.Response{Content: "❌ Could not read the target message.", IsError: true}, true)
	}
	attachments := data.Resolved.Messages[data.TargetID].Attachments
	if len(attachments) == 0 {
		return ic.Reply(&command.Response{Content: "❌ That message has no attachments.", IsError: true}, true)
	}

	if err := ic.DeferReply(false); err != nil {
		return err
	}

	converted := 0
	var failures []string
	var files []*discordgo.File
	var batches []*command.BatchInteraction
	for _, att := range attachments {
		opts := command.MapOptions{
			Sub:         preset.Sub,
			Bools:       preset.Bools,
			Attachments: map[string]*discordgo.MessageAttachment{"file": att},
		}
		batch := command.NewBatchInteraction(ic.UserID(), "gif", opts)
		batches = append(batches, batch)
		if err := cmd.Execute(batch); err != nil || batch.Failed() {
			reason := "conversion failed"
			if last := batch.Last(); last != nil && last.Content != "" {
				reason = strings.TrimPrefix(last.Content, "❌ ")
			}
			failures = append(failures, fmt.Sprintf("- **%s**: %s", att.Filename, reason))
			continue
		}
		converted++
		files = append(files, batch.Last().Files...)
	}

	summary := fmt.Sprintf("Converted %d/%d attachments", converted, len(attachments))
	if len(failures) > 0 {
		summary += "\n" + strings.Join(failures, "\n")
	}
	editErr := ic.EditReply(&command.Response{Content: summary, Files: files})

	// The edit has consumed the file readers. Close them, then remove the
	// scratch dirs each batch parked for this run.
	for _, f := range files {
		if c, ok := f.Reader.(io.Closer); ok {
			c.Close()
		}
	}
	for _, batch := range batches {
		batch.RunCleanup()
	}
	return editErr
}
