package discord

import (
	"github.com/bwmarrin/discordgo"

	"aurora/internal/command"
)

// liveInteraction adapts one InteractionCreate event to command.Interaction.
// It tracks whether the interaction was deferred or replied to so the
// response helpers know to edit instead of replying twice.
type liveInteraction struct {
	s        Session
	event    *discordgo.InteractionCreate
	name     string
	opts     command.Options
	deferred bool
	replied  bool
}

func newLiveInteraction(s Session, e *discordgo.InteractionCreate, name string, opts command.Options) *liveInteraction {
	return &liveInteraction{s: s, event: e, name: name, opts: opts}
}

// user works for both guild interactions (Member set) and DMs (User set).
func (l *liveInteraction) user() *discordgo.User {
	if l.event.Member != nil {
		return l.event.Member.User
	}
	return l.event.User
}

func (l *liveInteraction) UserID() string {
	if u := l.user(); u != nil {
		return u.ID
	}
	return ""
}

func (l *liveInteraction) Username() string {
	if u := l.user(); u != nil {
		return u.Username
	}
	return ""
}

func (l *liveInteraction) GuildID() string     { return l.event.GuildID }
func (l *liveInteraction) CommandName() string { return l.name }
func (l *liveInteraction) Options() command.Options {
	return l.opts
}
func (l *liveInteraction) Deferred() bool { return l.deferred }
func (l *liveInteraction) Replied() bool  { return l.replied }
func (l *liveInteraction) Batch() bool    { return false }

// DeferCleanup is a no-op on live interactions: a live handler's response
// is delivered before it returns, so it removes its own scratch space.
func (l *liveInteraction) DeferCleanup(string) {}

func (l *liveInteraction) DeferReply(ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := l.s.InteractionRespond(l.event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		l.deferred = true
	}
	return err
}

func (l *liveInteraction) Reply(resp *command.Response, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{
		Content: resp.Content,
		Embeds:  resp.Embeds,
		Files:   resp.Files,
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := l.s.InteractionRespond(l.event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err == nil {
		l.replied = true
	}
	return err
}

func (l *liveInteraction) EditReply(resp *command.Response) error {
	edit := &discordgo.WebhookEdit{
		Content: &resp.Content,
		Embeds:  &resp.Embeds,
		Files:   resp.Files,
	}
	_, err := l.s.InteractionResponseEdit(l.event.Interaction, edit)
	if err == nil {
		l.replied = true
	}
	return err
}

func (l *liveInteraction) ShowModal(customID, title string, components []discordgo.MessageComponent) error {
	err := l.s.InteractionRespond(l.event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
	if err == nil {
		l.replied = true
	}
	return err
}

// liveOptions reads chat-input options, flattening one subcommand level the
// way Discord nests them.
type liveOptions struct {
	sub      string
	opts     []*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

func newLiveOptions(data discordgo.ApplicationCommandInteractionData) liveOptions {
	opts := data.Options
	sub := ""
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		sub = opts[0].Name
		opts = opts[0].Options
	}
	return liveOptions{sub: sub, opts: opts, resolved: data.Resolved}
}

func (o liveOptions) find(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range o.opts {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

func (o liveOptions) Subcommand() string { return o.sub }

func (o liveOptions) String(name string) string {
	if opt := o.find(name); opt != nil && opt.Type == discordgo.ApplicationCommandOptionString {
		return opt.StringValue()
	}
	return ""
}

func (o liveOptions) Bool(name string) bool {
	if opt := o.find(name); opt != nil && opt.Type == discordgo.ApplicationCommandOptionBoolean {
		return opt.BoolValue()
	}
	return false
}

func (o liveOptions) Int(name string) int64 {
	if opt := o.find(name); opt != nil && opt.Type == discordgo.ApplicationCommandOptionInteger {
		return opt.IntValue()
	}
	return 0
}

func (o liveOptions) Number(name string) float64 {
	if opt := o.find(name); opt != nil && opt.Type == discordgo.ApplicationCommandOptionNumber {
		return opt.FloatValue()
	}
	return 0
}

func (o liveOptions) User(name string) *discordgo.User {
	opt := o.find(name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionUser || o.resolved == nil {
		return nil
	}
	id, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	return o.resolved.Users[id]
}

func (o liveOptions) Attachment(name string) *discordgo.MessageAttachment {
	opt := o.find(name)
	if opt == nil || opt.Type != discordgo.ApplicationCommandOptionAttachment || o.resolved == nil {
		return nil
	}
	id, ok := opt.Value.(string)
	if !ok {
		return nil
	}
	return o.resolved.Attachments[id]
}
