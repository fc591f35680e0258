package command

import (
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Response is what a handler sends back. IsError flags responses produced by
// SendError so batch callers can count failures.
type Response struct {
	Content string
	Embeds  []*discordgo.MessageEmbed
	Files   []*discordgo.File
	IsError bool
}

// Interaction is one inbound event's context: identity, input options and
// the response surface. There are two implementations: the live one backed
// by the Discord session, and BatchInteraction, which collects responses in
// memory for aggregated context-menu runs.
type Interaction interface {
	UserID() string
	Username() string
	GuildID() string
	CommandName() string
	Options() Options

	Deferred() bool
	Replied() bool
	DeferReply(ephemeral bool) error
	Reply(resp *Response, ephemeral bool) error
	EditReply(resp *Response) error
	ShowModal(customID, title string, components []discordgo.MessageComponent) error

	// Batch reports whether this context is part of an aggregated run, in
	// which case per-invocation cleanup is deferred to the batch end.
	Batch() bool

	// DeferCleanup parks a path for removal once this run's responses have
	// been delivered. Only batch contexts defer; live handlers remove
	// their own scratch space inline.
	DeferCleanup(path string)
}

// Options reads the interaction's input options. Lookups for absent options
// return zero values.
type Options interface {
	Subcommand() string
	String(name string) string
	Bool(name string) bool
	Int(name string) int64
	Number(name string) float64
	User(name string) *discordgo.User
	Attachment(name string) *discordgo.MessageAttachment
}

// BatchInteraction implements Interaction for aggregated context-menu runs:
// responses accumulate in Outputs instead of going to the platform.
type BatchInteraction struct {
	User     string
	Name     string
	Guild    string
	Opts     MapOptions
	Outputs  []*Response
	deferred bool
	cleanup  []string
}

// NewBatchInteraction builds a collecting context for one synthetic
// invocation of a handler.
func NewBatchInteraction(userID, commandName string, opts MapOptions) *BatchInteraction {
	return &BatchInteraction{User: userID, Name: commandName, Opts: opts}
}

func (b *BatchInteraction) UserID() string      { return b.User }
func (b *BatchInteraction) Username() string    { return b.User }
func (b *BatchInteraction) GuildID() string     { return b.Guild }
func (b *BatchInteraction) CommandName() string { return b.Name }
func (b *BatchInteraction) Options() Options    { return b.Opts }
func (b *BatchInteraction) Deferred() bool      { return b.deferred }
func (b *BatchInteraction) Replied() bool       { return len(b.Outputs) > 0 }
func (b *BatchInteraction) Batch() bool         { return true }

func (b *BatchInteraction) DeferReply(bool) error {
	b.deferred = true
	return nil
}

func (b *BatchInteraction) Reply(resp *Response, _ bool) error {
	b.Outputs = append(b.Outputs, resp)
	return nil
}

func (b *BatchInteraction) EditReply(resp *Response) error {
	b.Outputs = append(b.Outputs, resp)
	return nil
}

func (b *BatchInteraction) ShowModal(string, string, []discordgo.MessageComponent) error {
	return nil
}

// DeferCleanup parks path until RunCleanup. Each batch context owns its own
// list, so concurrent batch runs never touch each other's scratch space.
func (b *BatchInteraction) DeferCleanup(path string) {
	b.cleanup = append(b.cleanup, path)
}

// RunCleanup removes every parked path. The batch owner calls it once after
// the aggregated response has been sent.
func (b *BatchInteraction) RunCleanup() {
	for _, path := range b.cleanup {
		os.RemoveAll(path)
	}
	b.cleanup = nil
}

// Last returns the final collected response, or nil if the handler never
// responded (itself a contract violation).
func (b *BatchInteraction) Last() *Response {
	if len(b.Outputs) == 0 {
		return nil
	}
	return b.Outputs[len(b.Outputs)-1]
}

// Failed reports whether the run ended in an error response or no response.
func (b *BatchInteraction) Failed() bool {
	last := b.Last()
	return last == nil || last.IsError
}

// MapOptions is an Options implementation over plain values, used by batch
// contexts and tests.
type MapOptions struct {
	Sub         string
	Strings     map[string]string
	Bools       map[string]bool
	Ints        map[string]int64
	Numbers     map[string]float64
	Users       map[string]*discordgo.User
	Attachments map[string]*discordgo.MessageAttachment
}

func (m MapOptions) Subcommand() string        { return m.Sub }
func (m MapOptions) String(name string) string { return m.Strings[name] }
func (m MapOptions) Bool(name string) bool     { return m.Bools[name] }
func (m MapOptions) Int(name string) int64     { return m.Ints[name] }
func (m MapOptions) Number(name string) float64 {
	return m.Numbers[name]
}
func (m MapOptions) User(name string) *discordgo.User { return m.Users[name] }
func (m MapOptions) Attachment(name string) *discordgo.MessageAttachment {
	return m.Attachments[name]
}

// PendingRename parks a rename request while its modal is open. Sessions are
// keyed by user id and expire after TTL.
type PendingRename struct {
	Attachment *discordgo.MessageAttachment
	URL        string
	Created    time.Time
}

// RenameSessionTTL bounds how long a rename modal may stay open.
const RenameSessionTTL = 5 * time.Minute

// Expired reports whether the session is past its TTL at now.
func (p *PendingRename) Expired(now time.Time) bool {
	return now.Sub(p.Created) > RenameSessionTTL
}
