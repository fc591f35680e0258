package discord

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"aurora/internal/blacklist"
	"aurora/internal/command"
	"aurora/internal/config"
	"aurora/internal/ratelimit"
	"aurora/pkg/fetch"
)

// Bot owns the gateway session and wires events to the dispatcher.
type Bot struct {
	dg         *discordgo.Session
	cfg        *config.Config
	appID      string
	registry   *command.Registry
	dispatcher *Dispatcher

	mu     sync.Mutex
	guilds map[string]bool
}

// StartBot connects to Discord and blocks until ctx is cancelled.
func StartBot(ctx context.Context, cfg *config.Config, registry *command.Registry, limiter *ratelimit.Limiter, bl *blacklist.Service, fc *fetch.Client) error {
	token, appID, err := cfg.Credentials()
	if err != nil {
		return err
	}

	b := &Bot{
		cfg:        cfg,
		appID:      appID,
		registry:   registry,
		dispatcher: NewDispatcher(registry, limiter, bl, fc),
		guilds:     make(map[string]bool),
	}
	return b.run(ctx, token)
}

func (b *Bot) run(ctx context.Context, token string) error {
	resetTempDir(b.cfg.TempDir)

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	b.dg = dg

	dg.Identify.Intents = discordgo.IntentsGuilds
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, cleaning up")
	b.notifyShutdown()
	return nil
}

// resetTempDir clears conversion leftovers from a previous run.
func resetTempDir(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("could not clear temp dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("could not create temp dir")
	}
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Msg("connected to Discord")

	b.mu.Lock()
	for _, g := range r.Guilds {
		b.guilds[g.ID] = true
	}
	b.mu.Unlock()

	registerGlobalCommands(s, b.appID, b.registry.Definitions())
	b.notifyStartup(len(r.Guilds))
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	registerGuildCommands(s, b.appID, g.ID, b.registry.Definitions().Guild)

	// GuildCreate also fires for every known guild right after connect;
	// only a guild absent from the ready list is a real join.
	b.mu.Lock()
	known := b.guilds[g.ID]
	b.guilds[g.ID] = true
	b.mu.Unlock()
	if !known {
		b.notifyGuildJoin(g)
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, e *discordgo.InteractionCreate) {
	b.dispatcher.Handle(s, e)
}
