package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"aurora/internal/blacklist"
	"aurora/internal/command"
	"aurora/internal/config"
	"aurora/internal/discord"
	"aurora/internal/handlers"
	"aurora/internal/logging"
	"aurora/internal/ratelimit"
	"aurora/internal/version"
	"aurora/pkg/fetch"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		logging.Setup("info", "")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", version.Version).Msgf("starting %s", version.AppName)

	limiter := ratelimit.New()
	go ratelimit.RunSweeper(ctx, limiter)

	bl := blacklist.New(cfg.BlacklistPath)
	fc := fetch.New()

	registry := command.Load(handlers.Manifest(), &command.Deps{
		Config:    cfg,
		Blacklist: bl,
		Fetch:     fc,
		TempDir:   cfg.TempDir,
	}, config.LoadDefinitions(cfg.DefinitionsPath))

	errCh := make(chan error, 1)
	go func() {
		errCh <- discord.StartBot(ctx, cfg, registry, limiter, bl, fc)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("bot stopped")
		}
	}
}
