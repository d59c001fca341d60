package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rhysv96/discord-r9k/internal/config"
	"github.com/rhysv96/discord-r9k/internal/discord"
	"github.com/rhysv96/discord-r9k/internal/handler"
	"github.com/rhysv96/discord-r9k/internal/logging"
	"github.com/rhysv96/discord-r9k/internal/repository"
	"github.com/rhysv96/discord-r9k/internal/service"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and start watching channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
}

func run(parent context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}

	channels := service.ParseChannelSet(cfg.MonitoredChannels)
	if channels.Len() == 0 {
		log.Warn().Msg("DISCORD_LISTENING_CHANNEL_IDS is empty, no channel will be monitored")
	}

	rules, err := service.LoadRules(cfg.RulesFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.DatabaseURL, logging.Component(log, "database"))
	if err != nil {
		return err
	}
	defer store.Close()

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	ingestor := service.NewIngestor(
		channels,
		store,
		discord.NewReplier(session, cfg.ReplyRatePerSec),
		rules,
		logging.Component(log, "ingest"),
	)
	bot := discord.NewBot(session, ingestor, cfg.EventTimeout, logging.Component(log, "discord-bot"))

	if err := bot.Start(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}

	app := handler.NewApp(store, logging.Component(log, "http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		bot.Stop()
		return app.ShutdownWithTimeout(5 * time.Second)
	})

	log.Info().
		Int("channels", channels.Len()).
		Int("rules", len(rules)).
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Msg("r9k running")

	return g.Wait()
}
