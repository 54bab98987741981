package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/bot"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal().Msg("DISCORD_TOKEN environment variable is required")
	}
	apiKey := os.Getenv("TRANSFER_API_KEY")
	if apiKey == "" {
		log.Fatal().Msg("TRANSFER_API_KEY environment variable is required")
	}

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer database.Close()

	services, err := setupServices(ctx, database, config, apiKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Discord session")
	}

	botCfg := bot.Config{
		GuildID:   config.Discord.GuildID,
		ChannelID: config.Discord.ChannelID,
		Game:      config.gameConfig(),
	}
	b := bot.New(session, botCfg, services.Wallets, services.Holdings, services.Hub, services.GameSession)
	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start bot")
	}

	go services.Hub.Start(ctx)

	server := setupServer(config, services)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("gateway server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("gateway shutdown failed")
	}
	if err := b.Stop(); err != nil {
		log.Error().Err(err).Msg("bot shutdown failed")
	}
}
