package bot

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/game"
	"github.com/cmaddox5/holderbot/internal/gateway"
	"github.com/cmaddox5/holderbot/internal/holdings"
	"github.com/cmaddox5/holderbot/internal/wallet"
)

// Config holds the Discord-facing settings.
type Config struct {
	GuildID   string
	ChannelID string
	Game      game.Config
}

// Bot is the chat dispatch layer: it owns the Discord session, routes
// interactions, and drives the round engine against the session ledger.
type Bot struct {
	session  *discordgo.Session
	cfg      Config
	wallets  *wallet.App
	holdings *holdings.App
	hub      *gateway.Hub

	gameSession *game.Session
	engine      *game.Engine
	router      *submissionRouter
	names       *nameCache

	// rolling serializes rounds; they never run concurrently.
	rolling sync.Mutex
}

func New(session *discordgo.Session, cfg Config, wallets *wallet.App, owned *holdings.App, hub *gateway.Hub, gameSession *game.Session) *Bot {
	router := newSubmissionRouter()
	names := newNameCache(session, cfg.GuildID)
	announcer := &channelAnnouncer{session: session, channelID: cfg.ChannelID}

	return &Bot{
		session:     session,
		cfg:         cfg,
		wallets:     wallets,
		holdings:    owned,
		hub:         hub,
		gameSession: gameSession,
		engine:      game.NewEngine(announcer, router, names),
		router:      router,
		names:       names,
	}
}

// Start opens the gateway connection and registers the guild commands.
func (b *Bot) Start() error {
	b.session.AddHandler(b.onInteraction)
	b.session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.cfg.GuildID, commandDefinitions())
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	log.Info().
		Str("bot", b.session.State.User.Username).
		Str("guild_id", b.cfg.GuildID).
		Msg("bot running")
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member != nil {
		b.names.observe(i.Member)
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(s, i)
	}
}

// handleComponent turns a pick-button press into a submission for the
// prompt it was pressed on. Presses on a prompt with no open window get a
// closed-round notice instead of reaching the collector.
func (b *Bot) handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	value, ok := parsePickCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}
	if i.Message == nil {
		return
	}

	sub := &componentSubmission{session: s, interaction: i, value: value}
	if !b.router.dispatch(i.Message.ID, sub) {
		respondEphemeral(s, i, "This round is closed.")
	}
}
