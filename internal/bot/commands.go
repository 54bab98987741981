package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/wallet"
)

const commandTimeout = 15 * time.Second

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "link",
			Description: "Link your wallet address to your Discord account",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "address", Description: "Your 0x wallet address", Required: true},
			},
		},
		{
			Name:        "unlink",
			Description: "Remove your linked wallet",
		},
		{
			Name:        "wallet",
			Description: "Show a member's linked wallet",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Defaults to you", Required: false},
			},
		},
		{
			Name:        "holdings",
			Description: "List the tokens a member currently holds",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Defaults to you", Required: false},
			},
		},
		{
			Name:        "nft",
			Description: "Show a token from the collection",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "token_id", Description: "Token ID", Required: true},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show this session's dice scores",
		},
		{
			Name:        "roll",
			Description: "Start the dice round — holders pick a number, the die decides",
		},
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "link":
		b.handleLink(s, i)
	case "unlink":
		b.handleUnlink(s, i)
	case "wallet":
		b.handleWallet(s, i)
	case "holdings":
		b.handleHoldings(s, i)
	case "nft":
		b.handleNFT(s, i)
	case "leaderboard":
		b.handleLeaderboard(s, i)
	case "roll":
		b.handleRoll(s, i)
	}
}

func (b *Bot) handleLink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	address := i.ApplicationCommandData().Options[0].StringValue()
	link, err := b.wallets.LinkWallet(ctx, interactionUser(i).ID, address)
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAddress) {
			respondEphemeral(s, i, "That doesn't look like a wallet address. Expected `0x` followed by 40 hex characters.")
			return
		}
		log.Error().Err(err).Msg("link command failed")
		respondEphemeral(s, i, "Couldn't save your wallet link, try again later.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Linked `%s` to your account.", link.Address))
}

func (b *Bot) handleUnlink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if err := b.wallets.Unlink(ctx, interactionUser(i).ID); err != nil {
		log.Error().Err(err).Msg("unlink command failed")
		respondEphemeral(s, i, "Couldn't remove your wallet link, try again later.")
		return
	}
	respondEphemeral(s, i, "Your wallet link has been removed.")
}

func (b *Bot) handleWallet(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	target := targetUser(s, i)
	link, err := b.wallets.Link(ctx, target.ID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotLinked) {
			respondEphemeral(s, i, fmt.Sprintf("%s has no linked wallet.", target.Username))
			return
		}
		log.Error().Err(err).Msg("wallet command failed")
		respondEphemeral(s, i, "Couldn't look up that wallet, try again later.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("%s → `%s`", target.Username, link.Address))
}

func (b *Bot) handleHoldings(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	target := targetUser(s, i)
	link, err := b.wallets.Link(ctx, target.ID)
	if err != nil {
		if errors.Is(err, wallet.ErrNotLinked) {
			respondEphemeral(s, i, fmt.Sprintf("%s has no linked wallet.", target.Username))
			return
		}
		log.Error().Err(err).Msg("holdings command failed")
		respondEphemeral(s, i, "Couldn't look up that wallet, try again later.")
		return
	}

	tokens, err := b.holdings.TokensOwnedBy(ctx, link.Address)
	if err != nil {
		log.Error().Err(err).Msg("holdings lookup failed")
		respondEphemeral(s, i, "The transfer indexer is unavailable, try again later.")
		return
	}
	if len(tokens) == 0 {
		respondEphemeral(s, i, fmt.Sprintf("%s holds no tokens from the collection.", target.Username))
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("%s holds %d token(s): %s", target.Username, len(tokens), strings.Join(tokens, ", ")))
}

func (b *Bot) handleNFT(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	tokenID := i.ApplicationCommandData().Options[0].StringValue()
	metadata, err := b.holdings.Metadata(ctx, tokenID)
	if err != nil || metadata == nil {
		log.Error().Err(err).Str("token_id", tokenID).Msg("metadata lookup failed")
		respondEphemeral(s, i, "Couldn't fetch that token, try again later.")
		return
	}

	title := metadata.Name
	if title == "" {
		title = fmt.Sprintf("Token #%s", tokenID)
	}
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: metadata.Description,
	}
	if metadata.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: metadata.ImageURL}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to answer nft command")
	}
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	standings := b.gameSession.Standings()
	if len(standings) == 0 {
		respondEphemeral(s, i, "No points on the board yet. Start a round with /roll.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🏆 **Session leaderboard**\n")
	for rank, standing := range standings {
		name, ok := b.names.DisplayName(standing.ParticipantID)
		if !ok {
			name = fmt.Sprintf("Player %s", standing.ParticipantID)
		}
		fmt.Fprintf(&sb, "%d. %s — %d points\n", rank+1, name, standing.Points)
	}
	respondEphemeral(s, i, sb.String())
}

// handleRoll starts the dice round. The engine blocks for the full window,
// so it runs off the handler goroutine; this handler only answers the
// invoker.
func (b *Bot) handleRoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.rolling.TryLock() {
		respondEphemeral(s, i, "A round is already in progress.")
		return
	}

	roundID := b.cfg.Game.RoundID
	if b.gameSession.RoundUsed(roundID) {
		b.rolling.Unlock()
		// Run anyway so the caller gets the uniform zero-effect result.
		if _, err := b.engine.Run(b.cfg.Game, b.gameSession, nil); err != nil {
			log.Error().Err(err).Msg("short-circuit run failed")
		}
		respondEphemeral(s, i, "The dice have already been rolled this session.")
		return
	}

	respondEphemeral(s, i, "Rolling! The round is open.")

	go func() {
		defer b.rolling.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		eligible, err := b.eligibleParticipants(ctx)
		cancel()
		if err != nil {
			log.Error().Err(err).Msg("failed to build eligible set; opening round to nobody")
		}

		result, err := b.engine.Run(b.cfg.Game, b.gameSession, eligible)
		if err != nil {
			log.Error().Err(err).Str("round_id", roundID).Msg("round failed to start")
			return
		}
		if b.hub != nil {
			b.hub.BroadcastRound(result, b.gameSession.Standings())
		}
	}()
}

// eligibleParticipants is the input-source filter for the round: members
// with a linked wallet that currently holds at least one token.
func (b *Bot) eligibleParticipants(ctx context.Context) ([]string, error) {
	links, err := b.wallets.Links(ctx)
	if err != nil {
		return nil, err
	}
	byOwner, err := b.holdings.TokensByOwner(ctx)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, link := range links {
		if len(byOwner[link.Address]) > 0 {
			ids = append(ids, link.ParticipantID)
		}
	}
	return ids, nil
}

func targetUser(s *discordgo.Session, i *discordgo.InteractionCreate) *discordgo.User {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Type == discordgo.ApplicationCommandOptionUser {
			return opt.UserValue(s)
		}
	}
	return interactionUser(i)
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to answer interaction")
	}
}
