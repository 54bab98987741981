package wallet

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/models"
)

var (
	ErrInvalidAddress = errors.New("invalid wallet address")
	ErrNotLinked      = errors.New("no wallet linked")
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// WalletRepository defines what the app layer needs from the repository.
type WalletRepository interface {
	UpsertLink(ctx context.Context, participantID, address string) (*models.WalletLink, error)
	GetLink(ctx context.Context, participantID string) (*models.WalletLink, error)
	DeleteLink(ctx context.Context, participantID string) error
	ListLinks(ctx context.Context) ([]models.WalletLink, error)
}

// App handles wallet-linking business logic.
type App struct {
	repo WalletRepository
}

func NewApp(repo WalletRepository) *App {
	return &App{repo: repo}
}

// LinkWallet validates and stores the participant's wallet address,
// replacing any previous link.
func (a *App) LinkWallet(ctx context.Context, participantID, address string) (*models.WalletLink, error) {
	address = strings.TrimSpace(address)
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}

	link, err := a.repo.UpsertLink(ctx, participantID, strings.ToLower(address))
	if err != nil {
		return nil, fmt.Errorf("failed to store wallet link: %w", err)
	}

	log.Info().
		Str("participant_id", participantID).
		Str("address", link.Address).
		Msg("wallet linked")
	return link, nil
}

// Link returns the participant's current wallet link. ErrNotLinked when
// there is none.
func (a *App) Link(ctx context.Context, participantID string) (*models.WalletLink, error) {
	link, err := a.repo.GetLink(ctx, participantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotLinked
		}
		return nil, fmt.Errorf("failed to get wallet link: %w", err)
	}
	return link, nil
}

// Unlink removes the participant's wallet link if present.
func (a *App) Unlink(ctx context.Context, participantID string) error {
	if err := a.repo.DeleteLink(ctx, participantID); err != nil {
		return fmt.Errorf("failed to delete wallet link: %w", err)
	}
	log.Info().Str("participant_id", participantID).Msg("wallet unlinked")
	return nil
}

// Links lists every stored wallet link.
func (a *App) Links(ctx context.Context) ([]models.WalletLink, error) {
	links, err := a.repo.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet links: %w", err)
	}
	return links, nil
}
