package holdings

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/models"
)

// ZeroAddress marks mints (transfer from) and burns (transfer to).
const ZeroAddress = "0x0000000000000000000000000000000000000000"

// TransferSource defines what the app layer needs from the indexing API.
type TransferSource interface {
	ContractTransfers(ctx context.Context, contract string) ([]models.TokenTransfer, error)
	TokenMetadata(ctx context.Context, contract, tokenID string) (*models.TokenMetadata, error)
}

// App reconstructs current token ownership by replaying the contract's
// transfer log.
type App struct {
	source   TransferSource
	contract string
}

func NewApp(source TransferSource, contract string) *App {
	return &App{source: source, contract: contract}
}

// OwnerByToken replays the transfer log in chain order and returns the
// current owner of each live token. Burned tokens are absent.
func (a *App) OwnerByToken(ctx context.Context) (map[string]string, error) {
	transfers, err := a.source.ContractTransfers(ctx, a.contract)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transfer log: %w", err)
	}

	sort.SliceStable(transfers, func(i, j int) bool {
		if transfers[i].BlockNumber != transfers[j].BlockNumber {
			return transfers[i].BlockNumber < transfers[j].BlockNumber
		}
		return transfers[i].LogIndex < transfers[j].LogIndex
	})

	owners := make(map[string]string)
	for _, transfer := range transfers {
		to := strings.ToLower(transfer.To)
		if to == ZeroAddress {
			delete(owners, transfer.TokenID)
			continue
		}
		owners[transfer.TokenID] = to
	}

	log.Debug().
		Str("contract", a.contract).
		Int("transfers", len(transfers)).
		Int("live_tokens", len(owners)).
		Msg("ownership reconstructed")
	return owners, nil
}

// TokensByOwner inverts OwnerByToken: wallet address to sorted token IDs.
func (a *App) TokensByOwner(ctx context.Context) (map[string][]string, error) {
	owners, err := a.OwnerByToken(ctx)
	if err != nil {
		return nil, err
	}

	byOwner := make(map[string][]string)
	for tokenID, owner := range owners {
		byOwner[owner] = append(byOwner[owner], tokenID)
	}
	for _, tokens := range byOwner {
		sort.Strings(tokens)
	}
	return byOwner, nil
}

// TokensOwnedBy returns the sorted token IDs currently held by the wallet.
func (a *App) TokensOwnedBy(ctx context.Context, address string) ([]string, error) {
	byOwner, err := a.TokensByOwner(ctx)
	if err != nil {
		return nil, err
	}
	return byOwner[strings.ToLower(address)], nil
}

// Metadata fetches display metadata for one token of the contract.
func (a *App) Metadata(ctx context.Context, tokenID string) (*models.TokenMetadata, error) {
	metadata, err := a.source.TokenMetadata(ctx, a.contract, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch token metadata: %w", err)
	}
	return metadata, nil
}
