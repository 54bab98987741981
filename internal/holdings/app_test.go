package holdings

import (
	"context"
	"reflect"
	"testing"

	"github.com/cmaddox5/holderbot/internal/models"
)

type fakeSource struct {
	transfers []models.TokenTransfer
	metadata  map[string]*models.TokenMetadata
}

func (f *fakeSource) ContractTransfers(ctx context.Context, contract string) ([]models.TokenTransfer, error) {
	return f.transfers, nil
}

func (f *fakeSource) TokenMetadata(ctx context.Context, contract, tokenID string) (*models.TokenMetadata, error) {
	return f.metadata[tokenID], nil
}

func TestOwnerByTokenReplaysInChainOrder(t *testing.T) {
	// Deliberately out of order: the reducer must sort by block then log
	// index before replaying.
	source := &fakeSource{transfers: []models.TokenTransfer{
		{TokenID: "1", From: "0xAAAA", To: "0xBBBB", BlockNumber: 20, LogIndex: 0},
		{TokenID: "1", From: ZeroAddress, To: "0xAAAA", BlockNumber: 10, LogIndex: 0},
		{TokenID: "2", From: ZeroAddress, To: "0xAAAA", BlockNumber: 10, LogIndex: 1},
		{TokenID: "1", From: "0xBBBB", To: "0xCCCC", BlockNumber: 20, LogIndex: 1},
	}}
	app := NewApp(source, "0xcontract")

	owners, err := app.OwnerByToken(context.Background())
	if err != nil {
		t.Fatalf("OwnerByToken: %v", err)
	}
	want := map[string]string{"1": "0xcccc", "2": "0xaaaa"}
	if !reflect.DeepEqual(owners, want) {
		t.Fatalf("owners = %v, want %v", owners, want)
	}
}

func TestOwnerByTokenDropsBurnedTokens(t *testing.T) {
	source := &fakeSource{transfers: []models.TokenTransfer{
		{TokenID: "7", From: ZeroAddress, To: "0xAAAA", BlockNumber: 1},
		{TokenID: "7", From: "0xAAAA", To: ZeroAddress, BlockNumber: 2},
	}}
	app := NewApp(source, "0xcontract")

	owners, err := app.OwnerByToken(context.Background())
	if err != nil {
		t.Fatalf("OwnerByToken: %v", err)
	}
	if _, ok := owners["7"]; ok {
		t.Fatalf("burned token still owned: %v", owners)
	}
}

func TestTokensOwnedByIsCaseInsensitive(t *testing.T) {
	source := &fakeSource{transfers: []models.TokenTransfer{
		{TokenID: "3", From: ZeroAddress, To: "0xAbCd000000000000000000000000000000000001", BlockNumber: 1, LogIndex: 0},
		{TokenID: "9", From: ZeroAddress, To: "0xabcd000000000000000000000000000000000001", BlockNumber: 1, LogIndex: 1},
	}}
	app := NewApp(source, "0xcontract")

	tokens, err := app.TokensOwnedBy(context.Background(), "0xABCD000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("TokensOwnedBy: %v", err)
	}
	if !reflect.DeepEqual(tokens, []string{"3", "9"}) {
		t.Fatalf("tokens = %v, want [3 9]", tokens)
	}
}
