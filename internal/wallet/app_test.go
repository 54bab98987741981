package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmaddox5/holderbot/internal/models"
)

type fakeRepo struct {
	links map[string]models.WalletLink
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{links: make(map[string]models.WalletLink)}
}

func (f *fakeRepo) UpsertLink(ctx context.Context, participantID, address string) (*models.WalletLink, error) {
	link := models.WalletLink{ParticipantID: participantID, Address: address, LinkedAt: time.Now()}
	f.links[participantID] = link
	return &link, nil
}

func (f *fakeRepo) GetLink(ctx context.Context, participantID string) (*models.WalletLink, error) {
	link, ok := f.links[participantID]
	if !ok {
		return nil, ErrNotFound
	}
	return &link, nil
}

func (f *fakeRepo) DeleteLink(ctx context.Context, participantID string) error {
	delete(f.links, participantID)
	return nil
}

func (f *fakeRepo) ListLinks(ctx context.Context) ([]models.WalletLink, error) {
	var links []models.WalletLink
	for _, link := range f.links {
		links = append(links, link)
	}
	return links, nil
}

func TestLinkWalletNormalizesAddress(t *testing.T) {
	app := NewApp(newFakeRepo())

	link, err := app.LinkWallet(context.Background(), "user-1", "  0xAbCdEF0123456789abcdef0123456789ABCDEF01 ")
	if err != nil {
		t.Fatalf("LinkWallet: %v", err)
	}
	if want := "0xabcdef0123456789abcdef0123456789abcdef01"; link.Address != want {
		t.Errorf("address = %q, want lowercased %q", link.Address, want)
	}
}

func TestLinkWalletRejectsMalformedAddresses(t *testing.T) {
	app := NewApp(newFakeRepo())

	for _, address := range []string{
		"",
		"abcdef0123456789abcdef0123456789abcdef01",     // missing 0x
		"0xabcdef",                                     // too short
		"0xabcdef0123456789abcdef0123456789abcdef0123", // too long
		"0xZZcdef0123456789abcdef0123456789abcdef01",   // non-hex
	} {
		if _, err := app.LinkWallet(context.Background(), "user-1", address); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("LinkWallet(%q) = %v, want ErrInvalidAddress", address, err)
		}
	}
}

func TestLinkReturnsErrNotLinked(t *testing.T) {
	app := NewApp(newFakeRepo())

	if _, err := app.Link(context.Background(), "user-1"); !errors.Is(err, ErrNotLinked) {
		t.Fatalf("Link = %v, want ErrNotLinked", err)
	}
}

func TestLinkWalletOverwritesPreviousLink(t *testing.T) {
	repo := newFakeRepo()
	app := NewApp(repo)
	ctx := context.Background()

	if _, err := app.LinkWallet(ctx, "user-1", "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if _, err := app.LinkWallet(ctx, "user-1", "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"); err != nil {
		t.Fatalf("second link: %v", err)
	}

	link, err := app.Link(ctx, "user-1")
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if link.Address != "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb" {
		t.Errorf("address = %q, want the replacement", link.Address)
	}
}
