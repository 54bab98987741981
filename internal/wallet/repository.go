package wallet

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cmaddox5/holderbot/internal/models"
)

var ErrNotFound = errors.New("wallet link not found")

const schema = `
CREATE TABLE IF NOT EXISTS wallet_links (
	participant_id TEXT PRIMARY KEY,
	address        TEXT NOT NULL,
	linked_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS wallet_links_address_idx ON wallet_links (address);
`

// Repository implements wallet link data access over database/sql.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema creates the wallet_links table if it does not exist.
func (r *Repository) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *Repository) UpsertLink(ctx context.Context, participantID, address string) (*models.WalletLink, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO wallet_links (participant_id, address)
		VALUES ($1, $2)
		ON CONFLICT (participant_id)
		DO UPDATE SET address = EXCLUDED.address, linked_at = now()
		RETURNING participant_id, address, linked_at`,
		participantID, address)

	var link models.WalletLink
	if err := row.Scan(&link.ParticipantID, &link.Address, &link.LinkedAt); err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *Repository) GetLink(ctx context.Context, participantID string) (*models.WalletLink, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT participant_id, address, linked_at
		FROM wallet_links
		WHERE participant_id = $1`,
		participantID)

	var link models.WalletLink
	if err := row.Scan(&link.ParticipantID, &link.Address, &link.LinkedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *Repository) DeleteLink(ctx context.Context, participantID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM wallet_links WHERE participant_id = $1`, participantID)
	return err
}

func (r *Repository) ListLinks(ctx context.Context) ([]models.WalletLink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT participant_id, address, linked_at
		FROM wallet_links
		ORDER BY linked_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.WalletLink
	for rows.Next() {
		var link models.WalletLink
		if err := rows.Scan(&link.ParticipantID, &link.Address, &link.LinkedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}
