package models

import "time"

// WalletLink ties a Discord participant to a wallet address.
type WalletLink struct {
	ParticipantID string    `json:"participant_id"`
	Address       string    `json:"address"`
	LinkedAt      time.Time `json:"linked_at"`
}
