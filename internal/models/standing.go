package models

// Standing is one row of the session score ledger.
type Standing struct {
	ParticipantID string `json:"participant_id"`
	Points        int    `json:"points"`
}
