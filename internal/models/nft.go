package models

// TokenTransfer is one indexed transfer log entry for an NFT contract.
// A transfer from the zero address is a mint; a transfer to the zero
// address is a burn.
type TokenTransfer struct {
	TokenID     string `json:"token_id"`
	From        string `json:"from"`
	To          string `json:"to"`
	BlockNumber int64  `json:"block_number"`
	LogIndex    int    `json:"log_index"`
}

// TokenAttribute is a single metadata trait on a token.
type TokenAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// TokenMetadata is the display metadata for one token.
type TokenMetadata struct {
	TokenID     string           `json:"token_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	Attributes  []TokenAttribute `json:"attributes"`
}
