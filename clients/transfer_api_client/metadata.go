package transfer_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/cmaddox5/holderbot/internal/models"
)

type metadataResponse struct {
	TokenID     string `json:"token_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Attributes  []struct {
		TraitType string `json:"trait_type"`
		Value     string `json:"value"`
	} `json:"attributes"`
}

// TokenMetadata fetches display metadata for one token of the contract.
func (c *TransferApiClient) TokenMetadata(ctx context.Context, contract, tokenID string) (*models.TokenMetadata, error) {
	query := url.Values{}
	query.Set("contract", contract)
	query.Set("token_id", tokenID)

	body, err := c.Get(ctx, MetadataEndpoint+"?"+query.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata for token %s: %w", tokenID, err)
	}

	var resp metadataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	metadata := &models.TokenMetadata{
		TokenID:     resp.TokenID,
		Name:        resp.Name,
		Description: resp.Description,
		ImageURL:    resp.ImageURL,
	}
	for _, attr := range resp.Attributes {
		metadata.Attributes = append(metadata.Attributes, models.TokenAttribute{
			TraitType: attr.TraitType,
			Value:     attr.Value,
		})
	}
	return metadata, nil
}
