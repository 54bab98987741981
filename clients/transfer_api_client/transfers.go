package transfer_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/cmaddox5/holderbot/internal/models"
)

type transferRecord struct {
	TokenID     string `json:"token_id"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	BlockNumber int64  `json:"block_number"`
	LogIndex    int    `json:"log_index"`
}

type transfersResponse struct {
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Response []transferRecord `json:"response"`
}

// ContractTransfers fetches the contract's complete transfer log, following
// pagination until the indexer reports no further pages.
func (c *TransferApiClient) ContractTransfers(ctx context.Context, contract string) ([]models.TokenTransfer, error) {
	var transfers []models.TokenTransfer
	for page := 1; ; page++ {
		resp, err := c.contractTransfersPage(ctx, contract, page)
		if err != nil {
			return nil, fmt.Errorf("failed to get transfers page %d: %w", page, err)
		}
		for _, record := range resp.Response {
			transfers = append(transfers, models.TokenTransfer{
				TokenID:     record.TokenID,
				From:        record.FromAddress,
				To:          record.ToAddress,
				BlockNumber: record.BlockNumber,
				LogIndex:    record.LogIndex,
			})
		}
		if len(resp.Response) < PageSize || len(transfers) >= resp.Total {
			return transfers, nil
		}
	}
}

func (c *TransferApiClient) contractTransfersPage(ctx context.Context, contract string, page int) (*transfersResponse, error) {
	query := url.Values{}
	query.Set("contract", contract)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(PageSize))

	body, err := c.Get(ctx, TransfersEndpoint+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var resp transfersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	return &resp, nil
}
