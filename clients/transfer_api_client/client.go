package transfer_api_client

import (
	"github.com/cmaddox5/holderbot/clients"
)

// TransferApiClient talks to the NFT-transfer indexing API.
type TransferApiClient struct {
	*clients.BaseClient
}

func NewTransferApiClient(baseURL, apiKey string) *TransferApiClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &TransferApiClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
	client.SetHeader(APIKeyHeader, apiKey)
	return client
}
