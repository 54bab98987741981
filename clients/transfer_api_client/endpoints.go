package transfer_api_client

const (
	// DefaultBaseURL is the hosted transfer indexer; self-hosted deployments
	// override it via config.
	DefaultBaseURL = "https://api.tokentrail.io"

	// API Endpoints
	TransfersEndpoint = "/v1/nft/transfers"
	MetadataEndpoint  = "/v1/nft/metadata"

	// Pagination
	PageSize = 100

	// Headers
	APIKeyHeader = "X-API-Key"
)
