package transfer_api_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContractTransfersFollowsPagination(t *testing.T) {
	const total = PageSize + 3

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != TransfersEndpoint {
			t.Errorf("path = %s, want %s", r.URL.Path, TransfersEndpoint)
		}
		if got := r.Header.Get(APIKeyHeader); got != "test-key" {
			t.Errorf("api key header = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("contract"); got != "0xabc" {
			t.Errorf("contract = %q, want 0xabc", got)
		}

		page := r.URL.Query().Get("page")
		resp := transfersResponse{Total: total}
		start, end := 0, PageSize
		if page == "2" {
			start, end = PageSize, total
			resp.Page = 2
		} else {
			resp.Page = 1
		}
		for i := start; i < end; i++ {
			resp.Response = append(resp.Response, transferRecord{
				TokenID:     fmt.Sprintf("%d", i),
				FromAddress: "0x0000000000000000000000000000000000000000",
				ToAddress:   "0xowner",
				BlockNumber: int64(i),
			})
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := NewTransferApiClient(server.URL, "test-key")
	transfers, err := client.ContractTransfers(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("ContractTransfers: %v", err)
	}
	if len(transfers) != total {
		t.Fatalf("got %d transfers, want %d", len(transfers), total)
	}
	if transfers[PageSize].TokenID != fmt.Sprintf("%d", PageSize) {
		t.Errorf("page boundary record = %+v", transfers[PageSize])
	}
}

func TestContractTransfersSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unknown contract"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewTransferApiClient(server.URL, "test-key")
	if _, err := client.ContractTransfers(context.Background(), "0xmissing"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
