package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"github.com/cmaddox5/holderbot/clients/transfer_api_client"
	"github.com/cmaddox5/holderbot/internal/holdings"
)

// TraitCount is one attribute value's frequency across the collection.
type TraitCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CollectionSummary is the aggregated output written to disk.
type CollectionSummary struct {
	Contract    string                  `json:"contract"`
	TokenCount  int                     `json:"token_count"`
	HolderCount int                     `json:"holder_count"`
	Traits      map[string][]TraitCount `json:"traits"`
}

func main() {
	ctx := context.Background()

	contract := flag.String("contract", "", "collection contract address")
	baseURL := flag.String("base-url", "", "transfer API base URL (defaults to production)")
	out := flag.String("out", "collection_summary.json", "output file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load .env: %v\n", err)
	}

	if *contract == "" {
		fmt.Fprintln(os.Stderr, "-contract is required")
		os.Exit(1)
	}
	apiKey := os.Getenv("TRANSFER_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "TRANSFER_API_KEY environment variable is required")
		os.Exit(1)
	}

	client := transfer_api_client.NewTransferApiClient(*baseURL, apiKey)
	app := holdings.NewApp(client, *contract)

	// 1) Replay transfers into current ownership
	owners, err := app.OwnerByToken(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch transfers: %v\n", err)
		os.Exit(1)
	}

	holders := make(map[string]bool)
	for _, owner := range owners {
		holders[owner] = true
	}

	// 2) Fetch metadata per live token and tally trait frequencies
	traits := make(map[string]map[string]int)
	tokenIDs := make([]string, 0, len(owners))
	for tokenID := range owners {
		tokenIDs = append(tokenIDs, tokenID)
	}
	sort.Strings(tokenIDs)

	for _, tokenID := range tokenIDs {
		metadata, err := app.Metadata(ctx, tokenID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch metadata for token %s: %v\n", tokenID, err)
			os.Exit(1)
		}
		for _, attr := range metadata.Attributes {
			if traits[attr.TraitType] == nil {
				traits[attr.TraitType] = make(map[string]int)
			}
			traits[attr.TraitType][attr.Value]++
		}
	}

	summary := CollectionSummary{
		Contract:    *contract,
		TokenCount:  len(owners),
		HolderCount: len(holders),
		Traits:      make(map[string][]TraitCount, len(traits)),
	}
	for traitType, counts := range traits {
		values := make([]TraitCount, 0, len(counts))
		for value, count := range counts {
			values = append(values, TraitCount{Value: value, Count: count})
		}
		// Rarest first, name as tiebreak
		sort.Slice(values, func(i, j int) bool {
			if values[i].Count != values[j].Count {
				return values[i].Count < values[j].Count
			}
			return values[i].Value < values[j].Value
		})
		summary.Traits[traitType] = values
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal summary: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d tokens, %d holders, %d trait types\n",
		*out, summary.TokenCount, summary.HolderCount, len(summary.Traits))
}
