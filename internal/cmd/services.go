package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cmaddox5/holderbot/clients/transfer_api_client"
	"github.com/cmaddox5/holderbot/internal/game"
	"github.com/cmaddox5/holderbot/internal/gateway"
	"github.com/cmaddox5/holderbot/internal/holdings"
	"github.com/cmaddox5/holderbot/internal/wallet"
)

type Services struct {
	Wallets     *wallet.App
	Holdings    *holdings.App
	GameSession *game.Session
	Hub         *gateway.Hub
	Gateway     *gateway.Handler
}

func setupServices(ctx context.Context, database *sql.DB, config *Config, apiKey string) (*Services, error) {
	// Database layer → Repository layer → App layer

	walletRepo := wallet.NewRepository(database)
	if err := walletRepo.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to init wallet schema: %w", err)
	}
	walletApp := wallet.NewApp(walletRepo)

	transferClient := transfer_api_client.NewTransferApiClient(config.Indexer.BaseURL, apiKey)
	holdingsApp := holdings.NewApp(transferClient, config.Indexer.Contract)

	gameSession := game.NewSession()

	hub := gateway.NewHub(gateway.DefaultConnectionConfig())
	gatewayHandler := gateway.NewHandler(hub, gameSession)

	return &Services{
		Wallets:     walletApp,
		Holdings:    holdingsApp,
		GameSession: gameSession,
		Hub:         hub,
		Gateway:     gatewayHandler,
	}, nil
}
