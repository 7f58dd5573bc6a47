package main

import (
	"fmt"

	"github.com/vivekstills/boat/go/clients/juice_client"
	"github.com/vivekstills/boat/go/internal/config"
	"github.com/vivekstills/boat/go/internal/leaderboard"
)

type Services struct {
	Client  *juice_client.Client
	App     *leaderboard.App
	Poller  *leaderboard.Poller
	Metrics *leaderboard.CounterMetrics
}

func setupServices(cfg *config.Config) (*Services, error) {
	// Wire up dependency injection chain
	// Partner client → App layer → Poller

	client := juice_client.NewClient(cfg.ClientConfig())

	metrics := leaderboard.NewCounterMetrics()
	app, err := leaderboard.NewApp(client, cfg.AppConfig(), leaderboard.WithMetrics(metrics))
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard app: %w", err)
	}

	poller := leaderboard.NewPoller(app, cfg.PollerConfig())

	return &Services{
		Client:  client,
		App:     app,
		Poller:  poller,
		Metrics: metrics,
	}, nil
}
