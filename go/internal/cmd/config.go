package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vivekstills/boat/go/internal/config"
)

// newFlagSet returns a subcommand flag set carrying the shared -config flag
func newFlagSet(name string, stderr io.Writer) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("config", config.DefaultPath, `path to the campaign YAML file ("" for built-in defaults)`)
	return fs, path
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	if path == "" {
		cfg = config.Default()
	} else {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.Leaderboard.APIKey == "" {
		log.Warn().Msg("JUICE_API_KEY is not set, requests will be unauthenticated")
	}

	log.Debug().
		Str("base_url", cfg.Leaderboard.BaseURL).
		Str("auth_scheme", cfg.Leaderboard.AuthScheme).
		Dur("refresh_interval", cfg.Leaderboard.RefreshInterval).
		Dur("cache_duration", cfg.Leaderboard.CacheDuration).
		Msg("config loaded")

	return cfg, nil
}
