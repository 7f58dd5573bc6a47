package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/vivekstills/boat/go/clients"
	"github.com/vivekstills/boat/go/clients/juice_client"
	"github.com/vivekstills/boat/go/internal/campaign"
	"github.com/vivekstills/boat/go/internal/leaderboard"
	"github.com/vivekstills/boat/go/internal/models"
)

// DefaultPath is read when no -config flag is given. It may be absent.
const DefaultPath = "config.yaml"

// LeaderboardConfig holds partner feed and sync settings
type LeaderboardConfig struct {
	BaseURL            string        `yaml:"base_url"`
	Code               string        `yaml:"code"`
	AuthScheme         string        `yaml:"auth_scheme"`
	RefreshInterval    time.Duration `yaml:"refresh_interval"`
	CacheDuration      time.Duration `yaml:"cache_duration"`
	BreakerTimeout     time.Duration `yaml:"breaker_timeout"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ManualRefreshEvery time.Duration `yaml:"manual_refresh_every"`

	// APIKey only ever comes from JUICE_API_KEY
	APIKey string `yaml:"-"`
}

type Config struct {
	Campaign       campaign.Campaign `yaml:"campaign"`
	Leaderboard    LeaderboardConfig `yaml:"leaderboard"`
	Prizes         models.PrizeTable `yaml:"prizes"`
	DefaultPlayers []models.Player   `yaml:"default_players"`
	LogLevel       string            `yaml:"log_level"`
}

// Load reads the YAML file at path, fills defaults and applies environment overrides.
// A missing file at DefaultPath is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		log.Debug().Str("path", path).Msg("no config file, using defaults")
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	return &cfg, nil
}

// Default returns the built-in configuration with environment overrides applied
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

func (c *Config) applyDefaults() {
	lb := &c.Leaderboard
	if lb.BaseURL == "" {
		lb.BaseURL = juice_client.BaseURL
	}
	if lb.AuthScheme == "" {
		lb.AuthScheme = string(clients.AuthSchemeBearer)
	}
	if lb.RefreshInterval == 0 {
		lb.RefreshInterval = 30 * time.Second
	}
	if lb.CacheDuration == 0 {
		lb.CacheDuration = 25 * time.Second
	}
	if lb.BreakerTimeout == 0 {
		lb.BreakerTimeout = 60 * time.Second
	}
	if lb.RequestTimeout == 0 {
		lb.RequestTimeout = 10 * time.Second
	}
	if lb.ManualRefreshEvery == 0 {
		lb.ManualRefreshEvery = 5 * time.Second
	}

	if c.Prizes == nil {
		c.Prizes = models.DefaultPrizeTable()
	}
	if c.DefaultPlayers == nil {
		c.DefaultPlayers = models.PlaceholderPlayers(c.Prizes)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Campaign.TargetDate == "" {
		c.Campaign.TargetDate = "2026-03-05T00:00:00"
	}
}

func (c *Config) applyEnv() {
	lb := &c.Leaderboard
	lb.BaseURL = getEnv("JUICE_API_BASE_URL", lb.BaseURL)
	lb.APIKey = getEnv("JUICE_API_KEY", lb.APIKey)
	lb.AuthScheme = getEnv("JUICE_AUTH_SCHEME", lb.AuthScheme)
	lb.Code = getEnv("JUICE_LEADERBOARD_CODE", lb.Code)
	lb.RefreshInterval = getEnvAsDuration("LEADERBOARD_REFRESH_INTERVAL", lb.RefreshInterval)
	lb.CacheDuration = getEnvAsDuration("LEADERBOARD_CACHE_DURATION", lb.CacheDuration)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate rejects settings the sync loop cannot run with
func (c *Config) Validate() error {
	lb := c.Leaderboard
	if lb.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %s", lb.RefreshInterval)
	}
	if lb.CacheDuration < 0 {
		return fmt.Errorf("cache duration must not be negative, got %s", lb.CacheDuration)
	}
	if lb.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", lb.RequestTimeout)
	}
	if _, err := clients.ParseAuthScheme(lb.AuthScheme); err != nil {
		return err
	}
	if strings.TrimSpace(lb.BaseURL) == "" {
		return errors.New("leaderboard base URL is required")
	}
	if u, err := url.Parse(lb.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid leaderboard base URL %q", lb.BaseURL)
	}

	for rank, prize := range c.Prizes {
		if rank < 1 || prize < 0 {
			return fmt.Errorf("invalid prize table entry %d: %v", rank, prize)
		}
	}
	if err := models.ValidateRanks(c.DefaultPlayers); err != nil {
		return fmt.Errorf("default players: %w", err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	return c.Campaign.Validate()
}

// Level returns the configured zerolog level, falling back to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

// ClientConfig builds the partner client settings
func (c *Config) ClientConfig() juice_client.Config {
	scheme, err := clients.ParseAuthScheme(c.Leaderboard.AuthScheme)
	if err != nil {
		scheme = clients.AuthSchemeBearer
	}
	return juice_client.Config{
		BaseURL:    strings.TrimRight(c.Leaderboard.BaseURL, "/"),
		APIKey:     c.Leaderboard.APIKey,
		AuthScheme: scheme,
		Code:       c.Leaderboard.Code,
		Timeout:    c.Leaderboard.RequestTimeout,
	}
}

// AppConfig builds the sync façade settings
func (c *Config) AppConfig() leaderboard.Config {
	return leaderboard.Config{
		CacheDuration:  c.Leaderboard.CacheDuration,
		BreakerTimeout: c.Leaderboard.BreakerTimeout,
		Prizes:         c.Prizes,
		Default:        c.DefaultPlayers,
	}
}

func (c *Config) PollerConfig() leaderboard.PollerConfig {
	cfg := leaderboard.DefaultPollerConfig()
	cfg.RefreshInterval = c.Leaderboard.RefreshInterval
	cfg.ManualRefreshEvery = c.Leaderboard.ManualRefreshEvery
	return cfg
}
