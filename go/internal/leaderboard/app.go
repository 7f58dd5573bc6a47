package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"github.com/vivekstills/boat/go/internal/models"
)

const (
	breakerName     = "juice-leaderboard"
	breakerInterval = 5 * time.Minute
	fetchKey        = "leaderboard"
)

// LeaderboardClient defines what the app layer needs from the partner client
type LeaderboardClient interface {
	FetchLeaderboard(ctx context.Context) ([]byte, error)
}

// Config holds the façade's caching and fallback settings
type Config struct {
	// CacheDuration is how long a fetched snapshot is served without a network call.
	// Zero or negative disables the window.
	CacheDuration time.Duration

	// BreakerTimeout is how long the circuit stays open before a trial request
	BreakerTimeout time.Duration

	Prizes  models.PrizeTable
	Default []models.Player
}

// DefaultConfig returns the campaign defaults
func DefaultConfig() Config {
	return Config{
		CacheDuration:  25 * time.Second,
		BreakerTimeout: 60 * time.Second,
		Prizes:         models.DefaultPrizeTable(),
		Default:        DefaultPlayers(),
	}
}

// DefaultPlayers is the placeholder board shown before any fetch has succeeded
func DefaultPlayers() []models.Player {
	return models.PlaceholderPlayers(models.DefaultPrizeTable())
}

type Option func(*App)

// WithClock replaces the real clock, mainly for tests
func WithClock(clock clockwork.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

func WithMetrics(metrics MetricsCollector) Option {
	return func(a *App) {
		a.metrics = metrics
	}
}

// WithNormalizers overrides the response shape precedence list
func WithNormalizers(normalizers []Normalizer) Option {
	return func(a *App) {
		a.normalizers = normalizers
	}
}

// App is the leaderboard sync façade. It owns the single cache slot and
// degrades to stale or default data whenever the upstream cannot be used.
type App struct {
	client      LeaderboardClient
	config      Config
	clock       clockwork.Clock
	metrics     MetricsCollector
	normalizers []Normalizer
	breaker     *gobreaker.CircuitBreaker
	group       singleflight.Group
	fallback    *models.Snapshot

	mu      sync.RWMutex
	cached  *models.Snapshot
	lastErr error
}

// NewApp creates a new leaderboard App
func NewApp(client LeaderboardClient, cfg Config, opts ...Option) (*App, error) {
	if client == nil {
		return nil, errors.New("leaderboard client is required")
	}
	if cfg.Prizes == nil {
		cfg.Prizes = models.PrizeTable{}
	}

	a := &App{
		client:      client,
		config:      cfg,
		clock:       clockwork.NewRealClock(),
		metrics:     &NoOpMetricsCollector{},
		normalizers: DefaultNormalizers(),
	}
	for _, opt := range opts {
		opt(a)
	}

	fallback, err := models.NewSnapshot(cfg.Default, time.Time{}, models.SourceDefault)
	if err != nil {
		return nil, fmt.Errorf("invalid default dataset: %w", err)
	}
	a.fallback = fallback

	a.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    breakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		IsSuccessful: func(err error) bool {
			// teardown and an empty feed are not upstream failures
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrEmptyLeaderboard)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return a, nil
}

// GetLeaderboard returns the best-known snapshot. It never fails: a cached snapshot
// inside the window is returned as is, otherwise the upstream is fetched, and on any
// fetch error the previous snapshot (even expired) or the default dataset is served.
func (a *App) GetLeaderboard(ctx context.Context) *models.Snapshot {
	if snap, ok := a.freshCache(); ok {
		a.metrics.RecordCacheHit()
		return snap
	}

	// Concurrent misses share one upstream call, driven by the first caller's ctx.
	v, _, _ := a.group.Do(fetchKey, func() (interface{}, error) {
		if snap, ok := a.freshCache(); ok {
			a.metrics.RecordCacheHit()
			return snap, nil
		}
		return a.refresh(ctx), nil
	})
	return v.(*models.Snapshot)
}

// Refresh fetches regardless of the cache window, with the same fallback as GetLeaderboard.
// Unlike InvalidateCache it keeps the previous snapshot available for stale-serve.
func (a *App) Refresh(ctx context.Context) *models.Snapshot {
	v, _, _ := a.group.Do(fetchKey, func() (interface{}, error) {
		return a.refresh(ctx), nil
	})
	return v.(*models.Snapshot)
}

// Fetch performs one upstream attempt with no caching or fallback
func (a *App) Fetch(ctx context.Context) (*models.Snapshot, error) {
	start := a.clock.Now()

	result, err := a.breaker.Execute(func() (interface{}, error) {
		body, err := a.client.FetchLeaderboard(ctx)
		if err != nil {
			return nil, err
		}
		return a.parse(body)
	})
	a.metrics.RecordFetch(err == nil, a.clock.Since(start))
	if err != nil {
		return nil, err
	}

	return result.(*models.Snapshot), nil
}

// InvalidateCache clears the cache slot so the next GetLeaderboard goes to the network
func (a *App) InvalidateCache() {
	a.mu.Lock()
	a.cached = nil
	a.lastErr = nil
	a.mu.Unlock()

	log.Debug().Msg("leaderboard cache invalidated")
}

// LastError returns the error of the most recent failed refresh, or nil if it succeeded
func (a *App) LastError() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastErr
}

// Cached returns the cached snapshot regardless of age, or nil
func (a *App) Cached() *models.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cached
}

// BreakerState returns the upstream circuit state
func (a *App) BreakerState() gobreaker.State {
	return a.breaker.State()
}

// DefaultSnapshot returns the configured fallback dataset
func (a *App) DefaultSnapshot() *models.Snapshot {
	return a.fallback
}

func (a *App) freshCache() (*models.Snapshot, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.cached == nil || a.config.CacheDuration <= 0 {
		return nil, false
	}
	if a.clock.Since(a.cached.FetchedAt) >= a.config.CacheDuration {
		return nil, false
	}
	return a.cached, true
}

func (a *App) refresh(ctx context.Context) *models.Snapshot {
	snap, err := a.Fetch(ctx)
	if err == nil {
		a.mu.Lock()
		a.cached = snap
		a.lastErr = nil
		a.mu.Unlock()

		log.Debug().
			Int("players", snap.Len()).
			Time("fetched_at", snap.FetchedAt).
			Msg("leaderboard refreshed")
		return snap
	}

	a.mu.Lock()
	a.lastErr = err
	stale := a.cached
	a.mu.Unlock()

	if stale != nil {
		a.metrics.RecordFallback(FallbackStale)
		log.Warn().
			Err(err).
			Str("fallback", string(FallbackStale)).
			Time("fetched_at", stale.FetchedAt).
			Msg("leaderboard fetch failed, serving cached snapshot")
		return stale
	}

	a.metrics.RecordFallback(FallbackDefault)
	log.Warn().
		Err(err).
		Str("fallback", string(FallbackDefault)).
		Msg("leaderboard fetch failed, serving default dataset")
	return a.fallback
}

func (a *App) parse(body []byte) (*models.Snapshot, error) {
	shape, entries, err := Normalize(body, a.normalizers)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize response: %w", err)
	}
	if len(entries) == 0 {
		// an empty list must not replace a populated board
		return nil, fmt.Errorf("%s response: %w", shape, ErrEmptyLeaderboard)
	}

	players, err := ToPlayers(entries, a.config.Prizes)
	if err != nil {
		return nil, err
	}

	snap, err := models.NewSnapshot(players, a.clock.Now(), models.SourceLive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}

	log.Debug().
		Str("shape", shape).
		Int("entries", len(entries)).
		Msg("normalized leaderboard response")

	return snap, nil
}
