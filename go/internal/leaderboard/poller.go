package leaderboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/vivekstills/boat/go/internal/models"
)

// Source defines what the poller needs from the façade
type Source interface {
	GetLeaderboard(ctx context.Context) *models.Snapshot
	Refresh(ctx context.Context) *models.Snapshot
	LastError() error
}

type PollerConfig struct {
	RefreshInterval time.Duration
	// ManualRefreshEvery is the minimum spacing of RefreshNow calls that reach the upstream
	ManualRefreshEvery time.Duration
	SubscriberBuffer   int
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{
		RefreshInterval:    30 * time.Second,
		ManualRefreshEvery: 5 * time.Second,
		SubscriberBuffer:   4,
	}
}

// Poller refreshes the leaderboard on a fixed interval and publishes each
// resulting State to subscribers. At most one refresh runs at a time.
type Poller struct {
	source     Source
	config     PollerConfig
	clock      clockwork.Clock
	limiter    *rate.Limiter
	instanceID string

	inFlight atomic.Bool

	mu      sync.Mutex
	running bool
	runCtx  context.Context
	cancel  context.CancelFunc
	ticker  clockwork.Ticker
	wg      sync.WaitGroup

	stateMu sync.RWMutex
	state   State

	subMu sync.Mutex
	subs  map[uuid.UUID]chan State
}

type PollerOption func(*Poller)

func WithPollerClock(clock clockwork.Clock) PollerOption {
	return func(p *Poller) {
		p.clock = clock
	}
}

func NewPoller(source Source, cfg PollerConfig, opts ...PollerOption) *Poller {
	defaults := DefaultPollerConfig()
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = defaults.RefreshInterval
	}
	if cfg.SubscriberBuffer <= 0 {
		cfg.SubscriberBuffer = defaults.SubscriberBuffer
	}

	limit := rate.Inf
	if cfg.ManualRefreshEvery > 0 {
		limit = rate.Every(cfg.ManualRefreshEvery)
	}

	p := &Poller{
		source:     source,
		config:     cfg,
		clock:      clockwork.NewRealClock(),
		limiter:    rate.NewLimiter(limit, 1),
		instanceID: uuid.New().String()[:8],
		state:      State{Loading: true},
		subs:       make(map[uuid.UUID]chan State),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrPollerRunning
	}
	p.runCtx, p.cancel = context.WithCancel(ctx)
	p.ticker = p.clock.NewTicker(p.config.RefreshInterval)
	p.running = true
	runCtx, ticker := p.runCtx, p.ticker
	p.wg.Add(1)
	p.mu.Unlock()

	go p.run(runCtx, ticker)

	log.Info().
		Str("instance", p.instanceID).
		Dur("refresh_interval", p.config.RefreshInterval).
		Msg("leaderboard poller started")

	return nil
}

// Stop cancels any in-flight refresh, stops the ticker and closes all subscriptions.
// No refresh runs once Stop has returned.
func (p *Poller) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrPollerNotRunning
	}
	p.running = false
	p.cancel()
	ticker := p.ticker
	p.mu.Unlock()

	// RefreshNow may reset the ticker until every caller has left
	p.wg.Wait()
	ticker.Stop()

	p.subMu.Lock()
	for id, ch := range p.subs {
		close(ch)
		delete(p.subs, id)
	}
	p.subMu.Unlock()

	log.Info().Str("instance", p.instanceID).Msg("leaderboard poller stopped")
	return nil
}

// RefreshNow fetches past the cache window and restarts the refresh schedule.
// It returns false when the poller is stopped, a refresh is already in flight,
// or manual refreshes are being requested faster than allowed.
func (p *Poller) RefreshNow(ctx context.Context) bool {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return false
	}
	runCtx, ticker := p.runCtx, p.ticker
	p.wg.Add(1)
	p.mu.Unlock()
	defer p.wg.Done()

	if !p.limiter.AllowN(p.clock.Now(), 1) {
		log.Debug().Str("instance", p.instanceID).Msg("manual refresh rate limited")
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(runCtx, cancel)
	defer stop()

	if !p.refresh(ctx, true) {
		return false
	}

	// the next tick is a full interval after this refresh
	ticker.Reset(p.config.RefreshInterval)
	return true
}

func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// State returns the latest published view-model
func (p *Poller) State() State {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.state
}

// Subscribe registers for State updates. Updates are dropped for a subscriber
// whose buffer is full. Call the returned func to unsubscribe.
func (p *Poller) Subscribe() (<-chan State, func()) {
	id := uuid.New()
	ch := make(chan State, p.config.SubscriberBuffer)

	p.subMu.Lock()
	p.subs[id] = ch
	p.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.subMu.Lock()
			defer p.subMu.Unlock()
			if existing, ok := p.subs[id]; ok {
				close(existing)
				delete(p.subs, id)
			}
		})
	}
	return ch, cancel
}

func (p *Poller) run(ctx context.Context, ticker clockwork.Ticker) {
	defer p.wg.Done()

	// Refresh immediately on start
	p.refresh(ctx, false)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			p.refresh(ctx, false)
		}
	}
}

func (p *Poller) refresh(ctx context.Context, force bool) bool {
	if !p.inFlight.CompareAndSwap(false, true) {
		log.Debug().Str("instance", p.instanceID).Msg("refresh already in flight, skipping")
		return false
	}
	defer p.inFlight.Store(false)

	var snap *models.Snapshot
	if force {
		snap = p.source.Refresh(ctx)
	} else {
		snap = p.source.GetLeaderboard(ctx)
	}
	if ctx.Err() != nil {
		// consumer went away mid-fetch
		return false
	}

	state := State{
		Snapshot:    snap,
		Loading:     false,
		LastUpdated: snap.FetchedAt,
		LastError:   p.source.LastError(),
		RefreshedAt: p.clock.Now(),
	}

	p.stateMu.Lock()
	p.state = state
	p.stateMu.Unlock()

	p.publish(state)
	return true
}

func (p *Poller) publish(state State) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	for id, ch := range p.subs {
		select {
		case ch <- state:
		default:
			log.Warn().
				Str("instance", p.instanceID).
				Str("subscriber", id.String()).
				Msg("subscriber buffer full, dropping update")
		}
	}
}
