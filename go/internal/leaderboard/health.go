package leaderboard

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker"

	"github.com/vivekstills/boat/go/internal/models"
)

type HealthStatus struct {
	Healthy       bool                  `json:"healthy"`
	PollerRunning bool                  `json:"poller_running"`
	LastUpdated   time.Time             `json:"last_updated"`
	Source        models.SnapshotSource `json:"source,omitempty"`
	CircuitState  string                `json:"circuit_state"`
	Errors        []string              `json:"errors"`
}

// HealthChecker reports whether live standings are flowing
type HealthChecker struct {
	app       *App
	poller    *Poller // optional
	clock     clockwork.Clock
	threshold time.Duration // How long without a live snapshot before unhealthy
}

func NewHealthChecker(app *App, poller *Poller, threshold time.Duration, clock clockwork.Clock) *HealthChecker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthChecker{
		app:       app,
		poller:    poller,
		clock:     clock,
		threshold: threshold,
	}
}

func (h *HealthChecker) Check() HealthStatus {
	status := HealthStatus{
		Healthy: true,
		Errors:  []string{},
	}

	var state State
	if h.poller != nil {
		status.PollerRunning = h.poller.Running()
		if !status.PollerRunning {
			status.Healthy = false
			status.Errors = append(status.Errors, "poller not running")
		}
		state = h.poller.State()
	} else {
		state = State{LastError: h.app.LastError()}
		if cached := h.app.Cached(); cached != nil {
			state.Snapshot = cached
			state.LastUpdated = cached.FetchedAt
		}
	}

	// Check circuit breaker
	breakerState := h.app.BreakerState()
	status.CircuitState = breakerState.String()
	if breakerState == gobreaker.StateOpen {
		status.Healthy = false
		status.Errors = append(status.Errors, "circuit breaker open")
	}

	if state.Snapshot != nil {
		status.Source = state.Snapshot.Source
	}
	if state.LastError != nil {
		status.Errors = append(status.Errors, fmt.Sprintf("last refresh failed: %v", state.LastError))
	}

	// Check the live data is recent enough
	status.LastUpdated = state.LastUpdated
	age, ok := state.Age(h.clock.Now())
	switch {
	case !ok:
		status.Healthy = false
		status.Errors = append(status.Errors, "no live snapshot yet")
	case age > h.threshold:
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("no live snapshot for %s", age.Truncate(time.Second)))
	}

	return status
}
