package leaderboard

import (
	"time"

	"github.com/vivekstills/boat/go/internal/models"
)

// State is the view-model handed to the presentation layer
type State struct {
	Snapshot    *models.Snapshot `json:"snapshot"`
	Loading     bool             `json:"loading"`
	LastUpdated time.Time        `json:"last_updated"`
	LastError   error            `json:"-"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}

// Age returns how old the shown data is. ok is false when it has never been fetched.
func (s State) Age(now time.Time) (age time.Duration, ok bool) {
	if s.LastUpdated.IsZero() {
		return 0, false
	}
	age = now.Sub(s.LastUpdated)
	if age < 0 {
		age = 0
	}
	return age, true
}

// IsStale reports whether the shown data should carry a staleness marker
func (s State) IsStale(now time.Time, threshold time.Duration) bool {
	if s.LastError != nil {
		return true
	}
	age, ok := s.Age(now)
	if !ok {
		return true
	}
	return age > threshold
}

// ErrorMessage returns the last refresh error as text, or ""
func (s State) ErrorMessage() string {
	if s.LastError == nil {
		return ""
	}
	return s.LastError.Error()
}
