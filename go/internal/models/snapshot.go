package models

import (
	"fmt"
	"sort"
	"time"
)

// SnapshotSource records where a snapshot's standings came from
type SnapshotSource string

const (
	SourceLive    SnapshotSource = "live"
	SourceDefault SnapshotSource = "default"
	SourceStatic  SnapshotSource = "static"
)

// Snapshot is an immutable, timestamped ranked list of players.
// Holders must treat Players as read-only; a refresh produces a new Snapshot.
type Snapshot struct {
	Players   []Player       `json:"players"`
	FetchedAt time.Time      `json:"fetched_at"`
	Source    SnapshotSource `json:"source"`
}

// NewSnapshot validates players, orders them by ascending rank and wraps them.
// The input slice is copied.
func NewSnapshot(players []Player, fetchedAt time.Time, source SnapshotSource) (*Snapshot, error) {
	ordered := make([]Player, len(players))
	copy(ordered, players)

	if err := ValidateRanks(ordered); err != nil {
		return nil, err
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Rank < ordered[j].Rank
	})

	return &Snapshot{
		Players:   ordered,
		FetchedAt: fetchedAt,
		Source:    source,
	}, nil
}

// ValidateRanks checks every entry and that no rank appears twice
func ValidateRanks(players []Player) error {
	seen := make(map[int]struct{}, len(players))
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := seen[p.Rank]; dup {
			return fmt.Errorf("duplicate rank %d", p.Rank)
		}
		seen[p.Rank] = struct{}{}
	}
	return nil
}

// Top returns up to n leading players
func (s *Snapshot) Top(n int) []Player {
	if n < 0 {
		n = 0
	}
	if n > len(s.Players) {
		n = len(s.Players)
	}
	return s.Players[:n]
}

// Len returns the number of ranked players
func (s *Snapshot) Len() int {
	return len(s.Players)
}
