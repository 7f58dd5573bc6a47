package models

import (
	"fmt"
	"sort"
)

// Change is the movement indicator shown next to a player's rank
type Change string

const (
	ChangeUp      Change = "up"
	ChangeDown    Change = "down"
	ChangeNeutral Change = "neutral"
)

// ParseChange maps a feed value onto a Change. Anything unrecognized is neutral.
func ParseChange(value string) Change {
	switch Change(value) {
	case ChangeUp:
		return ChangeUp
	case ChangeDown:
		return ChangeDown
	default:
		return ChangeNeutral
	}
}

// Player represents one ranked participant at a point in time
type Player struct {
	Rank     int     `json:"rank" yaml:"rank"`
	Username string  `json:"username" yaml:"username"` // may be empty for unclaimed positions
	Wagered  float64 `json:"wagered" yaml:"wagered"`
	Prize    float64 `json:"prize" yaml:"prize"`
	Change   Change  `json:"change" yaml:"change"`
}

// Validate checks the per-entry invariants of a ranked player
func (p Player) Validate() error {
	if p.Rank < 1 {
		return fmt.Errorf("rank must be >= 1, got %d", p.Rank)
	}
	if p.Wagered < 0 {
		return fmt.Errorf("rank %d: wagered must be non-negative, got %v", p.Rank, p.Wagered)
	}
	if p.Prize < 0 {
		return fmt.Errorf("rank %d: prize must be non-negative, got %v", p.Rank, p.Prize)
	}
	return nil
}

// PrizeTable maps rank to prize amount. Used when the feed omits prize data.
type PrizeTable map[int]float64

// DefaultPrizeTable is the payout schedule of the partner campaign
func DefaultPrizeTable() PrizeTable {
	return PrizeTable{
		1: 250,
		2: 150,
		3: 50,
		4: 25,
		5: 15,
		6: 10,
	}
}

// Prize returns the configured prize for a rank, or zero
func (t PrizeTable) Prize(rank int) float64 {
	return t[rank]
}

// PlaceholderPlayers lists every prized position of table in rank order,
// with no name or wager.
func PlaceholderPlayers(table PrizeTable) []Player {
	ranks := make([]int, 0, len(table))
	for rank := range table {
		ranks = append(ranks, rank)
	}
	sort.Ints(ranks)

	players := make([]Player, 0, len(ranks))
	for _, rank := range ranks {
		players = append(players, Player{
			Rank:   rank,
			Prize:  table.Prize(rank),
			Change: ChangeNeutral,
		})
	}
	return players
}
