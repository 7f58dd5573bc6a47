package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholderPlayers(t *testing.T) {
	players := PlaceholderPlayers(PrizeTable{10: 5, 1: 100, 3: 20})

	assert.Equal(t, []Player{
		{Rank: 1, Prize: 100, Change: ChangeNeutral},
		{Rank: 3, Prize: 20, Change: ChangeNeutral},
		{Rank: 10, Prize: 5, Change: ChangeNeutral},
	}, players)
	assert.Empty(t, PlaceholderPlayers(nil))
}

func TestPlaceholderPlayers_DefaultTable(t *testing.T) {
	players := PlaceholderPlayers(DefaultPrizeTable())

	assert.Len(t, players, 6)
	assert.Equal(t, 250.0, players[0].Prize)
	assert.Equal(t, 6, players[5].Rank)
}
