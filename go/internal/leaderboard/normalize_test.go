package leaderboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivekstills/boat/go/internal/models"
)

func TestNormalize_Shapes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantShape string
		wantRanks []int
	}{
		{
			name:      "success envelope",
			body:      `{"success":true,"data":[{"rank":1,"username":"a","wagered":10}]}`,
			wantShape: "envelope",
			wantRanks: []int{1},
		},
		{
			name:      "bare array",
			body:      `  [{"rank":2,"username":"b"},{"rank":1,"username":"a"}]`,
			wantShape: "array",
			wantRanks: []int{2, 1},
		},
		{
			name:      "leaderboard envelope",
			body:      `{"leaderboard":[{"rank":1}]}`,
			wantShape: "leaderboard",
			wantRanks: []int{1},
		},
		{
			name:      "legacy players envelope",
			body:      `{"players":[{"rank":1,"username":"smila","wagered":12500,"prize":250}],"lastUpdate":"2026-03-01T00:00:00Z"}`,
			wantShape: "players",
			wantRanks: []int{1},
		},
		{
			name:      "envelope wins over leaderboard key",
			body:      `{"success":true,"data":[{"rank":1}],"leaderboard":[{"rank":9}]}`,
			wantShape: "envelope",
			wantRanks: []int{1},
		},
		{
			name:      "leaderboard wins over players key",
			body:      `{"leaderboard":[{"rank":3}],"players":[{"rank":9}]}`,
			wantShape: "leaderboard",
			wantRanks: []int{3},
		},
		{
			name:      "empty array",
			body:      `[]`,
			wantShape: "array",
			wantRanks: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, entries, err := Normalize([]byte(tt.body), DefaultNormalizers())
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, shape)

			ranks := make([]int, 0, len(entries))
			for _, e := range entries {
				require.NotNil(t, e.Rank)
				ranks = append(ranks, int(*e.Rank))
			}
			assert.Equal(t, tt.wantRanks, ranks)
		})
	}
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"unknown object", `{"foo":[]}`, ErrUnrecognizedShape},
		{"scalar", `"hello"`, ErrUnrecognizedShape},
		{"empty body", ``, ErrUnrecognizedShape},
		{"html error page", `<html>bad gateway</html>`, ErrUnrecognizedShape},
		{"truncated object", `{"leaderboard":[`, ErrUnrecognizedShape},
		{"truncated array", `[{"rank":1}`, ErrMalformedEntry},
		{"success false", `{"success":false,"data":[]}`, ErrUpstreamRejected},
		{"success not bool", `{"success":"yes","data":[]}`, ErrMalformedEntry},
		{"data not list", `{"success":true,"data":{"rank":1}}`, ErrMalformedEntry},
		{"leaderboard not list", `{"leaderboard":"soon"}`, ErrMalformedEntry},
		{"entry not object", `[1,2,3]`, ErrMalformedEntry},
		{"username wrong type", `[{"rank":1,"username":42}]`, ErrMalformedEntry},
		{"wagered not numeric", `[{"rank":1,"wagered":"lots"}]`, ErrMalformedEntry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Normalize([]byte(tt.body), DefaultNormalizers())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestNormalize_CustomOrder(t *testing.T) {
	body := []byte(`{"leaderboard":[{"rank":1}],"players":[{"rank":2}]}`)

	reversed := []Normalizer{
		{Name: "players", Extract: extractKeyed("players")},
		{Name: "leaderboard", Extract: extractKeyed("leaderboard")},
	}
	shape, entries, err := Normalize(body, reversed)
	require.NoError(t, err)
	assert.Equal(t, "players", shape)
	require.Len(t, entries, 1)
	assert.Equal(t, flexNumber(2), *entries[0].Rank)
}

func TestToPlayers_AppliesPrizeTable(t *testing.T) {
	_, entries, err := Normalize([]byte(`[{"rank":1,"username":"x","wagered":100}]`), DefaultNormalizers())
	require.NoError(t, err)

	players, err := ToPlayers(entries, models.DefaultPrizeTable())
	require.NoError(t, err)
	require.Len(t, players, 1)

	assert.Equal(t, models.Player{
		Rank:     1,
		Username: "x",
		Wagered:  100,
		Prize:    250,
		Change:   models.ChangeNeutral,
	}, players[0])
}

func TestToPlayers_FeedPrizeWins(t *testing.T) {
	_, entries, err := Normalize([]byte(`[{"rank":1,"prize":0},{"rank":9}]`), DefaultNormalizers())
	require.NoError(t, err)

	players, err := ToPlayers(entries, models.DefaultPrizeTable())
	require.NoError(t, err)

	assert.Zero(t, players[0].Prize, "explicit zero prize must not be replaced")
	assert.Zero(t, players[1].Prize, "ranks outside the table get nothing")
}

func TestToPlayers_NumericStringsAndChange(t *testing.T) {
	_, entries, err := Normalize([]byte(`[{"rank":"2","wagered":"1803.5","prize":"125","change":"up"}]`), DefaultNormalizers())
	require.NoError(t, err)

	players, err := ToPlayers(entries, nil)
	require.NoError(t, err)
	require.Len(t, players, 1)

	assert.Equal(t, 2, players[0].Rank)
	assert.Equal(t, 1803.5, players[0].Wagered)
	assert.Equal(t, 125.0, players[0].Prize)
	assert.Equal(t, models.ChangeUp, players[0].Change)
}

func TestToPlayers_RejectsBadRank(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing", `[{"username":"x"}]`},
		{"null", `[{"rank":null}]`},
		{"zero", `[{"rank":0}]`},
		{"negative", `[{"rank":-1}]`},
		{"fractional", `[{"rank":1.5}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, entries, err := Normalize([]byte(tt.body), DefaultNormalizers())
			require.NoError(t, err)

			_, err = ToPlayers(entries, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedEntry)
		})
	}
}
